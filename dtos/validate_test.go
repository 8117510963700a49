// Copyright (C) 2025 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package dtos

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("should require a valid email for assignments", func(t *testing.T) {
		assert.Error(t, Validate(AssignRequest{AssigneeName: "Bob", AssigneeEmail: "bob", Type: AssignmentTypeAssignment}))
		assert.NoError(t, Validate(AssignRequest{AssigneeName: "Bob", AssigneeEmail: "bob@example.com", Type: AssignmentTypeReassignment}))
	})

	t.Run("should reject unknown assignment types", func(t *testing.T) {
		assert.Error(t, Validate(AssignRequest{AssigneeName: "Bob", AssigneeEmail: "bob@example.com", Type: "handover"}))
	})

	t.Run("should validate severities of submitted reports", func(t *testing.T) {
		assert.NoError(t, Validate(SubmitReportRequest{Title: "XSS", Details: "in search", Severity: "high"}))
		assert.Error(t, Validate(SubmitReportRequest{Title: "XSS", Details: "in search", Severity: "blocker"}))
	})

	t.Run("should validate every item of a report list", func(t *testing.T) {
		resp := ReportListResponse{Items: List[ReportDTO]{
			{ReportID: "65a1b2c3d4e5f6a7b8c9d0e1", Status: ReportStatusOpen},
			{ReportID: "not-hex", Status: ReportStatusOpen},
		}}
		assert.Error(t, Validate(resp))

		resp.Items[1].ReportID = "65a1b2c3d4e5f6a7b8c9d0e2"
		assert.NoError(t, Validate(resp))
	})

	t.Run("should keep reports with a severity the submit form does not offer", func(t *testing.T) {
		var resp ReportListResponse
		require.NoError(t, json.Unmarshal([]byte(`{"items":[
			{"report_id":"65a1b2c3d4e5f6a7b8c9d0e1","severity":"high","status":"open"},
			{"report_id":"65a1b2c3d4e5f6a7b8c9d0e2","severity":"informational","status":"open"}
		]}`), &resp))

		assert.NoError(t, Validate(&resp))
		assert.Equal(t, Severity("informational"), resp.Items[1].Severity)
	})

	t.Run("should reject unknown statuses", func(t *testing.T) {
		assert.Error(t, Validate(ReportDTO{Status: "Closed"}))
		assert.NoError(t, Validate(ReportDTO{Status: "in progress"}))
	})

	t.Run("should require resolve steps", func(t *testing.T) {
		assert.Error(t, Validate(ResolveRequest{}))
		assert.NoError(t, Validate(ResolveRequest{ResolveSteps: "patched"}))
	})

	t.Run("should validate compliance entries", func(t *testing.T) {
		sub := ComplianceSubmission{
			Standards: []StandardResultDTO{{StandardID: "iso-27001", Result: "maybe"}},
			Overall:   ComplianceResultCompliant,
		}
		assert.Error(t, Validate(sub))

		sub.Standards[0].Result = ComplianceResultNonCompliant
		assert.NoError(t, Validate(sub))
	})
}
