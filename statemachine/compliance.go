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

package statemachine

import (
	"github.com/l3montree-dev/vrcms/dtos"
)

type ComplianceBadge struct {
	Label     string
	Status    dtos.ComplianceResult
	Timestamp dtos.Timestamp
}

// ProjectComplianceBadge returns nil unless the report is resolved and has been checked.
func ProjectComplianceBadge(report *dtos.ReportDTO) *ComplianceBadge {
	if report == nil || !report.IsResolved() || report.LatestComplianceStatus == nil {
		return nil
	}
	status := *report.LatestComplianceStatus
	label := "Non-compliant"
	if status == dtos.ComplianceResultCompliant {
		label = "Compliant"
	}
	return &ComplianceBadge{Label: label, Status: status, Timestamp: report.LatestComplianceAt}
}

// OverallResult is non-compliant as soon as a single standard is. No standards at all is compliant.
func OverallResult(results []dtos.StandardResultDTO) dtos.ComplianceResult {
	for _, r := range results {
		if r.Result == dtos.ComplianceResultNonCompliant {
			return dtos.ComplianceResultNonCompliant
		}
	}
	return dtos.ComplianceResultCompliant
}
