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
	"testing"
	"time"

	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/l3montree-dev/vrcms/utils"
	"github.com/stretchr/testify/assert"
)

func report(status dtos.ReportStatus, opts ...func(*dtos.ReportDTO)) *dtos.ReportDTO {
	r := &dtos.ReportDTO{ReportID: "65a1b2c3d4e5f6a7b8c9d0e1", Status: status, Severity: dtos.SeverityHigh}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func withAssignee(name, email string) func(*dtos.ReportDTO) {
	return func(r *dtos.ReportDTO) {
		r.AssigneeName = utils.EmptyThenNil(name)
		r.AssigneeEmail = utils.EmptyThenNil(email)
	}
}

func withCount(n int) func(*dtos.ReportDTO) {
	return func(r *dtos.ReportDTO) {
		r.AssignmentCount = dtos.NewOptionalInt(n)
	}
}

func TestPermittedAction(t *testing.T) {
	t.Run("should always allow viewing details of a resolved report", func(t *testing.T) {
		for _, r := range []*dtos.ReportDTO{
			report(dtos.ReportStatusResolved),
			report(dtos.ReportStatusResolved, withAssignee("Alice", "alice@example.com"), withCount(3)),
			report("resolved", func(r *dtos.ReportDTO) { r.IsReassignment = true }),
		} {
			assert.Equal(t, ActionViewDetails, PermittedAction(r))
			assert.Equal(t, ActionSet{ViewDetails: true}, Actions(r))
			assert.False(t, CanReassign(r))
			assert.False(t, CanResolve(r))
		}
	})

	t.Run("should only allow assigning an unassigned report", func(t *testing.T) {
		for _, status := range []dtos.ReportStatus{dtos.ReportStatusOpen, dtos.ReportStatusInProgress} {
			r := report(status)
			assert.Equal(t, ActionAssign, PermittedAction(r))
			assert.Equal(t, ActionSet{Assign: true}, Actions(r))
			assert.Equal(t, []Action{ActionAssign}, Actions(r).List())
		}
	})

	t.Run("should offer reassign and resolve at the same time", func(t *testing.T) {
		r := report(dtos.ReportStatusInProgress, withAssignee("Alice", "alice@example.com"), withCount(1))
		assert.Equal(t, ActionReassign, PermittedAction(r))
		assert.Equal(t, ActionSet{Reassign: true, Resolve: true}, Actions(r))
		assert.Equal(t, []Action{ActionReassign, ActionResolve}, Actions(r).List())
	})

	t.Run("should treat a username as a current assignee", func(t *testing.T) {
		r := report(dtos.ReportStatusInProgress, func(r *dtos.ReportDTO) { r.AssigneeUsername = utils.Ptr("alice") })
		assert.True(t, CanReassign(r))
		assert.True(t, CanResolve(r))
	})

	t.Run("should return none for a nil report", func(t *testing.T) {
		assert.Equal(t, ActionNone, PermittedAction(nil))
		assert.Equal(t, ActionSet{}, Actions(nil))
		assert.Empty(t, Actions(nil).List())
	})
}

func TestCanResolve(t *testing.T) {
	cases := []struct {
		name   string
		report *dtos.ReportDTO
		expect bool
	}{
		{"assignee name", report(dtos.ReportStatusOpen, withAssignee("Bob", "")), true},
		{"positive count only", report(dtos.ReportStatusOpen, withCount(1)), true},
		{"zero count", report(dtos.ReportStatusOpen, withCount(0)), false},
		{"reassignment flag only", report(dtos.ReportStatusOpen, func(r *dtos.ReportDTO) { r.IsReassignment = true }), true},
		{"no signal", report(dtos.ReportStatusOpen), false},
		{"resolved", report(dtos.ReportStatusResolved, withAssignee("Bob", ""), withCount(2)), false},
		{"nil", nil, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expect, CanResolve(c.report))
		})
	}
}

func TestSignalsDisagree(t *testing.T) {
	assert.False(t, SignalsDisagree(report(dtos.ReportStatusOpen)))
	assert.False(t, SignalsDisagree(report(dtos.ReportStatusInProgress, withAssignee("Bob", ""), withCount(1))))
	assert.True(t, SignalsDisagree(report(dtos.ReportStatusInProgress, withCount(2))))
	assert.True(t, SignalsDisagree(report(dtos.ReportStatusInProgress, withAssignee("Bob", ""), withCount(1), func(r *dtos.ReportDTO) { r.IsReassignment = true })))
	assert.False(t, SignalsDisagree(report(dtos.ReportStatusResolved, withCount(2))))
}

func TestHasReassignmentHistory(t *testing.T) {
	assert.False(t, HasReassignmentHistory(report(dtos.ReportStatusOpen, withCount(1))))
	assert.True(t, HasReassignmentHistory(report(dtos.ReportStatusOpen, withCount(2))))
	assert.False(t, HasReassignmentHistory(report(dtos.ReportStatusOpen)))
	assert.False(t, HasReassignmentHistory(nil))
}

func TestPriorAssignmentCount(t *testing.T) {
	assert.Equal(t, 0, PriorAssignmentCount(report(dtos.ReportStatusOpen)))
	assert.Equal(t, 0, PriorAssignmentCount(report(dtos.ReportStatusOpen, withCount(0))))
	assert.Equal(t, 0, PriorAssignmentCount(report(dtos.ReportStatusOpen, withCount(1))))
	assert.Equal(t, 2, PriorAssignmentCount(report(dtos.ReportStatusOpen, withCount(3))))
	assert.Equal(t, 0, PriorAssignmentCount(nil))
}

func TestApplyAssignment(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("should count the first assignment", func(t *testing.T) {
		r := ApplyAssignment(*report(dtos.ReportStatusOpen), dtos.Assignee{Name: "Alice", Email: "alice@example.com"}, now)
		assert.Equal(t, dtos.NewOptionalInt(1), r.AssignmentCount)
		assert.False(t, r.IsReassignment)
		assert.Equal(t, dtos.ReportStatusInProgress, r.Status)
		assert.Equal(t, "Alice", *r.AssigneeName)
		assert.False(t, HasReassignmentHistory(&r))
	})

	t.Run("should flag a reassignment", func(t *testing.T) {
		r := ApplyAssignment(*report(dtos.ReportStatusInProgress, withAssignee("Alice", "alice@example.com"), withCount(1)), dtos.Assignee{Name: "Bob", Email: "bob@example.com"}, now)
		assert.Equal(t, dtos.NewOptionalInt(2), r.AssignmentCount)
		assert.True(t, r.IsReassignment)
		assert.Equal(t, "bob@example.com", *r.AssigneeEmail)
		assert.True(t, HasReassignmentHistory(&r))
	})

	t.Run("should not touch resolved reports", func(t *testing.T) {
		before := *report(dtos.ReportStatusResolved, withAssignee("Alice", ""))
		assert.Equal(t, before, ApplyAssignment(before, dtos.Assignee{Name: "Bob"}, now))
	})
}

func TestApplyResolution(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	before := *report(dtos.ReportStatusInProgress, withAssignee("Alice", "alice@example.com"), withCount(2))

	after := ApplyResolution(before, "patched the parser", now)
	assert.True(t, after.IsResolved())
	assert.Equal(t, ActionViewDetails, PermittedAction(&after))
	assert.Equal(t, "Alice", *after.AssigneeName)
	assert.Equal(t, "patched the parser", *after.ResolveSteps)
	assert.Equal(t, "2025-03-01 10:00:00", after.ResolvedAt.Format(UnknownTime))
	// the original stays untouched
	assert.False(t, before.IsResolved())
}

func TestProjectAssignments(t *testing.T) {
	events := []dtos.AssignmentEventDTO{
		{IsSubmission: true},
		{AssigneeName: utils.Ptr("Alice"), AssigneeEmail: utils.Ptr("alice@example.com")},
		{AssigneeName: utils.Ptr("Bob"), AssigneeEmail: utils.Ptr("bob@example.com"), IsReassignment: true},
	}

	t.Run("should derive missing projection fields from the log", func(t *testing.T) {
		r := ProjectAssignments(*report(dtos.ReportStatusInProgress), events)
		assert.Equal(t, dtos.NewOptionalInt(2), r.AssignmentCount)
		assert.Equal(t, "Bob", *r.AssigneeName)
		assert.True(t, r.IsReassignment)
	})

	t.Run("should keep delivered projection fields", func(t *testing.T) {
		r := ProjectAssignments(*report(dtos.ReportStatusInProgress, withAssignee("Carol", "carol@example.com"), withCount(5)), events)
		assert.Equal(t, dtos.NewOptionalInt(5), r.AssignmentCount)
		assert.Equal(t, "Carol", *r.AssigneeName)
	})

	t.Run("should leave the report alone without assignments", func(t *testing.T) {
		before := *report(dtos.ReportStatusOpen)
		assert.Equal(t, before, ProjectAssignments(before, nil))
	})
}
