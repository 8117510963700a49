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

// Package statemachine derives the state of a report from its projection
// fields and its assignment log. Every function is pure and total: nil
// reports and nil logs yield the documented fallbacks.
package statemachine

import (
	"time"

	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/l3montree-dev/vrcms/utils"
)

type Action string

const (
	ActionNone        Action = "none"
	ActionAssign      Action = "assign"
	ActionReassign    Action = "reassign"
	ActionResolve     Action = "resolve"
	ActionViewDetails Action = "viewDetails"
)

// ActionSet holds every action that is currently available for a report.
// Reassign and Resolve are frequently true at the same time.
type ActionSet struct {
	Assign      bool
	Reassign    bool
	Resolve     bool
	ViewDetails bool
}

// List returns the available actions in display order.
func (s ActionSet) List() []Action {
	actions := make([]Action, 0, 2)
	if s.ViewDetails {
		actions = append(actions, ActionViewDetails)
	}
	if s.Assign {
		actions = append(actions, ActionAssign)
	}
	if s.Reassign {
		actions = append(actions, ActionReassign)
	}
	if s.Resolve {
		actions = append(actions, ActionResolve)
	}
	return actions
}

func hasCurrentAssignee(report *dtos.ReportDTO) bool {
	return utils.FirstNonEmpty(utils.SafeDereference(report.AssigneeName), utils.SafeDereference(report.AssigneeUsername)) != ""
}

func hasAssignmentCount(report *dtos.ReportDTO) bool {
	return report.AssignmentCount.Valid && report.AssignmentCount.Value >= 1
}

// PermittedAction returns the primary action of a report.
func PermittedAction(report *dtos.ReportDTO) Action {
	switch {
	case report == nil:
		return ActionNone
	case report.IsResolved():
		return ActionViewDetails
	case hasCurrentAssignee(report):
		return ActionReassign
	default:
		return ActionAssign
	}
}

func CanReassign(report *dtos.ReportDTO) bool {
	return report != nil && !report.IsResolved() && hasCurrentAssignee(report)
}

// CanResolve is true for unresolved reports with any sign of an assignment:
// a current assignee, a positive assignment count or a reassignment flag.
func CanResolve(report *dtos.ReportDTO) bool {
	if report == nil || report.IsResolved() {
		return false
	}
	return hasCurrentAssignee(report) || hasAssignmentCount(report) || report.IsReassignment
}

func Actions(report *dtos.ReportDTO) ActionSet {
	if report == nil {
		return ActionSet{}
	}
	if report.IsResolved() {
		return ActionSet{ViewDetails: true}
	}
	return ActionSet{
		Assign:   !hasCurrentAssignee(report),
		Reassign: CanReassign(report),
		Resolve:  CanResolve(report),
	}
}

// SignalsDisagree reports whether the assignment signals used by CanResolve
// contradict each other, e.g. a positive count without a current assignee.
func SignalsDisagree(report *dtos.ReportDTO) bool {
	if report == nil || report.IsResolved() {
		return false
	}
	if hasCurrentAssignee(report) != hasAssignmentCount(report) {
		return true
	}
	return report.IsReassignment && !HasReassignmentHistory(report)
}

// HasReassignmentHistory drives the "Reassigned" badge. A single assignment is not a reassignment.
func HasReassignmentHistory(report *dtos.ReportDTO) bool {
	return report != nil && report.AssignmentCount.Valid && report.AssignmentCount.Value > 1
}

// HasAssignmentHistory reports whether there is any history to show at all.
func HasAssignmentHistory(report *dtos.ReportDTO) bool {
	return report != nil && (hasCurrentAssignee(report) || hasAssignmentCount(report))
}

// PriorAssignmentCount is the number of assignments before the current one.
func PriorAssignmentCount(report *dtos.ReportDTO) int {
	if report == nil || !report.AssignmentCount.Valid || report.AssignmentCount.Value <= 0 {
		return 0
	}
	return report.AssignmentCount.Value - 1
}

// ApplyAssignment returns a copy of the report as it looks after assignee
// was (re)assigned at the given time. Resolved reports are returned unchanged.
func ApplyAssignment(report dtos.ReportDTO, assignee dtos.Assignee, at time.Time) dtos.ReportDTO {
	if report.IsResolved() {
		return report
	}
	count := 0
	if report.AssignmentCount.Valid {
		count = report.AssignmentCount.Value
	}
	report.AssigneeName = utils.EmptyThenNil(assignee.Name)
	report.AssigneeEmail = utils.EmptyThenNil(assignee.Email)
	report.AssigneeUsername = utils.EmptyThenNil(assignee.Username)
	report.AssignedAt = dtos.Timestamp(at.UTC().Format(time.RFC3339))
	report.AssignmentCount = dtos.NewOptionalInt(count + 1)
	report.IsReassignment = count >= 1
	report.Status = dtos.ReportStatusInProgress
	return report
}

// ApplyResolution returns a copy of the report marked as resolved. The
// assignee snapshot is frozen as is.
func ApplyResolution(report dtos.ReportDTO, steps string, at time.Time) dtos.ReportDTO {
	if report.IsResolved() {
		return report
	}
	report.Status = dtos.ReportStatusResolved
	report.ResolvedAt = dtos.Timestamp(at.UTC().Format(time.RFC3339))
	report.ResolveSteps = utils.EmptyThenNil(steps)
	return report
}

// ProjectAssignments fills the assignment projection fields of a report from
// its log. Fields the backend already delivered win over the log.
func ProjectAssignments(report dtos.ReportDTO, events []dtos.AssignmentEventDTO) dtos.ReportDTO {
	assigned := utils.Filter(events, dtos.AssignmentEventDTO.HasAssignee)
	if len(assigned) == 0 {
		return report
	}
	if !report.AssignmentCount.Valid {
		report.AssignmentCount = dtos.NewOptionalInt(len(assigned))
	}
	if !hasCurrentAssignee(&report) && report.AssigneeEmail == nil {
		last := assigned[len(assigned)-1]
		report.AssigneeName = last.AssigneeName
		report.AssigneeUsername = last.AssigneeUsername
		report.AssigneeEmail = last.AssigneeEmail
		report.AssignedAt = last.AssignedAt
	}
	if !report.IsReassignment {
		report.IsReassignment = len(assigned) > 1
	}
	return report
}
