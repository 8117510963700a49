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

import "github.com/l3montree-dev/vrcms/utils"

type AssignmentType string

const (
	AssignmentTypeAssignment   AssignmentType = "assignment"
	AssignmentTypeReassignment AssignmentType = "reassignment"
)

// AssignmentEventDTO is one entry of a report's assignment log.
// Logs are delivered oldest first.
type AssignmentEventDTO struct {
	ReportID         string    `json:"report_id,omitempty"`
	AssigneeName     *string   `json:"assignee_name,omitempty"`
	AssigneeUsername *string   `json:"assignee_username,omitempty"`
	AssigneeEmail    *string   `json:"assignee_email,omitempty"`
	AssignedAt       Timestamp `json:"assigned_at,omitempty"`
	Notes            *string   `json:"notes,omitempty"`
	IsReassignment   bool      `json:"is_reassignment,omitempty"`
	// the initial submission is stored as an assignment record without assignee
	IsSubmission bool `json:"is_submission,omitempty"`
}

// HasAssignee reports whether the event names anybody at all.
func (e AssignmentEventDTO) HasAssignee() bool {
	return utils.FirstNonEmpty(utils.SafeDereference(e.AssigneeName), utils.SafeDereference(e.AssigneeUsername), utils.SafeDereference(e.AssigneeEmail)) != ""
}

type AssignmentHistoryResponse struct {
	Assignments List[AssignmentEventDTO] `json:"assignments"`
}

type AssignRequest struct {
	AssigneeName  string         `json:"assignee_name" validate:"required"`
	AssigneeEmail string         `json:"assignee_email" validate:"required,email"`
	Type          AssignmentType `json:"type" validate:"required,oneof=assignment reassignment"`
}

// Assignee is a distinct person a report was assigned to.
type Assignee struct {
	Name       string    `json:"name"`
	Username   string    `json:"username,omitempty"`
	Email      string    `json:"email"`
	AssignedAt Timestamp `json:"assigned_at,omitempty"`
	Notes      string    `json:"notes,omitempty"`
}

// Key is the identity used for deduplication: the folded email or, if absent, the folded name.
func (a Assignee) Key() string {
	return utils.FoldKey(utils.FirstNonEmpty(a.Email, a.Name))
}

func (a Assignee) DisplayName() string {
	return utils.FirstNonEmpty(a.Name, a.Username, "Unknown")
}

func (a Assignee) String() string {
	if a.Email == "" {
		return a.DisplayName()
	}
	return a.DisplayName() + " <" + a.Email + ">"
}
