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

type ResolveRequest struct {
	ResolveSteps  string  `json:"resolve_steps" validate:"required"`
	AssigneeName  *string `json:"assignee_name,omitempty"`
	AssigneeEmail *string `json:"assignee_email,omitempty"`
}

type ResolutionDTO struct {
	ID                 string    `json:"_id"`
	ReportID           string    `json:"report_id"`
	ResolvedBy         *string   `json:"resolved_by,omitempty"`
	ResolvedByUsername *string   `json:"resolved_by_username,omitempty"`
	ResolvedByEmail    *string   `json:"resolved_by_email,omitempty"`
	ResolvedByRole     *string   `json:"resolved_by_role,omitempty"`
	ResolvedAt         Timestamp `json:"resolved_at,omitempty"`
	ResolveSteps       *string   `json:"resolve_steps,omitempty"`
	AssigneeName       *string   `json:"assignee_name,omitempty"`
	AssigneeEmail      *string   `json:"assignee_email,omitempty"`
}

type ResolutionResponse struct {
	Resolution *ResolutionDTO `json:"resolution"`
}
