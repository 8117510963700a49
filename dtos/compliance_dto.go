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

type ComplianceStandardDTO struct {
	ID          string  `json:"_id"`
	ControlID   *string `json:"control_id,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

type StandardsResponse struct {
	Standards List[ComplianceStandardDTO] `json:"standards"`
}

type StandardResultDTO struct {
	StandardID string           `json:"standard_id" validate:"required"`
	Title      *string          `json:"title,omitempty"`
	ControlID  *string          `json:"control_id,omitempty"`
	Result     ComplianceResult `json:"result" validate:"required,oneof=compliant non-compliant"`
	Notes      string           `json:"notes,omitempty"`
}

// ComplianceCheckDTO is one auditor evaluation of a resolved report.
type ComplianceCheckDTO struct {
	ID              string                  `json:"_id,omitempty"`
	ReportID        string                  `json:"report_id,omitempty"`
	AuditorID       string                  `json:"auditor_id,omitempty"`
	AuditorUsername *string                 `json:"auditor_username,omitempty"`
	AuditorEmail    *string                 `json:"auditor_email,omitempty"`
	Overall         ComplianceResult        `json:"overall"`
	CreatedAt       Timestamp               `json:"created_at,omitempty"`
	Standards       List[StandardResultDTO] `json:"standards"`
}

type ComplianceChecksResponse struct {
	Checks List[ComplianceCheckDTO] `json:"checks"`
}

type ComplianceSubmission struct {
	Standards []StandardResultDTO `json:"standards" validate:"dive"`
	Overall   ComplianceResult    `json:"overall" validate:"required,oneof=compliant non-compliant"`
}
