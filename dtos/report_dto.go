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
	"slices"
	"strings"

	"github.com/l3montree-dev/vrcms/utils"
)

type Severity string

const (
	SeverityLow      Severity = "Low"
	SeverityMedium   Severity = "Medium"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

var severities = []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

func Severities() []Severity {
	return slices.Clone(severities)
}

// ParseSeverity accepts any casing ("low", "LOW", "Low").
func ParseSeverity(s string) (Severity, bool) {
	for _, sev := range severities {
		if strings.EqualFold(string(sev), strings.TrimSpace(s)) {
			return sev, true
		}
	}
	return "", false
}

type ReportStatus string

const (
	ReportStatusOpen       ReportStatus = "Open"
	ReportStatusInProgress ReportStatus = "In Progress"
	ReportStatusResolved   ReportStatus = "Resolved"
)

func ParseReportStatus(s string) (ReportStatus, bool) {
	for _, st := range []ReportStatus{ReportStatusOpen, ReportStatusInProgress, ReportStatusResolved} {
		if st.Is(ReportStatus(strings.TrimSpace(s))) {
			return st, true
		}
	}
	return "", false
}

// Is compares two statuses ignoring case, the backend does the same.
func (s ReportStatus) Is(other ReportStatus) bool {
	return strings.EqualFold(string(s), string(other))
}

type ComplianceResult string

const (
	ComplianceResultCompliant    ComplianceResult = "compliant"
	ComplianceResultNonCompliant ComplianceResult = "non-compliant"
)

type ReportDTO struct {
	ReportID string `json:"report_id,omitempty" validate:"omitempty,mongodb"`
	// single report lookups return the raw document id instead of report_id
	DocumentID string `json:"_id,omitempty"`

	Title    string       `json:"title"`
	Details  string       `json:"details"`
	// stored without validation by the backend, unknown values are kept and counted as low
	Severity Severity     `json:"severity"`
	Status   ReportStatus `json:"status" validate:"omitempty,reportstatus"`

	ReporterID       string  `json:"reporter_id,omitempty"`
	ReporterUsername *string `json:"reporter_username,omitempty"`
	ReporterName     *string `json:"reporter_name,omitempty"`
	ReporterEmail    *string `json:"reporter_email,omitempty"`

	AssigneeName     *string     `json:"assignee_name,omitempty"`
	AssigneeUsername *string     `json:"assignee_username,omitempty"`
	AssigneeEmail    *string     `json:"assignee_email,omitempty"`
	AssignedAt       Timestamp   `json:"assigned_at,omitempty"`
	AssignmentCount  OptionalInt `json:"assignment_count"`
	IsReassignment   bool        `json:"is_reassignment,omitempty"`
	DisplayDate      Timestamp   `json:"display_date,omitempty"`

	CreatedAt    Timestamp `json:"created_at,omitempty"`
	ResolvedAt   Timestamp `json:"resolved_at,omitempty"`
	ResolveSteps *string   `json:"resolve_steps,omitempty"`

	LatestComplianceStatus *ComplianceResult `json:"latest_compliance_status,omitempty"`
	LatestComplianceAt     Timestamp         `json:"latest_compliance_at,omitempty"`
}

// ID returns the report id regardless of which field the backend filled.
func (r ReportDTO) ID() string {
	return utils.FirstNonEmpty(r.ReportID, r.DocumentID)
}

func (r ReportDTO) IsResolved() bool {
	return r.Status.Is(ReportStatusResolved)
}

// Reporter returns the best display name for the reporter.
func (r ReportDTO) Reporter() string {
	return utils.FirstNonEmpty(utils.SafeDereference(r.ReporterName), utils.SafeDereference(r.ReporterUsername), "Unknown reporter")
}

type SubmitReportRequest struct {
	Title    string   `json:"title" validate:"required"`
	Details  string   `json:"details" validate:"required"`
	Severity Severity `json:"severity" validate:"required,severity"`
}

type SubmitReportResponse struct {
	Message string    `json:"message"`
	Item    ReportDTO `json:"item"`
}

type ReportListResponse struct {
	Items List[ReportDTO] `json:"items" validate:"dive"`
}

// AssignmentListResponse rows are built from the assignment log and may
// carry placeholders like an "Unknown" severity, they are not validated.
type AssignmentListResponse struct {
	Items List[ReportDTO] `json:"items"`
}

type ReportDetailResponse struct {
	Report      ReportDTO                `json:"report"`
	Assignments List[AssignmentEventDTO] `json:"assignments" validate:"dive"`
}

type SeveritySnapshot struct {
	Total    int `json:"total"`
	Resolved int `json:"resolved"`
	Pending  int `json:"pending"`
	Open     int `json:"open"`
}

type ReportStatsDTO struct {
	TotalReports     int                         `json:"total_reports"`
	ResolvedReports  int                         `json:"resolved_reports"`
	PendingReports   int                         `json:"pending_reports"`
	OpenReports      int                         `json:"open_reports"`
	SeveritySnapshot map[string]SeveritySnapshot `json:"severity_snapshot"`
}
