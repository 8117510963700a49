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

package services

import (
	"context"

	"github.com/l3montree-dev/vrcms/dtos"
)

// ReportAPI is the part of the api client the report views need.
type ReportAPI interface {
	ListReports(ctx context.Context, filter dtos.ReportFilter) ([]dtos.ReportDTO, error)
	MyReports(ctx context.Context) ([]dtos.ReportDTO, error)
	AuditQueue(ctx context.Context) ([]dtos.ReportDTO, error)
	GetReport(ctx context.Context, reportID string) (dtos.ReportDetailResponse, error)
	AssignmentHistory(ctx context.Context, reportID string) ([]dtos.AssignmentEventDTO, error)
	SubmitReport(ctx context.Context, req dtos.SubmitReportRequest) (dtos.SubmitReportResponse, error)
}

type AssignmentAPI interface {
	ReportAPI
	ListAssignments(ctx context.Context) ([]dtos.ReportDTO, error)
	Assign(ctx context.Context, reportID string, req dtos.AssignRequest) error
}

type FeedbackAPI interface {
	ReportFeedback(ctx context.Context, reportID string) ([]dtos.FeedbackDTO, error)
	RecordFeedback(ctx context.Context, reportID string, req dtos.RecordFeedbackRequest) error
	AllFeedbacks(ctx context.Context) ([]dtos.FeedbackDTO, error)
}

type ResolveAPI interface {
	ReportAPI
	FeedbackAPI
	Resolve(ctx context.Context, reportID string, req dtos.ResolveRequest) error
	Resolution(ctx context.Context, reportID string) (*dtos.ResolutionDTO, error)
}

type ComplianceAPI interface {
	ReportAPI
	Standards(ctx context.Context) ([]dtos.ComplianceStandardDTO, error)
	ComplianceChecks(ctx context.Context, reportID string) ([]dtos.ComplianceCheckDTO, error)
	SubmitCompliance(ctx context.Context, reportID string, submission dtos.ComplianceSubmission) error
}

type StatsAPI interface {
	ReportStats(ctx context.Context) (dtos.ReportStatsDTO, error)
	AuditStats(ctx context.Context) (dtos.ReportStatsDTO, error)
}

// API is implemented by *client.Client.
type API interface {
	AssignmentAPI
	ResolveAPI
	ComplianceAPI
	StatsAPI
}
