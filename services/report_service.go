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
	"log/slog"

	"github.com/l3montree-dev/vrcms/client"
	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/l3montree-dev/vrcms/statemachine"
	"github.com/pkg/errors"
)

// ReportRow is a report together with everything a list view shows for it.
type ReportRow struct {
	Report           dtos.ReportDTO
	Actions          statemachine.ActionSet
	Reassigned       bool
	HasHistory       bool
	PriorAssignments int
	Compliance       *statemachine.ComplianceBadge
}

type ReportDetails struct {
	Report     dtos.ReportDTO
	Actions    statemachine.ActionSet
	History    statemachine.HistoryView
	Compliance *statemachine.ComplianceBadge
}

type ReportService struct {
	api ReportAPI
}

func NewReportService(api ReportAPI) *ReportService {
	return &ReportService{api: api}
}

func NewReportRow(report dtos.ReportDTO) ReportRow {
	if statemachine.SignalsDisagree(&report) {
		slog.Debug("assignment signals disagree", "reportID", report.ID(), "assignmentCount", report.AssignmentCount.Value, "isReassignment", report.IsReassignment)
	}
	return ReportRow{
		Report:           report,
		Actions:          statemachine.Actions(&report),
		Reassigned:       statemachine.HasReassignmentHistory(&report),
		HasHistory:       statemachine.HasAssignmentHistory(&report),
		PriorAssignments: statemachine.PriorAssignmentCount(&report),
		Compliance:       statemachine.ProjectComplianceBadge(&report),
	}
}

func rows(reports []dtos.ReportDTO) []ReportRow {
	result := make([]ReportRow, 0, len(reports))
	for _, r := range reports {
		result = append(result, NewReportRow(r))
	}
	return result
}

// Overview lists all reports matching filter.
func (s *ReportService) Overview(ctx context.Context, filter dtos.ReportFilter) ([]ReportRow, error) {
	reports, err := s.api.ListReports(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "could not list reports")
	}
	return rows(reports), nil
}

func (s *ReportService) MyReports(ctx context.Context) ([]ReportRow, error) {
	reports, err := s.api.MyReports(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not list own reports")
	}
	return rows(reports), nil
}

// AuditQueue lists resolved reports together with their latest compliance badge.
func (s *ReportService) AuditQueue(ctx context.Context) ([]ReportRow, error) {
	reports, err := s.api.AuditQueue(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not list reports to audit")
	}
	return rows(reports), nil
}

func (s *ReportService) Submit(ctx context.Context, title, details, severity string) (dtos.ReportDTO, error) {
	sev, ok := dtos.ParseSeverity(severity)
	if !ok {
		return dtos.ReportDTO{}, errors.Errorf("unknown severity %q", severity)
	}
	resp, err := s.api.SubmitReport(ctx, dtos.SubmitReportRequest{Title: title, Details: details, Severity: sev})
	if err != nil {
		return dtos.ReportDTO{}, errors.Wrap(err, "could not submit report")
	}
	return resp.Item, nil
}

// load fetches a report and completes its projection fields from the
// assignment history, single report lookups do not carry them.
func (s *ReportService) load(ctx context.Context, rawID string) (dtos.ReportDTO, []dtos.AssignmentEventDTO, error) {
	id, err := dtos.NormalizeReportID(rawID)
	if err != nil {
		return dtos.ReportDTO{}, nil, err
	}

	detail, err := s.api.GetReport(ctx, id)
	if err != nil {
		return dtos.ReportDTO{}, nil, errors.Wrapf(err, "could not fetch report %s", id)
	}

	events, err := s.api.AssignmentHistory(ctx, id)
	if err != nil {
		if !historyUnavailable(err) {
			return dtos.ReportDTO{}, nil, errors.Wrapf(err, "could not fetch assignment history of %s", id)
		}
		slog.Debug("assignment history unavailable, falling back to the report's assignment records", "reportID", id, "err", err)
		events = detail.Assignments
	}

	report := detail.Report
	if report.ReportID == "" {
		report.ReportID = id
	}
	return statemachine.ProjectAssignments(report, events), events, nil
}

func (s *ReportService) Details(ctx context.Context, reportID string) (ReportDetails, error) {
	report, events, err := s.load(ctx, reportID)
	if err != nil {
		return ReportDetails{}, err
	}
	return ReportDetails{
		Report:     report,
		Actions:    statemachine.Actions(&report),
		History:    statemachine.BuildHistoryView(events, true),
		Compliance: statemachine.ProjectComplianceBadge(&report),
	}, nil
}

// History renders the assignment history, without the current assignment unless includeCurrent is set.
func (s *ReportService) History(ctx context.Context, reportID string, includeCurrent bool) (statemachine.HistoryView, error) {
	id, err := dtos.NormalizeReportID(reportID)
	if err != nil {
		return statemachine.HistoryView{}, err
	}
	events, err := s.api.AssignmentHistory(ctx, id)
	if err != nil {
		if !historyUnavailable(err) {
			return statemachine.HistoryView{}, errors.Wrapf(err, "could not fetch assignment history of %s", id)
		}
		detail, err := s.api.GetReport(ctx, id)
		if err != nil {
			return statemachine.HistoryView{}, errors.Wrapf(err, "could not fetch report %s", id)
		}
		events = detail.Assignments
	}
	return statemachine.BuildHistoryView(events, includeCurrent), nil
}

// the history endpoint is admin only, auditors read the records embedded in the report.
func historyUnavailable(err error) bool {
	return client.IsNotFound(err) || client.IsForbidden(err)
}
