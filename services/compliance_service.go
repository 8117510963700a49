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
	"strings"

	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/l3montree-dev/vrcms/statemachine"
	"github.com/pkg/errors"
)

var ErrNotResolved = errors.New("only resolved reports can be checked for compliance")

type ComplianceService struct {
	api ComplianceAPI
}

func NewComplianceService(api ComplianceAPI) *ComplianceService {
	return &ComplianceService{api: api}
}

func (s *ComplianceService) Standards(ctx context.Context) ([]dtos.ComplianceStandardDTO, error) {
	standards, err := s.api.Standards(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch compliance standards")
	}
	return standards, nil
}

// History returns all compliance checks of a report, newest first as delivered.
func (s *ComplianceService) History(ctx context.Context, reportID string) ([]dtos.ComplianceCheckDTO, error) {
	id, err := dtos.NormalizeReportID(reportID)
	if err != nil {
		return nil, err
	}
	checks, err := s.api.ComplianceChecks(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "could not fetch compliance checks of %s", id)
	}
	return checks, nil
}

// Submit records a compliance check. The overall result is derived from the
// individual standards and never taken from the caller.
func (s *ComplianceService) Submit(ctx context.Context, reportID string, results []dtos.StandardResultDTO) (dtos.ComplianceSubmission, error) {
	id, err := dtos.NormalizeReportID(reportID)
	if err != nil {
		return dtos.ComplianceSubmission{}, err
	}
	detail, err := s.api.GetReport(ctx, id)
	if err != nil {
		return dtos.ComplianceSubmission{}, errors.Wrapf(err, "could not fetch report %s", id)
	}
	report := detail.Report
	if report.ReportID == "" {
		report.ReportID = id
	}
	if !report.IsResolved() {
		return dtos.ComplianceSubmission{}, errors.Wrapf(ErrNotResolved, "report %s is %s", report.ID(), report.Status)
	}

	normalized := make([]dtos.StandardResultDTO, len(results))
	for i, r := range results {
		r.Result = dtos.ComplianceResult(strings.ToLower(strings.TrimSpace(string(r.Result))))
		r.Notes = strings.TrimSpace(r.Notes)
		normalized[i] = r
	}
	submission := dtos.ComplianceSubmission{
		Standards: normalized,
		Overall:   statemachine.OverallResult(normalized),
	}
	if err := dtos.Validate(submission); err != nil {
		return dtos.ComplianceSubmission{}, err
	}

	if err := s.api.SubmitCompliance(ctx, report.ID(), submission); err != nil {
		return dtos.ComplianceSubmission{}, errors.Wrapf(err, "could not submit compliance check for %s", report.ID())
	}
	slog.Info("compliance check submitted", "reportID", report.ID(), "overall", submission.Overall, "standards", len(results))
	return submission, nil
}
