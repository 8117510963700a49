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
	"time"

	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/l3montree-dev/vrcms/statemachine"
	"github.com/pkg/errors"
)

var ErrReportResolved = errors.New("report is already resolved")

type AssignmentService struct {
	api     AssignmentAPI
	reports *ReportService
	now     func() time.Time
}

func NewAssignmentService(api AssignmentAPI) *AssignmentService {
	return &AssignmentService{api: api, reports: NewReportService(api), now: time.Now}
}

// Assign hands the report to assignee. Whether this is an assignment or a
// reassignment is derived from the current state of the report. The
// returned report reflects the assignment without fetching it again.
func (s *AssignmentService) Assign(ctx context.Context, reportID, name, email string) (dtos.ReportDTO, error) {
	report, _, err := s.reports.load(ctx, reportID)
	if err != nil {
		return dtos.ReportDTO{}, err
	}
	if report.IsResolved() {
		return dtos.ReportDTO{}, errors.Wrapf(ErrReportResolved, "cannot assign report %s", report.ID())
	}

	req := dtos.AssignRequest{
		AssigneeName:  strings.TrimSpace(name),
		AssigneeEmail: strings.TrimSpace(email),
		Type:          dtos.AssignmentTypeAssignment,
	}
	if statemachine.CanReassign(&report) {
		req.Type = dtos.AssignmentTypeReassignment
	}
	if err := dtos.Validate(req); err != nil {
		return dtos.ReportDTO{}, err
	}

	if err := s.api.Assign(ctx, report.ID(), req); err != nil {
		return dtos.ReportDTO{}, errors.Wrapf(err, "could not assign report %s", report.ID())
	}
	slog.Info("report assigned", "reportID", report.ID(), "type", req.Type, "assignee", req.AssigneeEmail)

	return statemachine.ApplyAssignment(report, dtos.Assignee{Name: req.AssigneeName, Email: req.AssigneeEmail}, s.now()), nil
}

// Assignments lists every report that has an assignment record with its latest assignee.
func (s *AssignmentService) Assignments(ctx context.Context) ([]ReportRow, error) {
	reports, err := s.api.ListAssignments(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not list assignments")
	}
	return rows(reports), nil
}
