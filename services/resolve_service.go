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
	"github.com/l3montree-dev/vrcms/utils"
	"github.com/pkg/errors"
)

var (
	ErrMissingResolveSteps = errors.New("resolve steps are required")
	ErrNotResolvable       = errors.New("report has never been assigned")
)

// ResolvePlan is everything the resolve dialog needs.
type ResolvePlan struct {
	Report    dtos.ReportDTO
	Assignees []dtos.Assignee
	// nil if nobody was ever assigned
	Selected *dtos.Assignee
	Feedback []dtos.FeedbackDTO
	// prefilled resolution notes, empty if the selected assignee left no feedback
	Notes string
}

type ResolveService struct {
	api     ResolveAPI
	reports *ReportService
	now     func() time.Time
}

func NewResolveService(api ResolveAPI) *ResolveService {
	return &ResolveService{api: api, reports: NewReportService(api), now: time.Now}
}

// Prepare collects the distinct assignees of a report, newest first, and the
// feedback of the selected one. Without selector the most recent assignee is selected.
func (s *ResolveService) Prepare(ctx context.Context, reportID, selector string) (ResolvePlan, error) {
	report, events, err := s.reports.load(ctx, reportID)
	if err != nil {
		return ResolvePlan{}, err
	}
	if report.IsResolved() {
		return ResolvePlan{}, errors.Wrapf(ErrReportResolved, "cannot resolve report %s", report.ID())
	}

	plan := ResolvePlan{
		Report:    report,
		Assignees: statemachine.DedupeAssigneesNewestFirst(events),
		Feedback:  []dtos.FeedbackDTO{},
	}

	switch {
	case selector != "":
		selected, ok := statemachine.FindAssignee(plan.Assignees, selector)
		if !ok {
			return ResolvePlan{}, errors.Errorf("%q was never assigned to report %s", selector, report.ID())
		}
		plan.Selected = &selected
	case len(plan.Assignees) > 0:
		plan.Selected = &plan.Assignees[0]
	default:
		return plan, nil
	}

	feedback, err := s.api.ReportFeedback(ctx, report.ID())
	if err != nil {
		return ResolvePlan{}, errors.Wrapf(err, "could not fetch feedback of report %s", report.ID())
	}
	plan.Feedback = statemachine.MatchFeedbackToAssignee(feedback, *plan.Selected)
	plan.Notes = statemachine.PrefillResolutionNotes(plan.Feedback)
	return plan, nil
}

// Submit resolves the report. The returned report is resolved, callers can
// switch to the details view without fetching it again.
func (s *ResolveService) Submit(ctx context.Context, reportID, steps string, assignee *dtos.Assignee) (dtos.ReportDTO, error) {
	steps = strings.TrimSpace(steps)
	if steps == "" {
		return dtos.ReportDTO{}, ErrMissingResolveSteps
	}

	report, _, err := s.reports.load(ctx, reportID)
	if err != nil {
		return dtos.ReportDTO{}, err
	}
	if report.IsResolved() {
		return dtos.ReportDTO{}, errors.Wrapf(ErrReportResolved, "cannot resolve report %s", report.ID())
	}
	if !statemachine.CanResolve(&report) {
		return dtos.ReportDTO{}, errors.Wrapf(ErrNotResolvable, "cannot resolve report %s", report.ID())
	}

	req := dtos.ResolveRequest{ResolveSteps: steps}
	if assignee != nil {
		req.AssigneeName = utils.EmptyThenNil(utils.FirstNonEmpty(assignee.Name, assignee.Username))
		req.AssigneeEmail = utils.EmptyThenNil(assignee.Email)
	}
	if err := s.api.Resolve(ctx, report.ID(), req); err != nil {
		return dtos.ReportDTO{}, errors.Wrapf(err, "could not resolve report %s", report.ID())
	}
	slog.Info("report resolved", "reportID", report.ID())

	return statemachine.ApplyResolution(report, steps, s.now()), nil
}

// Resolution returns the recorded resolution or nil if there is none.
func (s *ResolveService) Resolution(ctx context.Context, reportID string) (*dtos.ResolutionDTO, error) {
	id, err := dtos.NormalizeReportID(reportID)
	if err != nil {
		return nil, err
	}
	return s.api.Resolution(ctx, id)
}
