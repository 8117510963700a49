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
	"strings"
	"time"

	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/pkg/errors"
)

type FeedbackService struct {
	api FeedbackAPI
	now func() time.Time
}

func NewFeedbackService(api FeedbackAPI) *FeedbackService {
	return &FeedbackService{api: api, now: time.Now}
}

// Record stores feedback an assignee sent for a report.
func (s *FeedbackService) Record(ctx context.Context, reportID, name, email, text string) error {
	id, err := dtos.NormalizeReportID(reportID)
	if err != nil {
		return err
	}
	req := dtos.RecordFeedbackRequest{
		AssigneeName:  strings.TrimSpace(name),
		AssigneeEmail: strings.TrimSpace(email),
		FeedbackText:  strings.TrimSpace(text),
		FeedbackAt:    s.now().UTC().Format(time.RFC3339),
	}
	if err := dtos.Validate(req); err != nil {
		return err
	}
	return errors.Wrapf(s.api.RecordFeedback(ctx, id, req), "could not record feedback for %s", id)
}

func (s *FeedbackService) List(ctx context.Context, reportID string) ([]dtos.FeedbackDTO, error) {
	id, err := dtos.NormalizeReportID(reportID)
	if err != nil {
		return nil, err
	}
	feedback, err := s.api.ReportFeedback(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "could not fetch feedback of %s", id)
	}
	return feedback, nil
}

func (s *FeedbackService) All(ctx context.Context) ([]dtos.FeedbackDTO, error) {
	feedback, err := s.api.AllFeedbacks(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch feedbacks")
	}
	return feedback, nil
}
