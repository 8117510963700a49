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

package client

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/l3montree-dev/vrcms/dtos"
)

// ReportFeedback returns the feedback of a report, newest first. Reports
// without feedback answer with 404 on some backends, that is not an error.
func (c *Client) ReportFeedback(ctx context.Context, reportID string) ([]dtos.FeedbackDTO, error) {
	var resp dtos.FeedbackResponse
	err := c.do(ctx, http.MethodGet, "/admin/reports/"+url.PathEscape(reportID)+"/feedback", nil, nil, &resp)
	if IsNotFound(err) {
		slog.Warn("no feedback found for report", "reportID", reportID, "err", err)
		return []dtos.FeedbackDTO{}, nil
	}
	if err != nil {
		return nil, err
	}
	return resp.Feedback, nil
}

func (c *Client) RecordFeedback(ctx context.Context, reportID string, req dtos.RecordFeedbackRequest) error {
	if err := dtos.Validate(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/admin/reports/"+url.PathEscape(reportID)+"/feedback", nil, req, nil)
}

func (c *Client) AllFeedbacks(ctx context.Context) ([]dtos.FeedbackDTO, error) {
	var resp dtos.FeedbacksResponse
	if err := c.do(ctx, http.MethodGet, "/admin/feedbacks", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Feedbacks, nil
}
