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
	"net/http"
	"net/url"

	"github.com/l3montree-dev/vrcms/dtos"
)

// ListAssignments returns one row per assigned report with its latest assignee.
func (c *Client) ListAssignments(ctx context.Context) ([]dtos.ReportDTO, error) {
	var resp dtos.AssignmentListResponse
	if err := c.do(ctx, http.MethodGet, "/admin/assignments", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) AssignmentHistory(ctx context.Context, reportID string) ([]dtos.AssignmentEventDTO, error) {
	var resp dtos.AssignmentHistoryResponse
	if err := c.do(ctx, http.MethodGet, "/admin/assignments/"+url.PathEscape(reportID)+"/history", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Assignments, nil
}

func (c *Client) Assign(ctx context.Context, reportID string, req dtos.AssignRequest) error {
	if err := dtos.Validate(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPatch, "/admin/reports/"+url.PathEscape(reportID)+"/assign", nil, req, nil)
}
