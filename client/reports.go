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

func (c *Client) SubmitReport(ctx context.Context, req dtos.SubmitReportRequest) (dtos.SubmitReportResponse, error) {
	if err := dtos.Validate(req); err != nil {
		return dtos.SubmitReportResponse{}, err
	}
	var resp dtos.SubmitReportResponse
	err := c.do(ctx, http.MethodPost, "/reports", nil, req, &resp)
	return resp, err
}

func (c *Client) MyReports(ctx context.Context) ([]dtos.ReportDTO, error) {
	var resp dtos.ReportListResponse
	if err := c.do(ctx, http.MethodGet, "/reports/my-reports", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// ListReports returns every report matching filter, newest first.
func (c *Client) ListReports(ctx context.Context, filter dtos.ReportFilter) ([]dtos.ReportDTO, error) {
	var resp dtos.ReportListResponse
	if err := c.do(ctx, http.MethodGet, "/admin/reports", filter.Query(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// GetReport returns the report together with its assignment log, oldest first.
func (c *Client) GetReport(ctx context.Context, reportID string) (dtos.ReportDetailResponse, error) {
	var resp dtos.ReportDetailResponse
	err := c.do(ctx, http.MethodGet, "/admin/reports/"+url.PathEscape(reportID), nil, nil, &resp)
	return resp, err
}

func (c *Client) ReportStats(ctx context.Context) (dtos.ReportStatsDTO, error) {
	var resp dtos.ReportStatsDTO
	err := c.do(ctx, http.MethodGet, "/admin/reports/stats", nil, nil, &resp)
	return resp, err
}

// AuditQueue lists the resolved reports waiting for compliance checks.
func (c *Client) AuditQueue(ctx context.Context) ([]dtos.ReportDTO, error) {
	var resp dtos.ReportListResponse
	if err := c.do(ctx, http.MethodGet, "/audit/reports", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) AuditStats(ctx context.Context) (dtos.ReportStatsDTO, error) {
	var resp dtos.ReportStatsDTO
	err := c.do(ctx, http.MethodGet, "/audit/stats", nil, nil, &resp)
	return resp, err
}
