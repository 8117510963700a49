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

func (c *Client) Standards(ctx context.Context) ([]dtos.ComplianceStandardDTO, error) {
	var resp dtos.StandardsResponse
	if err := c.do(ctx, http.MethodGet, "/audit/compliance/standards", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Standards, nil
}

// ComplianceChecks returns every check of a report, newest first.
func (c *Client) ComplianceChecks(ctx context.Context, reportID string) ([]dtos.ComplianceCheckDTO, error) {
	var resp dtos.ComplianceChecksResponse
	if err := c.do(ctx, http.MethodGet, "/audit/report/"+url.PathEscape(reportID)+"/compliance", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Checks, nil
}

func (c *Client) SubmitCompliance(ctx context.Context, reportID string, submission dtos.ComplianceSubmission) error {
	if err := dtos.Validate(submission); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/audit/report/"+url.PathEscape(reportID)+"/compliance", nil, submission, nil)
}
