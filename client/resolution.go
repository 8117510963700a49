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

func (c *Client) Resolve(ctx context.Context, reportID string, req dtos.ResolveRequest) error {
	if err := dtos.Validate(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/admin/reports/"+url.PathEscape(reportID)+"/resolve", nil, req, nil)
}

// Resolution returns nil if the report was never resolved.
func (c *Client) Resolution(ctx context.Context, reportID string) (*dtos.ResolutionDTO, error) {
	var resp dtos.ResolutionResponse
	err := c.do(ctx, http.MethodGet, "/admin/reports/"+url.PathEscape(reportID)+"/resolution", nil, nil, &resp)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return resp.Resolution, nil
}
