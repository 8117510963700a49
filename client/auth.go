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

	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/pkg/errors"
)

func (c *Client) Login(ctx context.Context, email, password string) (dtos.LoginResponse, error) {
	req := dtos.LoginRequest{Email: email, Password: password}
	if err := dtos.Validate(req); err != nil {
		return dtos.LoginResponse{}, err
	}

	var resp dtos.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return dtos.LoginResponse{}, errors.Wrap(err, "login failed")
	}
	return resp, nil
}
