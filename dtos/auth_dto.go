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

package dtos

type Role string

const (
	RoleReporter   Role = "reporter"
	RoleAdmin      Role = "admin"
	RoleAuditor    Role = "auditor"
	RoleSuperadmin Role = "superadmin"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token" validate:"required"`
	Username    string `json:"username"`
	Role        Role   `json:"role" validate:"required,oneof=reporter admin auditor superadmin"`
}

// MessageResponse is the envelope of every acknowledgement and error body.
type MessageResponse struct {
	Message string `json:"message"`
}
