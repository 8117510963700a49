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

package session

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/pkg/errors"
)

var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrSessionExpired = errors.New("session expired, please log in again")
)

// ReporterFilter narrows report lists to a single reporter.
type ReporterFilter struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Session is created at login and cleared at logout. It is passed
// explicitly to everything that needs the token or the reporter filter.
type Session struct {
	Token     string         `json:"token,omitempty"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	UserID    string         `json:"userId"`
	Role      dtos.Role      `json:"role"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Filter    ReporterFilter `json:"filter"`
}

// FromToken builds a session from a login response. The signature is not
// verified, only the backend can do that. The claims are read for the
// subject and the expiry.
func FromToken(token, username, email string, role dtos.Role) (Session, error) {
	if token == "" {
		return Session{}, errors.New("empty access token")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Session{}, errors.Wrap(err, "could not decode access token")
	}

	s := Session{
		Token:    token,
		Username: username,
		Email:    email,
		UserID:   subject(claims),
		Role:     dtos.Role(strings.ToLower(string(role))),
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}
	return s, nil
}

// older tokens carry the whole identity object as subject
func subject(claims jwt.MapClaims) string {
	switch sub := claims["sub"].(type) {
	case string:
		return sub
	case map[string]any:
		if id, ok := sub["_id"].(string); ok {
			return id
		}
	}
	return ""
}

func (s Session) Valid(now time.Time) error {
	if s.Token == "" {
		return ErrNotLoggedIn
	}
	if !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt) {
		return ErrSessionExpired
	}
	return nil
}

// WithFilter returns a copy of the session with the reporter filter replaced.
func (s Session) WithFilter(name, email string) Session {
	s.Filter = ReporterFilter{Name: strings.TrimSpace(name), Email: strings.TrimSpace(email)}
	return s
}

// Public returns a copy without the token, safe to print.
func (s Session) Public() Session {
	s.Token = ""
	return s
}

func (s Session) IsAnonymous() bool {
	return s.Token == ""
}
