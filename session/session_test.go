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
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestFromToken(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("should read subject and expiry without the signing key", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"sub": "65a1b2c3d4e5f6a7b8c9d0e1", "exp": exp.Unix()})

		s, err := FromToken(token, "jane", "jane@example.com", "Admin")
		require.NoError(t, err)
		assert.Equal(t, "65a1b2c3d4e5f6a7b8c9d0e1", s.UserID)
		assert.Equal(t, dtos.RoleAdmin, s.Role)
		assert.True(t, exp.Equal(s.ExpiresAt))
	})

	t.Run("should accept an identity object as subject", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"sub": map[string]any{"_id": "abc", "role": "auditor"}})

		s, err := FromToken(token, "audrey", "", dtos.RoleAuditor)
		require.NoError(t, err)
		assert.Equal(t, "abc", s.UserID)
		assert.True(t, s.ExpiresAt.IsZero())
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := FromToken("not.a.token", "jane", "", dtos.RoleAdmin)
		assert.Error(t, err)
		_, err = FromToken("", "jane", "", dtos.RoleAdmin)
		assert.Error(t, err)
	})
}

func TestValid(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, errors.Is(Session{}.Valid(now), ErrNotLoggedIn))
	assert.NoError(t, Session{Token: "x"}.Valid(now))
	assert.NoError(t, Session{Token: "x", ExpiresAt: now.Add(time.Minute)}.Valid(now))
	assert.True(t, errors.Is(Session{Token: "x", ExpiresAt: now}.Valid(now), ErrSessionExpired))
}

func TestWithFilter(t *testing.T) {
	s := Session{Token: "x"}
	filtered := s.WithFilter(" Jane ", "jane@example.com")
	assert.Equal(t, ReporterFilter{Name: "Jane", Email: "jane@example.com"}, filtered.Filter)
	assert.Empty(t, s.Filter)
}

func TestStores(t *testing.T) {
	keyring.MockInit()

	stores := map[string]Store{
		"keyring": NewKeyringStore("https://vrcms.example.com/api"),
		"memory":  NewMemoryStore(),
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load()
			assert.True(t, errors.Is(err, ErrNotLoggedIn))

			saved := Session{Token: "tok", Username: "jane", Role: dtos.RoleReporter, Filter: ReporterFilter{Email: "r@x"}}
			require.NoError(t, store.Save(saved))

			loaded, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, saved, loaded)

			require.NoError(t, store.Delete())
			_, err = store.Load()
			assert.True(t, errors.Is(err, ErrNotLoggedIn))

			// deleting twice is fine
			assert.NoError(t, store.Delete())
		})
	}
}

func TestNewKeyringStore(t *testing.T) {
	assert.Equal(t, "vrcms/vrcms.example.com", NewKeyringStore("https://vrcms.example.com/api").service)
	assert.Equal(t, "vrcms/localhost:5000", NewKeyringStore("http://localhost:5000").service)
}
