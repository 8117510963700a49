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

package commands

import (
	"log/slog"
	"sync"
	"time"

	"github.com/l3montree-dev/vrcms/accesscontrol"
	"github.com/l3montree-dev/vrcms/client"
	"github.com/l3montree-dev/vrcms/cmd/vrcms/config"
	"github.com/l3montree-dev/vrcms/services"
	"github.com/l3montree-dev/vrcms/session"
	"github.com/pkg/errors"
)

// swapped in tests
var (
	newSessionStore = func(apiURL string) session.Store {
		return session.NewKeyringStore(apiURL)
	}
	now = time.Now
)

var rbac = sync.OnceValues(func() (accesscontrol.AccessControl, error) {
	return accesscontrol.NewCasbinRBAC()
})

// commandContext carries the session of the logged in user and the services talking to the backend.
type commandContext struct {
	session   session.Session
	store     session.Store
	dashboard *services.Dashboard
}

func newClient(token string) (*client.Client, error) {
	cfg := config.RuntimeBaseConfig
	if cfg.APIURL == "" {
		return nil, errors.New("no api url configured, use --apiUrl or VRCMS_APIURL")
	}
	return client.New(cfg.APIURL, token, client.Options{
		Timeout:   cfg.RequestTimeout(),
		Insecure:  cfg.Insecure,
		CacheTTL:  cfg.CacheTTL,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	})
}

// authorize loads the session and makes sure its role may perform action on object.
func authorize(object accesscontrol.Object, action accesscontrol.Action) (*commandContext, error) {
	store := newSessionStore(config.RuntimeBaseConfig.APIURL)
	s, err := store.Load()
	if err == nil && s.IsAnonymous() {
		err = session.ErrNotLoggedIn
	}
	if err != nil {
		if errors.Is(err, session.ErrNotLoggedIn) {
			return nil, errors.Wrap(err, "please run 'vrcms login' first")
		}
		return nil, err
	}
	if err := s.Valid(now()); err != nil {
		if errors.Is(err, session.ErrSessionExpired) {
			if delErr := store.Delete(); delErr != nil {
				slog.Warn("could not remove expired session", "err", delErr)
			}
			return nil, errors.Wrap(err, "please run 'vrcms login' again")
		}
		return nil, err
	}

	ac, err := rbac()
	if err != nil {
		return nil, err
	}
	if err := ac.Check(s.Role, object, action); err != nil {
		return nil, err
	}

	c, err := newClient(s.Token)
	if err != nil {
		return nil, err
	}
	dashboard, err := services.NewDashboard(c)
	if err != nil {
		return nil, err
	}
	return &commandContext{session: s, store: store, dashboard: dashboard}, nil
}

// fail clears the session if the backend rejected the token.
func (c *commandContext) fail(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, client.ErrUnauthorized) {
		if delErr := c.store.Delete(); delErr != nil {
			slog.Warn("could not remove rejected session", "err", delErr)
		}
		return errors.Wrap(err, "the backend rejected the session, please run 'vrcms login' again")
	}
	return err
}
