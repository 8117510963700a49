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
	"encoding/json"
	"net/url"
	"sync"

	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
)

type Store interface {
	Load() (Session, error)
	Save(s Session) error
	Delete() error
}

const keyringUser = "vrcms"

type KeyringStore struct {
	service string
}

var _ Store = KeyringStore{}

// NewKeyringStore keeps one session per backend host.
func NewKeyringStore(apiURL string) KeyringStore {
	host := apiURL
	if u, err := url.Parse(apiURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return KeyringStore{service: "vrcms/" + host}
}

func (k KeyringStore) Load() (Session, error) {
	raw, err := keyring.Get(k.service, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Session{}, ErrNotLoggedIn
		}
		return Session{}, errors.Wrap(err, "could not read session from keyring")
	}
	var s Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Session{}, errors.Wrap(err, "could not decode stored session")
	}
	return s, nil
}

func (k KeyringStore) Save(s Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "could not encode session")
	}
	return errors.Wrap(keyring.Set(k.service, keyringUser, string(b)), "could not store session in keyring")
}

func (k KeyringStore) Delete() error {
	err := keyring.Delete(k.service, keyringUser)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return errors.Wrap(err, "could not delete session from keyring")
	}
	return nil
}

type MemoryStore struct {
	mu      sync.Mutex
	session *Session
}

var _ Store = &MemoryStore{}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return Session{}, ErrNotLoggedIn
	}
	return *m.session, nil
}

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = &s
	return nil
}

func (m *MemoryStore) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}
