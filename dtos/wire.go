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

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/l3montree-dev/vrcms/utils"
)

// List decodes a JSON array. Anything which is not an array (null, an object,
// a string) decodes as an empty list instead of failing the whole document.
type List[T any] []T

func (l *List[T]) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		*l = List[T]{}
		return nil
	}

	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	*l = items
	return nil
}

// OptionalInt is an integer the backend may omit or send with a wrong type.
// Valid is only true if the wire value was a JSON number.
type OptionalInt struct {
	Value int
	Valid bool
}

func NewOptionalInt(v int) OptionalInt {
	return OptionalInt{Value: v, Valid: true}
}

func (o *OptionalInt) UnmarshalJSON(b []byte) error {
	*o = OptionalInt{}
	f, err := strconv.ParseFloat(string(bytes.TrimSpace(b)), 64)
	if err != nil {
		return nil
	}
	*o = OptionalInt{Value: int(f), Valid: true}
	return nil
}

func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(o.Value)), nil
}

// Timestamp keeps the raw wire representation of a point in time.
// Non-string values decode as an absent timestamp.
type Timestamp string

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		*t = ""
		return nil
	}
	*t = Timestamp(s)
	return nil
}

func (t Timestamp) IsZero() bool {
	return t == ""
}

// Format renders the timestamp for display or returns fallback.
func (t Timestamp) Format(fallback string) string {
	return utils.FormatTimestamp(string(t), fallback)
}
