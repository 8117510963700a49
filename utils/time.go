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

package utils

import (
	"strings"
	"time"
)

// DisplayTimeLayout is used for every timestamp shown to a user.
const DisplayTimeLayout = "2006-01-02 15:04:05"

// the backend serializes naive datetimes with isoformat() and flask falls back
// to RFC1123 for datetime values it encodes itself.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02",
}

// ParseTimestamp parses the timestamp formats the backend emits.
// It never fails loudly: ok is false for empty or unparseable input.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatTimestamp renders raw with DisplayTimeLayout or returns fallback.
func FormatTimestamp(raw string, fallback string) string {
	t, ok := ParseTimestamp(raw)
	if !ok {
		return fallback
	}
	return t.Format(DisplayTimeLayout)
}
