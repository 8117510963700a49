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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		ok     bool
		expect string
	}{
		{name: "rfc3339", raw: "2025-03-01T10:15:00Z", ok: true, expect: "2025-03-01 10:15:00"},
		{name: "naive isoformat", raw: "2025-03-01T10:15:00", ok: true, expect: "2025-03-01 10:15:00"},
		{name: "naive isoformat with micros", raw: "2025-03-01T10:15:00.123456", ok: true, expect: "2025-03-01 10:15:00"},
		{name: "http date", raw: "Sat, 01 Mar 2025 10:15:00 GMT", ok: true, expect: "2025-03-01 10:15:00"},
		{name: "date only", raw: "2025-03-01", ok: true, expect: "2025-03-01 00:00:00"},
		{name: "empty", raw: "", ok: false},
		{name: "garbage", raw: "yesterday-ish", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := ParseTimestamp(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expect, parsed.Format(DisplayTimeLayout))
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	assert.Equal(t, "Unknown time", FormatTimestamp("not a date", "Unknown time"))
	assert.Equal(t, "2025-03-01 10:15:00", FormatTimestamp("2025-03-01T10:15:00", "Unknown time"))
}
