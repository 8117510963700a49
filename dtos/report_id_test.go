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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeReportID(t *testing.T) {
	const id = "65a1b2c3d4e5f6a7b8c9d0e1"

	for _, raw := range []string{id, "  " + id + "\n", `"` + id + `"`, `'` + id + `'`, `ObjectId("` + id + `")`} {
		t.Run("should extract the id from "+raw, func(t *testing.T) {
			got, err := NormalizeReportID(raw)
			assert.NoError(t, err)
			assert.Equal(t, id, got)
		})
	}

	t.Run("should lower case the id", func(t *testing.T) {
		got, err := NormalizeReportID("65A1B2C3D4E5F6A7B8C9D0E1")
		assert.NoError(t, err)
		assert.Equal(t, id, got)
	})

	for _, raw := range []string{"", `""`, "not-an-id", "65a1b2c3"} {
		t.Run("should reject "+raw, func(t *testing.T) {
			_, err := NormalizeReportID(raw)
			assert.True(t, errors.Is(err, ErrInvalidReportID))
		})
	}
}
