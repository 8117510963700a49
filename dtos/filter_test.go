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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReportFilter(t *testing.T) {
	t.Run("should render only non empty criteria", func(t *testing.T) {
		f, err := NewReportFilter("2025-01-01", "", "high", "", "jane@example.com")
		require.NoError(t, err)

		q := f.Query()
		assert.Equal(t, "2025-01-01", q.Get("date_from"))
		assert.Equal(t, "High", q.Get("severity"))
		assert.Equal(t, "jane@example.com", q.Get("reporter_email"))
		assert.False(t, q.Has("date_to"))
		assert.False(t, q.Has("reporter_name"))
	})

	t.Run("should reject malformed dates", func(t *testing.T) {
		_, err := NewReportFilter("01.01.2025", "", "", "", "")
		assert.Error(t, err)
	})

	t.Run("should reject an inverted date range", func(t *testing.T) {
		_, err := NewReportFilter("2025-02-01", "2025-01-01", "", "", "")
		assert.Error(t, err)
	})

	t.Run("should reject unknown severities", func(t *testing.T) {
		_, err := NewReportFilter("", "", "blocker", "", "")
		assert.Error(t, err)
	})

	t.Run("should be empty without criteria", func(t *testing.T) {
		f, err := NewReportFilter(" ", "", "", "", "")
		require.NoError(t, err)
		assert.True(t, f.IsEmpty())
		assert.Empty(t, f.Query())
	})

	t.Run("should not modify the original when narrowing to a reporter", func(t *testing.T) {
		f, err := NewReportFilter("", "", "low", "", "")
		require.NoError(t, err)

		narrowed := f.WithReporter("Jane", "jane@example.com")
		assert.Empty(t, f.ReporterName())
		assert.Equal(t, "Jane", narrowed.ReporterName())
		assert.Equal(t, SeverityLow, narrowed.Severity())
	})
}
