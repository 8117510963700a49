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
	"bytes"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestExecute(t *testing.T) {
	t.Run("should report a panic and pass it on", func(t *testing.T) {
		previous := slog.Default()
		t.Cleanup(func() { slog.SetDefault(previous) })
		var logs bytes.Buffer
		slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))

		cmd := &cobra.Command{
			Use: "explode",
			RunE: func(cmd *cobra.Command, args []string) error {
				panic("boom")
			},
		}
		cmd.SetArgs([]string{})

		assert.PanicsWithValue(t, "boom", func() { _ = execute(cmd) })
		assert.Contains(t, logs.String(), "critical error encountered (recover)")
		assert.Contains(t, logs.String(), "panic while running command")
	})

	t.Run("should return command errors", func(t *testing.T) {
		cmd := &cobra.Command{
			Use:           "fail",
			SilenceErrors: true,
			SilenceUsage:  true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return assert.AnError
			},
		}
		cmd.SetArgs([]string{})

		assert.ErrorIs(t, execute(cmd), assert.AnError)
	})
}
