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

package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBaseConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Run("should use the provided config values if passed directly", func(t *testing.T) {
		viper.Reset()
		viper.Set("apiUrl", "http://example.com/api")
		viper.Set("timeout", 10)
		viper.Set("output", "JSON")
		viper.Set("cacheTTL", "15s")
		viper.Set("rateLimit", 2.5)

		require.NoError(t, ParseBaseConfig())
		assert.Equal(t, "http://example.com/api", RuntimeBaseConfig.APIURL)
		assert.Equal(t, 10*time.Second, RuntimeBaseConfig.RequestTimeout())
		assert.Equal(t, OutputJSON, RuntimeBaseConfig.Output)
		assert.Equal(t, 15*time.Second, RuntimeBaseConfig.CacheTTL)
		assert.Equal(t, 2.5, RuntimeBaseConfig.RateLimit)
	})

	t.Run("should fall back to defaults", func(t *testing.T) {
		viper.Reset()
		require.NoError(t, ParseBaseConfig())
		assert.Equal(t, 30*time.Second, RuntimeBaseConfig.RequestTimeout())
		assert.Equal(t, OutputTable, RuntimeBaseConfig.Output)
		assert.Equal(t, "production", RuntimeBaseConfig.Environment)
	})

	t.Run("should reject unknown output formats", func(t *testing.T) {
		viper.Reset()
		viper.Set("output", "xml")
		assert.Error(t, ParseBaseConfig())
	})

	t.Run("should sanitize the provided apiUrl like adding the protocol", func(t *testing.T) {
		viper.Reset()
		viper.Set("apiUrl", "example.com/api")
		require.NoError(t, ParseBaseConfig())
		assert.Equal(t, "https://example.com/api", RuntimeBaseConfig.APIURL)
	})

	t.Run("should remove a trailing slash from the apiUrl", func(t *testing.T) {
		viper.Reset()
		viper.Set("apiUrl", "https://example.com/api/")
		require.NoError(t, ParseBaseConfig())
		assert.Equal(t, "https://example.com/api", RuntimeBaseConfig.APIURL)
	})
}
