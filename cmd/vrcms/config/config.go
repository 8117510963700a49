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
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

type baseConfig struct {
	APIURL   string        `json:"apiUrl" mapstructure:"apiUrl"`
	Timeout  int           `json:"timeout" mapstructure:"timeout"`
	Output   OutputFormat  `json:"output" mapstructure:"output"`
	Insecure bool          `json:"insecure" mapstructure:"insecure"`
	CacheTTL time.Duration `json:"cacheTTL" mapstructure:"cacheTTL"`

	RateLimit float64 `json:"rateLimit" mapstructure:"rateLimit"`
	RateBurst int     `json:"rateBurst" mapstructure:"rateBurst"`

	Trace       bool   `json:"trace" mapstructure:"trace"`
	SentryDSN   string `json:"sentryDsn" mapstructure:"sentryDsn"`
	Environment string `json:"environment" mapstructure:"environment"`
}

var RuntimeBaseConfig baseConfig

// ParseBaseConfig reads the merged flag, env and file configuration.
func ParseBaseConfig() error {
	cfg := baseConfig{}
	err := viper.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToOutputFormatHookFunc(),
	)))
	if err != nil {
		return errors.Wrap(err, "could not parse configuration")
	}

	if cfg.APIURL != "" {
		cfg.APIURL = sanitizeAPIURL(cfg.APIURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30
	}
	if cfg.Output == "" {
		cfg.Output = OutputTable
	}
	switch cfg.Output {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return errors.Errorf("unknown output format %q, use table, json or yaml", cfg.Output)
	}
	if cfg.Environment == "" {
		cfg.Environment = "production"
	}

	RuntimeBaseConfig = cfg
	return nil
}

func (c baseConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

var outputFormatType = reflect.TypeOf(OutputFormat(""))

func stringToOutputFormatHookFunc() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != outputFormatType {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		return OutputFormat(strings.ToLower(strings.TrimSpace(s))), nil
	}
}

func sanitizeAPIURL(apiURL string) string {
	apiURL = strings.TrimSpace(apiURL)
	apiURL = strings.TrimSuffix(apiURL, "/")

	if !strings.HasPrefix(apiURL, "http://") && !strings.HasPrefix(apiURL, "https://") {
		apiURL = "https://" + apiURL
	}
	return apiURL
}
