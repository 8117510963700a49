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
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/l3montree-dev/vrcms/accesscontrol"
	"github.com/l3montree-dev/vrcms/client"
	"github.com/l3montree-dev/vrcms/cmd/vrcms/config"
	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/l3montree-dev/vrcms/monitoring"
	"github.com/l3montree-dev/vrcms/services"
	"github.com/l3montree-dev/vrcms/session"
	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set via ldflags during build
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	defaultConfigFilename = ".vrcms"
)

var shutdownTracing func(context.Context) error

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		SilenceUsage:      true,
		Use:               "vrcms",
		Short:             "Vulnerability Report & Compliance Management",
		Version:           version,
		DisableAutoGenTag: true,
		Long: `Vulnerability Report & Compliance Management

vrcms talks to a VRCMS backend. Reporters submit vulnerability reports, admins
assign, reassign and resolve them and auditors check resolved reports for
compliance. Configuration can be provided via a ./.vrcms config file or
environment variables (prefix VRCMS_).`,
		Example: `  # Log in
  vrcms login --email admin@example.com

  # List all open high severity reports
  vrcms reports list --severity high

  # Assign a report
  vrcms reports assign 65a1b2c3d4e5f6a7b8c9d0e1 --name "Jane Doe" --email jane@example.com`,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := cmd.Flags().GetString("logLevel")
			if err != nil {
				return err
			}

			switch level {
			case "debug":
				initLogger(slog.LevelDebug)
			case "info":
				initLogger(slog.LevelInfo)
			case "warn":
				initLogger(slog.LevelWarn)
			case "error":
				initLogger(slog.LevelError)
			default:
				initLogger(slog.LevelInfo)
			}

			if err := initializeConfig(cmd); err != nil {
				return err
			}

			cfg := config.RuntimeBaseConfig
			if err := monitoring.InitSentry(cfg.SentryDSN, version, cfg.Environment); err != nil {
				slog.Warn("error reporting disabled", "err", err)
			}
			if cfg.Trace {
				shutdown, err := monitoring.InitTracing(cmd.ErrOrStderr(), "vrcms", version)
				if err != nil {
					return err
				}
				shutdownTracing = shutdown
			}
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "VRCMS CLI\n")
			fmt.Fprintf(out, "Version:    %s\n", version)
			fmt.Fprintf(out, "Commit:     %s\n", commit)
			fmt.Fprintf(out, "Built:      %s\n", date)
		},
	}

	rootCmd.AddCommand(
		versionCmd,
		NewLoginCommand(),
		NewLogoutCommand(),
		NewWhoamiCommand(),
		NewReportsCommand(),
		NewSubmitCommand(),
		NewMyReportsCommand(),
		NewComplianceCommand(),
	)

	rootCmd.PersistentFlags().StringP("logLevel", "l", "info", "Set the log level. Options: debug, info, warn, error")
	rootCmd.PersistentFlags().String("apiUrl", "", "The url of the VRCMS api, e.g. https://vrcms.example.com/api")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format. Options: table, json, yaml")
	rootCmd.PersistentFlags().Int("timeout", 30, "Request timeout in seconds")
	rootCmd.PersistentFlags().Bool("insecure", false, "Skip TLS certificate verification")
	rootCmd.PersistentFlags().Duration("cacheTTL", 0, "Cache GET responses for this long, 0 disables the cache")
	rootCmd.PersistentFlags().Float64("rateLimit", 0, "Maximum requests per second, 0 disables the limit")
	rootCmd.PersistentFlags().Int("rateBurst", 5, "Burst size of the rate limit")
	rootCmd.PersistentFlags().Bool("trace", false, "Print a trace of every request to stderr")
	rootCmd.PersistentFlags().String("sentryDsn", "", "Report unexpected errors to this sentry dsn")

	return rootCmd
}

func Execute() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "could not load .env file:", err)
	}

	err := execute(NewRootCommand())
	if shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if shutdownErr := shutdownTracing(ctx); shutdownErr != nil {
			slog.Warn("could not flush traces", "err", shutdownErr)
		}
		cancel()
	}
	if err != nil {
		if isUnexpected(err) {
			monitoring.Alert("command failed", err)
		}
		monitoring.Flush()
		os.Exit(1)
	}
}

// execute runs cmd and reports a panic before passing it on.
func execute(cmd *cobra.Command) error {
	defer func() {
		if r := recover(); r != nil {
			monitoring.RecoverAndAlert("panic while running command", r)
			monitoring.Flush()
			panic(r)
		}
	}()
	return cmd.Execute()
}

// isUnexpected tells bugs and outages apart from errors the user can fix.
func isUnexpected(err error) bool {
	var apiErr *client.APIError
	var validationErr validator.ValidationErrors
	switch {
	case errors.Is(err, session.ErrNotLoggedIn),
		errors.Is(err, session.ErrSessionExpired),
		errors.Is(err, client.ErrUnauthorized),
		errors.Is(err, client.ErrDuplicateSubmission),
		errors.Is(err, accesscontrol.ErrForbidden),
		errors.Is(err, dtos.ErrInvalidReportID),
		errors.Is(err, services.ErrReportResolved),
		errors.Is(err, services.ErrNotResolved),
		errors.Is(err, services.ErrNotResolvable),
		errors.Is(err, services.ErrMissingResolveSteps),
		errors.As(err, &validationErr):
		return false
	case errors.As(err, &apiErr):
		return apiErr.StatusCode >= 500
	}
	return true
}

func initLogger(level slog.Leveler) {
	w := os.Stderr

	slog.SetDefault(slog.New(
		tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}),
	))
}

func initializeConfig(cmd *cobra.Command) error {
	viper.SetConfigName(defaultConfigFilename)
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home + "/.config/vrcms/")
	}
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if there isn't a config file
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
		slog.Debug("no config file found")
	}

	viper.SetEnvPrefix("VRCMS")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	bindFlags(cmd)

	return config.ParseBaseConfig()
}

// Bind each cobra flag to its associated viper configuration (config file and environment variable)
func bindFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		configName := f.Name

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && viper.IsSet(configName) {
			val := viper.Get(configName)
			cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)) // nolint: errcheck
		}

		if err := viper.BindPFlag(configName, f); err != nil {
			slog.Error("could not bind flag to viper", "err", err)
		}
	})
}
