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
	"bufio"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/l3montree-dev/vrcms/cmd/vrcms/config"
	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/l3montree-dev/vrcms/session"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewLoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "login",
		Short:             "Log in to the VRCMS backend",
		DisableAutoGenTag: true,
		Long: `Log in to the VRCMS backend using email and password.

The session is stored in the keyring of the operating system, one session per
backend host. If --password is omitted it is read from stdin.`,
		Example: `  vrcms login --email admin@example.com
  echo "$PASSWORD" | vrcms login --email admin@example.com`,
		Args: cobra.NoArgs,
		RunE: runLogin,
	}

	cmd.Flags().String("email", "", "The email address of the account (required)")
	cmd.Flags().String("password", "", "The password of the account")
	cmd.MarkFlagRequired("email") // nolint:errcheck
	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	if password == "" {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return errors.Wrap(err, "could not read password")
		}
		password = strings.TrimRight(line, "\r\n")
	}

	c, err := newClient("")
	if err != nil {
		return err
	}
	resp, err := withSpinner("Logging in", func() (dtos.LoginResponse, error) {
		return c.Login(cmd.Context(), strings.TrimSpace(email), password)
	})
	if err != nil {
		return err
	}

	s, err := session.FromToken(resp.AccessToken, resp.Username, strings.TrimSpace(email), resp.Role)
	if err != nil {
		return err
	}
	if err := newSessionStore(config.RuntimeBaseConfig.APIURL).Save(s); err != nil {
		return err
	}

	slog.Debug("login successful", "userID", s.UserID, "role", s.Role)
	return render(cmd.OutOrStdout(), s.Public(), messageTable(fmt.Sprintf("Logged in as %s (%s)", s.Username, s.Role)))
}

func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newSessionStore(config.RuntimeBaseConfig.APIURL).Delete(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func NewWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSessionStore(config.RuntimeBaseConfig.APIURL).Load()
			if err != nil {
				return err
			}
			if err := s.Valid(now()); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), s.Public(), func(tw table.Writer) {
				tw.AppendRows([]table.Row{
					{"Username", s.Username},
					{"Email", s.Email},
					{"Role", s.Role},
					{"Expires", s.ExpiresAt.Local().Format("2006-01-02 15:04")},
				})
				if s.Filter != (session.ReporterFilter{}) {
					tw.AppendRow(table.Row{"Reporter filter", strings.TrimSpace(s.Filter.Name + " " + s.Filter.Email)})
				}
			})
		},
	}
}
