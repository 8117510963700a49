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
	"github.com/l3montree-dev/vrcms/accesscontrol"
	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/l3montree-dev/vrcms/services"
	"github.com/spf13/cobra"
)

func NewSubmitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a vulnerability report",
		Example: `  vrcms submit --title "Stored XSS in comments" --severity high --details "..."`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectReport, accesscontrol.ActionCreate)
			if err != nil {
				return err
			}
			title, _ := cmd.Flags().GetString("title")
			details, _ := cmd.Flags().GetString("details")
			severity, _ := cmd.Flags().GetString("severity")

			report, err := withSpinner("Submitting report", func() (dtos.ReportDTO, error) {
				return c.dashboard.Reports.Submit(cmd.Context(), title, details, severity)
			})
			if err != nil {
				return c.fail(err)
			}
			row := services.NewReportRow(report)
			return render(cmd.OutOrStdout(), report, reportRowsTable([]services.ReportRow{row}))
		},
	}
	cmd.Flags().String("title", "", "Short title of the vulnerability (required)")
	cmd.Flags().String("details", "", "Description and steps to reproduce (required)")
	cmd.Flags().String("severity", "", "Options: low, medium, high, critical (required)")
	cmd.MarkFlagRequired("title")    // nolint:errcheck
	cmd.MarkFlagRequired("details")  // nolint:errcheck
	cmd.MarkFlagRequired("severity") // nolint:errcheck
	return cmd
}

func NewMyReportsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "my-reports",
		Short: "List the reports you submitted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectOwnReport, accesscontrol.ActionRead)
			if err != nil {
				return err
			}
			rows, err := c.dashboard.Reports.MyReports(cmd.Context())
			if err != nil {
				return c.fail(err)
			}
			return render(cmd.OutOrStdout(), rows, reportRowsTable(rows))
		},
	}
}
