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
	"fmt"

	"github.com/l3montree-dev/vrcms/accesscontrol"
	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/l3montree-dev/vrcms/services"
	"github.com/spf13/cobra"
)

func NewReportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Manage vulnerability reports",
		Long: `Manage vulnerability reports.

Every report offers the actions its state permits: open reports can be
assigned, assigned reports can be reassigned or resolved, resolved reports
can only be viewed.`,
	}

	cmd.AddCommand(
		newReportsListCommand(),
		newReportsShowCommand(),
		newReportsHistoryCommand(),
		newAssignCommand(false),
		newAssignCommand(true),
		newResolveCommand(),
		newFeedbackCommand(),
		newStatsCommand(),
		newExportCommand(),
		newFilterCommand(),
		newAssignmentsCommand(),
	)
	return cmd
}

func newReportsListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all reports",
		Example: `  vrcms reports list --severity critical
  vrcms reports list --from 2025-01-01 --to 2025-01-31 -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectReportList, accesscontrol.ActionRead)
			if err != nil {
				return err
			}
			filter, err := filterFromFlags(cmd, c)
			if err != nil {
				return err
			}
			rows, err := withSpinner("Loading reports", func() ([]services.ReportRow, error) {
				return c.dashboard.Reports.Overview(cmd.Context(), filter)
			})
			if err != nil {
				return c.fail(err)
			}
			return render(cmd.OutOrStdout(), rows, reportRowsTable(rows))
		},
	}
	cmd.Flags().String("from", "", "Only reports submitted on or after this date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Only reports submitted on or before this date (YYYY-MM-DD)")
	cmd.Flags().String("severity", "", "Only reports of this severity. Options: low, medium, high, critical")
	cmd.Flags().String("reporter-name", "", "Only reports of this reporter, overrides the stored filter")
	cmd.Flags().String("reporter-email", "", "Only reports of this reporter email, overrides the stored filter")
	return cmd
}

// filterFromFlags builds the filter once per invocation. The reporter
// filter stored in the session applies unless overridden.
func filterFromFlags(cmd *cobra.Command, c *commandContext) (dtos.ReportFilter, error) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	severity, _ := cmd.Flags().GetString("severity")
	name, _ := cmd.Flags().GetString("reporter-name")
	email, _ := cmd.Flags().GetString("reporter-email")
	if name == "" && email == "" {
		name, email = c.session.Filter.Name, c.session.Filter.Email
	}
	return dtos.NewReportFilter(from, to, severity, name, email)
}

func newReportsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "show <report-id>",
		Short:   "Show a report with its assignment history",
		Aliases: []string{"details"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectReport, accesscontrol.ActionRead)
			if err != nil {
				return err
			}
			details, err := withSpinner("Loading report", func() (services.ReportDetails, error) {
				return c.dashboard.Reports.Details(cmd.Context(), args[0])
			})
			if err != nil {
				return c.fail(err)
			}
			return render(cmd.OutOrStdout(), details, reportDetailsTable(details))
		},
	}
}

func newReportsHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <report-id>",
		Short: "Show the assignment history of a report, newest first",
		Long: `Show the assignment history of a report, newest first.

By default the current assignment is left out and only previous assignees are
listed. Use --include-current to list the current assignment as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectAssignment, accesscontrol.ActionRead)
			if err != nil {
				return err
			}
			includeCurrent, _ := cmd.Flags().GetBool("include-current")
			view, err := c.dashboard.Reports.History(cmd.Context(), args[0], includeCurrent)
			if err != nil {
				return c.fail(err)
			}
			return render(cmd.OutOrStdout(), view, historyTable(view))
		},
	}
	cmd.Flags().Bool("include-current", false, "Include the current assignment")
	return cmd
}

func newAssignmentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "assignments",
		Short: "List every report with its latest assignee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectAssignment, accesscontrol.ActionRead)
			if err != nil {
				return err
			}
			rows, err := c.dashboard.Assignments.Assignments(cmd.Context())
			if err != nil {
				return c.fail(err)
			}
			return render(cmd.OutOrStdout(), rows, reportRowsTable(rows))
		},
	}
}

func newAssignCommand(reassign bool) *cobra.Command {
	use, short := "assign", "Assign a report that nobody is working on"
	if reassign {
		use, short = "reassign", "Hand an assigned report over to somebody else"
	}
	cmd := &cobra.Command{
		Use:   use + " <report-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectReport, accesscontrol.ActionUpdate)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")

			current, err := c.dashboard.Reports.Details(cmd.Context(), args[0])
			if err != nil {
				return c.fail(err)
			}
			if reassign && !current.Actions.Reassign {
				return fmt.Errorf("report %s has no assignee, use 'vrcms reports assign'", current.Report.ID())
			}
			if !reassign && !current.Actions.Assign && !current.Report.IsResolved() {
				return fmt.Errorf("report %s is assigned to %s already, use 'vrcms reports reassign'", current.Report.ID(), assigneeOf(current.Report))
			}

			report, err := withSpinner("Assigning report", func() (dtos.ReportDTO, error) {
				return c.dashboard.Assignments.Assign(cmd.Context(), args[0], name, email)
			})
			if err != nil {
				return c.fail(err)
			}
			row := services.NewReportRow(report)
			return render(cmd.OutOrStdout(), row, reportRowsTable([]services.ReportRow{row}))
		},
	}
	cmd.Flags().String("name", "", "Name of the assignee (required)")
	cmd.Flags().String("email", "", "Email of the assignee (required)")
	cmd.MarkFlagRequired("name")  // nolint:errcheck
	cmd.MarkFlagRequired("email") // nolint:errcheck
	return cmd
}

func newResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <report-id>",
		Short: "Resolve a report",
		Long: `Resolve a report.

The most recent assignee is selected unless --assignee names another previous
assignee by email or name. Without --steps the feedback of the selected
assignee is used as resolve steps.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectResolution, accesscontrol.ActionCreate)
			if err != nil {
				return err
			}
			selector, _ := cmd.Flags().GetString("assignee")
			steps, _ := cmd.Flags().GetString("steps")

			plan, err := c.dashboard.Resolve.Prepare(cmd.Context(), args[0], selector)
			if err != nil {
				return c.fail(err)
			}
			if steps == "" {
				steps = plan.Notes
			}

			report, err := withSpinner("Resolving report", func() (dtos.ReportDTO, error) {
				return c.dashboard.Resolve.Submit(cmd.Context(), args[0], steps, plan.Selected)
			})
			if err != nil {
				return c.fail(err)
			}
			row := services.NewReportRow(report)
			return render(cmd.OutOrStdout(), row, reportRowsTable([]services.ReportRow{row}))
		},
	}
	cmd.Flags().String("steps", "", "The steps taken to resolve the report")
	cmd.Flags().String("assignee", "", "Email or name of the assignee who resolved it")
	return cmd
}

func newStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show report statistics per severity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectStats, accesscontrol.ActionRead)
			if err != nil {
				return err
			}
			local, _ := cmd.Flags().GetBool("local")

			var stats dtos.ReportStatsDTO
			if local {
				// only admins may list the reports the numbers are computed from
				if err := checkRole(c, accesscontrol.ObjectReportList, accesscontrol.ActionRead); err != nil {
					return err
				}
				filter, err := filterFromFlags(cmd, c)
				if err != nil {
					return err
				}
				rows, err := c.dashboard.Reports.Overview(cmd.Context(), filter)
				if err != nil {
					return c.fail(err)
				}
				stats = services.Summarize(rowReports(rows))
			} else {
				stats, err = c.dashboard.Stats.Stats(cmd.Context(), c.session.Role)
				if err != nil {
					return c.fail(err)
				}
			}
			return render(cmd.OutOrStdout(), stats, statsTable(stats))
		},
	}
	cmd.Flags().Bool("local", false, "Compute the numbers from the filtered report list")
	cmd.Flags().String("from", "", "With --local: only reports submitted on or after this date (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "With --local: only reports submitted on or before this date (YYYY-MM-DD)")
	cmd.Flags().String("severity", "", "With --local: only reports of this severity")
	cmd.Flags().String("reporter-name", "", "With --local: only reports of this reporter")
	cmd.Flags().String("reporter-email", "", "With --local: only reports of this reporter email")
	return cmd
}

func checkRole(c *commandContext, object accesscontrol.Object, action accesscontrol.Action) error {
	ac, err := rbac()
	if err != nil {
		return err
	}
	return ac.Check(c.session.Role, object, action)
}

func rowReports(rows []services.ReportRow) []dtos.ReportDTO {
	reports := make([]dtos.ReportDTO, 0, len(rows))
	for _, r := range rows {
		reports = append(reports, r.Report)
	}
	return reports
}

func newFilterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Store a reporter filter applied to every report list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectReportList, accesscontrol.ActionRead)
			if err != nil {
				return err
			}
			reset, _ := cmd.Flags().GetBool("clear")
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			if reset {
				name, email = "", ""
			}

			s := c.session.WithFilter(name, email)
			if err := c.store.Save(s); err != nil {
				return err
			}
			msg := "Reporter filter cleared"
			if s.Filter.Name != "" || s.Filter.Email != "" {
				msg = fmt.Sprintf("Reporter filter set to %q %q", s.Filter.Name, s.Filter.Email)
			}
			return render(cmd.OutOrStdout(), s.Filter, messageTable(msg))
		},
	}
	cmd.Flags().String("name", "", "Reporter name")
	cmd.Flags().String("email", "", "Reporter email")
	cmd.Flags().Bool("clear", false, "Remove the stored filter")
	return cmd
}
