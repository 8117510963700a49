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
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/l3montree-dev/vrcms/accesscontrol"
	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/l3montree-dev/vrcms/services"
	"github.com/l3montree-dev/vrcms/statemachine"
	"github.com/l3montree-dev/vrcms/utils"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func NewComplianceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Check resolved reports against compliance standards",
	}
	cmd.AddCommand(
		newStandardsCommand(),
		newComplianceQueueCommand(),
		newComplianceHistoryCommand(),
		newComplianceCheckCommand(),
	)
	return cmd
}

func newStandardsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "standards",
		Short: "List the compliance standards a report can be checked against",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectStandard, accesscontrol.ActionRead)
			if err != nil {
				return err
			}
			standards, err := c.dashboard.Compliance.Standards(cmd.Context())
			if err != nil {
				return c.fail(err)
			}
			return render(cmd.OutOrStdout(), standards, func(tw table.Writer) {
				tw.AppendHeader(table.Row{"ID", "Control", "Name", "Description"})
				for _, s := range standards {
					tw.AppendRow(table.Row{s.ID, utils.SafeDereference(s.ControlID), utils.SafeDereference(s.Name), text.WrapSoft(utils.SafeDereference(s.Description), 60)})
				}
			})
		},
	}
}

func newComplianceQueueCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "List resolved reports with their latest compliance result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectAuditQueue, accesscontrol.ActionRead)
			if err != nil {
				return err
			}
			rows, err := withSpinner("Loading reports", func() ([]services.ReportRow, error) {
				return c.dashboard.Reports.AuditQueue(cmd.Context())
			})
			if err != nil {
				return c.fail(err)
			}
			return render(cmd.OutOrStdout(), rows, reportRowsTable(rows))
		},
	}
}

func newComplianceHistoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "history <report-id>",
		Short: "List all compliance checks of a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectCompliance, accesscontrol.ActionRead)
			if err != nil {
				return err
			}
			checks, err := c.dashboard.Compliance.History(cmd.Context(), args[0])
			if err != nil {
				return c.fail(err)
			}
			return render(cmd.OutOrStdout(), checks, func(tw table.Writer) {
				tw.AppendHeader(table.Row{"Checked", "Auditor", "Overall", "Standard", "Result", "Notes"})
				for _, check := range checks {
					auditor := utils.FirstNonEmpty(utils.SafeDereference(check.AuditorUsername), utils.SafeDereference(check.AuditorEmail), check.AuditorID)
					tw.AppendRow(table.Row{check.CreatedAt.Format(statemachine.UnknownTime), auditor, resultColor(check.Overall), "", "", ""})
					for _, s := range check.Standards {
						tw.AppendRow(table.Row{"", "", "", utils.FirstNonEmpty(utils.SafeDereference(s.Title), s.StandardID), resultColor(s.Result), text.WrapSoft(s.Notes, 50)})
					}
					tw.AppendSeparator()
				}
			})
		},
	}
}

func resultColor(r dtos.ComplianceResult) string {
	if r == dtos.ComplianceResultCompliant {
		return text.FgGreen.Sprint(r)
	}
	return text.FgRed.Sprint(r)
}

// parseStandardResult parses id=result or id=result:notes.
func parseStandardResult(raw string) (dtos.StandardResultDTO, error) {
	id, rest, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(id) == "" {
		return dtos.StandardResultDTO{}, errors.Errorf("invalid standard %q, expected <standard-id>=<compliant|non-compliant>[:notes]", raw)
	}
	result, notes, _ := strings.Cut(rest, ":")
	return dtos.StandardResultDTO{
		StandardID: strings.TrimSpace(id),
		Result:     dtos.ComplianceResult(result),
		Notes:      notes,
	}, nil
}

func newComplianceCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <report-id>",
		Short: "Record a compliance check of a resolved report",
		Long: `Record a compliance check of a resolved report.

The overall result is non-compliant as soon as a single standard is
non-compliant.`,
		Example: `  vrcms compliance check 65a1b2c3d4e5f6a7b8c9d0e1 \
    --standard 65a1b2c3d4e5f6a7b8c9d0f0=compliant \
    --standard 65a1b2c3d4e5f6a7b8c9d0f1=non-compliant:"no input validation"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectCompliance, accesscontrol.ActionCreate)
			if err != nil {
				return err
			}
			raw, _ := cmd.Flags().GetStringArray("standard")
			results := make([]dtos.StandardResultDTO, 0, len(raw))
			for _, r := range raw {
				result, err := parseStandardResult(r)
				if err != nil {
					return err
				}
				results = append(results, result)
			}

			submission, err := withSpinner("Submitting compliance check", func() (dtos.ComplianceSubmission, error) {
				return c.dashboard.Compliance.Submit(cmd.Context(), args[0], results)
			})
			if err != nil {
				return c.fail(err)
			}
			return render(cmd.OutOrStdout(), submission, func(tw table.Writer) {
				tw.AppendHeader(table.Row{"Standard", "Result", "Notes"})
				for _, s := range submission.Standards {
					tw.AppendRow(table.Row{s.StandardID, resultColor(s.Result), s.Notes})
				}
				tw.AppendFooter(table.Row{"Overall", resultColor(submission.Overall), ""})
			})
		},
	}
	cmd.Flags().StringArray("standard", nil, "<standard-id>=<compliant|non-compliant>[:notes], repeatable")
	return cmd
}
