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
	"github.com/spf13/cobra"
)

func newFeedbackCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback [report-id]",
		Short: "List the feedback assignees sent, for one report or all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectFeedback, accesscontrol.ActionRead)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				feedback, err := c.dashboard.Feedback.All(cmd.Context())
				if err != nil {
					return c.fail(err)
				}
				return render(cmd.OutOrStdout(), feedback, feedbackTable(feedback))
			}
			feedback, err := c.dashboard.Feedback.List(cmd.Context(), args[0])
			if err != nil {
				return c.fail(err)
			}
			return render(cmd.OutOrStdout(), feedback, feedbackTable(feedback))
		},
	}

	add := &cobra.Command{
		Use:   "add <report-id>",
		Short: "Record feedback an assignee sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectFeedback, accesscontrol.ActionCreate)
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			text, _ := cmd.Flags().GetString("text")
			if err := c.fail(c.dashboard.Feedback.Record(cmd.Context(), args[0], name, email, text)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Feedback recorded")
			return nil
		},
	}
	add.Flags().String("name", "", "Name of the assignee (required)")
	add.Flags().String("email", "", "Email of the assignee (required)")
	add.Flags().String("text", "", "The feedback (required)")
	add.MarkFlagRequired("name")  // nolint:errcheck
	add.MarkFlagRequired("email") // nolint:errcheck
	add.MarkFlagRequired("text")  // nolint:errcheck

	cmd.AddCommand(add)
	return cmd
}
