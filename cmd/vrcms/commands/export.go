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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/l3montree-dev/vrcms/accesscontrol"
	"github.com/l3montree-dev/vrcms/cmd/vrcms/config"
	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// reportExport is everything known about a report in one document.
type reportExport struct {
	Report     dtos.ReportDTO            `json:"report"`
	History    []historyExport           `json:"history"`
	Feedback   []dtos.FeedbackDTO        `json:"feedback"`
	Resolution *dtos.ResolutionDTO       `json:"resolution,omitempty"`
	Checks     []dtos.ComplianceCheckDTO `json:"complianceChecks,omitempty"`
}

type historyExport struct {
	Assignee       string `json:"assignee"`
	Email          string `json:"email,omitempty"`
	AssignedAt     string `json:"assignedAt"`
	Notes          string `json:"notes,omitempty"`
	IsReassignment bool   `json:"isReassignment"`
}

// exportFileName is the slug of the title followed by the id, e.g. stored-xss-in-comments-65a1b2c3d4e5f6a7b8c9d0e1.json
func exportFileName(report dtos.ReportDTO, ext string) string {
	name := slug.Make(report.Title)
	if name == "" {
		return report.ID() + "." + ext
	}
	return name + "-" + report.ID() + "." + ext
}

func newExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <report-id>...",
		Short: "Write reports with history, feedback and resolution to files",
		Long: `Write reports with history, feedback and resolution to files.

Each report is written to <dir>/<title-slug>-<id>.json, or .yaml with -o yaml.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := authorize(accesscontrol.ObjectReport, accesscontrol.ActionRead)
			if err != nil {
				return err
			}
			dir, _ := cmd.Flags().GetString("dir")
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errors.Wrap(err, "could not create export directory")
			}

			ext := "json"
			if config.RuntimeBaseConfig.Output == config.OutputYAML {
				ext = "yaml"
			}
			for _, id := range args {
				doc, err := collectExport(cmd, c, id)
				if err != nil {
					return c.fail(err)
				}
				path := filepath.Join(dir, exportFileName(doc.Report, ext))
				if err := writeExport(path, doc, ext); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().String("dir", ".", "Directory to write the files to")
	return cmd
}

func collectExport(cmd *cobra.Command, c *commandContext, id string) (reportExport, error) {
	ctx := cmd.Context()
	details, err := c.dashboard.Reports.Details(ctx, id)
	if err != nil {
		return reportExport{}, err
	}
	doc := reportExport{
		Report:   details.Report,
		History:  make([]historyExport, 0, len(details.History.Entries)),
		Feedback: []dtos.FeedbackDTO{},
	}
	for _, e := range details.History.Entries {
		doc.History = append(doc.History, historyExport(e))
	}

	if checkRole(c, accesscontrol.ObjectFeedback, accesscontrol.ActionRead) == nil {
		if doc.Feedback, err = c.dashboard.Feedback.List(ctx, id); err != nil {
			return reportExport{}, err
		}
	}
	if details.Report.IsResolved() && checkRole(c, accesscontrol.ObjectResolution, accesscontrol.ActionRead) == nil {
		if doc.Resolution, err = c.dashboard.Resolve.Resolution(ctx, id); err != nil {
			return reportExport{}, err
		}
	}
	if details.Report.IsResolved() && checkRole(c, accesscontrol.ObjectCompliance, accesscontrol.ActionRead) == nil {
		if doc.Checks, err = c.dashboard.Compliance.History(ctx, id); err != nil {
			return reportExport{}, err
		}
	}
	return doc, nil
}

func writeExport(path string, doc reportExport, ext string) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not encode export")
	}
	if ext == "yaml" {
		// go through json to keep the wire field names
		var generic any
		if err := json.Unmarshal(b, &generic); err != nil {
			return errors.Wrap(err, "could not encode export")
		}
		if b, err = yaml.Marshal(generic); err != nil {
			return errors.Wrap(err, "could not encode export")
		}
	}
	return errors.Wrapf(os.WriteFile(path, b, 0o600), "could not write %s", path)
}
