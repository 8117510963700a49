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
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/l3montree-dev/vrcms/cmd/vrcms/config"
	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/l3montree-dev/vrcms/services"
	"github.com/l3montree-dev/vrcms/statemachine"
	"github.com/l3montree-dev/vrcms/utils"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// render prints v in the configured output format. toTable is only called for table output.
func render(out io.Writer, v any, toTable func(tw table.Writer)) error {
	switch config.RuntimeBaseConfig.Output {
	case config.OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "could not encode json")
	case config.OutputYAML:
		// go through json to keep the wire field names
		b, err := json.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "could not encode yaml")
		}
		var generic any
		if err := json.Unmarshal(b, &generic); err != nil {
			return errors.Wrap(err, "could not encode yaml")
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return errors.Wrap(enc.Encode(generic), "could not encode yaml")
	default:
		tw := table.NewWriter()
		tw.SetAllowedRowLength(160)
		toTable(tw)
		_, err := fmt.Fprintln(out, tw.Render())
		return err
	}
}

// withSpinner shows a spinner on stderr while fn is running.
func withSpinner[T any](msg string, fn func() (T, error)) (T, error) {
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + msg
	s.Start()
	defer s.Stop()
	return fn()
}

func severityColor(s dtos.Severity) text.Colors {
	switch s {
	case dtos.SeverityCritical:
		return text.Colors{text.FgHiRed, text.Bold}
	case dtos.SeverityHigh:
		return text.Colors{text.FgRed}
	case dtos.SeverityMedium:
		return text.Colors{text.FgYellow}
	default:
		return text.Colors{text.FgGreen}
	}
}

func statusColor(s dtos.ReportStatus) text.Colors {
	switch {
	case s.Is(dtos.ReportStatusResolved):
		return text.Colors{text.FgGreen}
	case s.Is(dtos.ReportStatusInProgress):
		return text.Colors{text.FgBlue}
	default:
		return text.Colors{text.FgYellow}
	}
}

func badge(b *statemachine.ComplianceBadge) string {
	if b == nil {
		return ""
	}
	if b.Status == dtos.ComplianceResultCompliant {
		return text.FgGreen.Sprint(b.Label)
	}
	return text.FgRed.Sprint(b.Label)
}

func actionList(actions statemachine.ActionSet) string {
	return strings.Join(utils.Map(actions.List(), func(a statemachine.Action) string { return string(a) }), ", ")
}

func assigneeOf(r dtos.ReportDTO) string {
	return utils.FirstNonEmpty(utils.SafeDereference(r.AssigneeName), utils.SafeDereference(r.AssigneeUsername), "-")
}

func reportRowsTable(rows []services.ReportRow) func(tw table.Writer) {
	return func(tw table.Writer) {
		tw.AppendHeader(table.Row{"ID", "Title", "Severity", "Status", "Assignee", "History", "Compliance", "Actions"})
		for _, row := range rows {
			r := row.Report
			history := ""
			if row.HasHistory {
				history = "View History (" + strconv.Itoa(row.PriorAssignments) + ")"
			}
			if row.Reassigned {
				history = strings.TrimSpace(text.FgMagenta.Sprint("Reassigned") + " " + history)
			}
			tw.AppendRow(table.Row{
				r.ID(),
				text.WrapSoft(r.Title, 40),
				severityColor(r.Severity).Sprint(r.Severity),
				statusColor(r.Status).Sprint(r.Status),
				assigneeOf(r),
				history,
				badge(row.Compliance),
				actionList(row.Actions),
			})
		}
		tw.AppendFooter(table.Row{"", "", "", "", "", "", "Total", len(rows)})
	}
}

func reportDetailsTable(d services.ReportDetails) func(tw table.Writer) {
	return func(tw table.Writer) {
		r := d.Report
		tw.AppendRows([]table.Row{
			{"ID", r.ID()},
			{"Title", r.Title},
			{"Details", text.WrapText(r.Details, 80)},
			{"Severity", severityColor(r.Severity).Sprint(r.Severity)},
			{"Status", statusColor(r.Status).Sprint(r.Status)},
			{"Reporter", r.Reporter()},
			{"Submitted", r.CreatedAt.Format(statemachine.UnknownTime)},
			{"Assignee", assigneeOf(r)},
		})
		if r.IsResolved() {
			tw.AppendRows([]table.Row{
				{"Resolved", r.ResolvedAt.Format(statemachine.UnknownTime)},
				{"Resolve steps", text.WrapText(utils.SafeDereference(r.ResolveSteps), 80)},
			})
		}
		if d.Compliance != nil {
			tw.AppendRow(table.Row{"Compliance", badge(d.Compliance) + " " + d.Compliance.Timestamp.Format(statemachine.UnknownTime)})
		}
		tw.AppendRow(table.Row{"Actions", actionList(d.Actions)})
		tw.AppendSeparator()
		if d.History.Empty {
			tw.AppendRow(table.Row{"History", d.History.Message()})
			return
		}
		for i, e := range d.History.Entries {
			label := ""
			if i == 0 {
				label = "History"
			}
			tw.AppendRow(table.Row{label, historyLine(e)})
		}
	}
}

func historyLine(e statemachine.HistoryEntry) string {
	line := e.Assignee
	if e.Email != "" {
		line += " <" + e.Email + ">"
	}
	line += " at " + e.AssignedAt
	if e.Notes != "" {
		line += ": " + e.Notes
	}
	return line
}

func historyTable(view statemachine.HistoryView) func(tw table.Writer) {
	return func(tw table.Writer) {
		if view.Empty {
			tw.AppendRow(table.Row{view.Message()})
			return
		}
		tw.AppendHeader(table.Row{"#", "Assignee", "Email", "Assigned at", "Type", "Notes"})
		for i, e := range view.Entries {
			kind := string(dtos.AssignmentTypeAssignment)
			if e.IsReassignment {
				kind = string(dtos.AssignmentTypeReassignment)
			}
			tw.AppendRow(table.Row{i + 1, e.Assignee, e.Email, e.AssignedAt, kind, text.WrapSoft(e.Notes, 60)})
		}
	}
}

func feedbackTable(feedback []dtos.FeedbackDTO) func(tw table.Writer) {
	return func(tw table.Writer) {
		tw.AppendHeader(table.Row{"Report", "Assignee", "Email", "Received", "Feedback"})
		for _, f := range feedback {
			tw.AppendRow(table.Row{
				f.ReportID,
				utils.SafeDereference(f.AssigneeName),
				utils.SafeDereference(f.AssigneeEmail),
				f.FeedbackAt.Format(statemachine.UnknownTime),
				text.WrapSoft(utils.SafeDereference(f.FeedbackText), 60),
			})
		}
	}
}

func statsTable(stats dtos.ReportStatsDTO) func(tw table.Writer) {
	return func(tw table.Writer) {
		tw.AppendHeader(table.Row{"Severity", "Total", "Resolved", "Pending", "Open"})
		for _, sev := range dtos.Severities() {
			s := stats.SeveritySnapshot[strings.ToLower(string(sev))]
			tw.AppendRow(table.Row{severityColor(sev).Sprint(sev), s.Total, s.Resolved, s.Pending, s.Open})
		}
		tw.AppendFooter(table.Row{"All", stats.TotalReports, stats.ResolvedReports, stats.PendingReports, stats.OpenReports})
	}
}

func messageTable(msg string) func(tw table.Writer) {
	return func(tw table.Writer) {
		tw.AppendRow(table.Row{msg})
	}
}
