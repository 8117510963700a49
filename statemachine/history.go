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

package statemachine

import (
	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/l3montree-dev/vrcms/utils"
)

const (
	UnknownAssignee = "Unknown"
	UnknownTime     = "Unknown time"
	NoHistory       = "No assignment history"
)

type HistoryEntry struct {
	Assignee       string
	Email          string
	AssignedAt     string
	Notes          string
	IsReassignment bool
}

// HistoryView is the newest first rendition of an assignment log.
type HistoryView struct {
	Entries []HistoryEntry
	// Empty is set whenever there is nothing to render
	Empty bool
	// FromEmptyLog distinguishes a missing log from one filtered down to nothing
	FromEmptyLog bool
}

func (v HistoryView) Message() string {
	if v.Empty {
		return NoHistory
	}
	return ""
}

func displayIdentity(e dtos.AssignmentEventDTO) string {
	return utils.FirstNonEmpty(
		utils.SafeDereference(e.AssigneeName),
		utils.SafeDereference(e.AssigneeUsername),
		utils.SafeDereference(e.AssigneeEmail),
		UnknownAssignee,
	)
}

// BuildHistoryView renders events (oldest first) newest first. Without
// includeCurrent the newest event, the current assignment, is left out.
func BuildHistoryView(events []dtos.AssignmentEventDTO, includeCurrent bool) HistoryView {
	if len(events) == 0 {
		return HistoryView{Entries: []HistoryEntry{}, Empty: true, FromEmptyLog: true}
	}

	if !includeCurrent {
		events = events[:len(events)-1]
	}

	entries := utils.Map(utils.Reverse(events), func(e dtos.AssignmentEventDTO) HistoryEntry {
		return HistoryEntry{
			Assignee:       displayIdentity(e),
			Email:          utils.SafeDereference(e.AssigneeEmail),
			AssignedAt:     e.AssignedAt.Format(UnknownTime),
			Notes:          utils.SafeDereference(e.Notes),
			IsReassignment: e.IsReassignment,
		}
	})

	return HistoryView{Entries: entries, Empty: len(entries) == 0}
}
