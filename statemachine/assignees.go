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

func assigneeFromEvent(e dtos.AssignmentEventDTO) dtos.Assignee {
	return dtos.Assignee{
		Name:       utils.SafeDereference(e.AssigneeName),
		Username:   utils.SafeDereference(e.AssigneeUsername),
		Email:      utils.SafeDereference(e.AssigneeEmail),
		AssignedAt: e.AssignedAt,
		Notes:      utils.SafeDereference(e.Notes),
	}
}

// DedupeAssigneesNewestFirst lists every distinct assignee of the log once,
// newest first, with the metadata of their most recent assignment.
// Events without email and name are skipped.
func DedupeAssigneesNewestFirst(events []dtos.AssignmentEventDTO) []dtos.Assignee {
	return utils.DeduplicateSlice(utils.Map(utils.Reverse(events), assigneeFromEvent), dtos.Assignee.Key)
}

// FindAssignee looks up an assignee by its key, its email or its name.
func FindAssignee(assignees []dtos.Assignee, selector string) (dtos.Assignee, bool) {
	key := utils.FoldKey(selector)
	return utils.Find(assignees, func(a dtos.Assignee) bool {
		return key != "" && (a.Key() == key || utils.FoldEqual(a.Email, key) || utils.FoldEqual(a.Name, key))
	})
}

// MatchFeedbackToAssignee selects the feedback written by assignee. Order is preserved.
func MatchFeedbackToAssignee(feedback []dtos.FeedbackDTO, assignee dtos.Assignee) []dtos.FeedbackDTO {
	key := assignee.Key()
	return utils.Filter(feedback, func(f dtos.FeedbackDTO) bool {
		email := utils.SafeDereference(f.AssigneeEmail)
		name := utils.SafeDereference(f.AssigneeName)
		return utils.FoldEqual(email, key) || utils.FoldEqual(name, key) || utils.FoldEqual(name, assignee.Name)
	})
}

// PrefillResolutionNotes returns the text of the first, most recent, match.
// An empty result means the notes field has to be cleared.
func PrefillResolutionNotes(matches []dtos.FeedbackDTO) string {
	if len(matches) == 0 {
		return ""
	}
	return utils.SafeDereference(matches[0].FeedbackText)
}
