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

package dtos

type FeedbackDTO struct {
	ID            string    `json:"_id,omitempty"`
	ReportID      string    `json:"report_id,omitempty"`
	AssigneeName  *string   `json:"assignee_name,omitempty"`
	AssigneeEmail *string   `json:"assignee_email,omitempty"`
	FeedbackText  *string   `json:"feedback_text,omitempty"`
	FeedbackAt    Timestamp `json:"feedback_at,omitempty"`
	MessageID     *string   `json:"message_id,omitempty"`
}

type FeedbackResponse struct {
	Feedback List[FeedbackDTO] `json:"feedback"`
}

type FeedbacksResponse struct {
	Feedbacks List[FeedbackDTO] `json:"feedbacks"`
}

type RecordFeedbackRequest struct {
	AssigneeName  string `json:"assignee_name" validate:"required"`
	AssigneeEmail string `json:"assignee_email" validate:"required,email"`
	FeedbackText  string `json:"feedback_text" validate:"required"`
	FeedbackAt    string `json:"feedback_at,omitempty"`
}
