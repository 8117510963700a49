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

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidReportID = errors.New("invalid report id")

var objectIDPattern = regexp.MustCompile(`[0-9a-fA-F]{24}`)

// NormalizeReportID extracts the 24 character hex object id from user input.
// Surrounding whitespace and quotes are ignored, so are wrappers like ObjectId("...").
func NormalizeReportID(raw string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(raw), `"'`)
	if trimmed == "" {
		return "", errors.Wrap(ErrInvalidReportID, "empty id")
	}
	id := objectIDPattern.FindString(trimmed)
	if id == "" {
		return "", errors.Wrapf(ErrInvalidReportID, "%q", raw)
	}
	return strings.ToLower(id), nil
}
