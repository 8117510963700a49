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

package utils

import "golang.org/x/text/cases"

func Ptr[T any](t T) *T {
	return &t
}

func SafeDereference(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func EmptyThenNil(s string) *string {
	if s == "" {
		return nil
	}
	return Ptr(s)
}

// FirstNonEmpty returns the first value which is not the empty string.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// FoldKey returns the case folded form of s. Folded keys are used whenever two
// identities (emails, names) are compared case-insensitively.
// A Caser is stateful, so a fresh one is created on every call.
func FoldKey(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

// FoldEqual reports whether a and b are equal under case folding.
// Two empty strings are never considered equal.
func FoldEqual(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return FoldKey(a) == FoldKey(b)
}
