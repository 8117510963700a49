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
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var V = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// registration only fails on empty tags
	_ = v.RegisterValidation("severity", func(fl validator.FieldLevel) bool {
		_, ok := ParseSeverity(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("reportstatus", func(fl validator.FieldLevel) bool {
		_, ok := ParseReportStatus(fl.Field().String())
		return ok
	})
	return v
}

// Validate checks a request or response body at the api boundary.
func Validate(body any) error {
	if err := V.Struct(body); err != nil {
		return errors.Wrap(err, "validation failed")
	}
	return nil
}
