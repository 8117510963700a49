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
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const filterDateLayout = "2006-01-02"

// ReportFilter holds the criteria of a single report list request.
// It is immutable once constructed, build a new one for every request.
type ReportFilter struct {
	dateFrom      string
	dateTo        string
	severity      Severity
	reporterName  string
	reporterEmail string
}

func NewReportFilter(dateFrom, dateTo, severity, reporterName, reporterEmail string) (ReportFilter, error) {
	f := ReportFilter{
		dateFrom:      strings.TrimSpace(dateFrom),
		dateTo:        strings.TrimSpace(dateTo),
		reporterName:  strings.TrimSpace(reporterName),
		reporterEmail: strings.TrimSpace(reporterEmail),
	}

	var from, to time.Time
	var err error
	if f.dateFrom != "" {
		if from, err = time.Parse(filterDateLayout, f.dateFrom); err != nil {
			return ReportFilter{}, errors.Wrapf(err, "invalid start date %q, expected YYYY-MM-DD", f.dateFrom)
		}
	}
	if f.dateTo != "" {
		if to, err = time.Parse(filterDateLayout, f.dateTo); err != nil {
			return ReportFilter{}, errors.Wrapf(err, "invalid end date %q, expected YYYY-MM-DD", f.dateTo)
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return ReportFilter{}, errors.Errorf("start date %s is after end date %s", f.dateFrom, f.dateTo)
	}

	if s := strings.TrimSpace(severity); s != "" {
		sev, ok := ParseSeverity(s)
		if !ok {
			return ReportFilter{}, errors.Errorf("unknown severity %q", s)
		}
		f.severity = sev
	}

	return f, nil
}

func (f ReportFilter) DateFrom() string      { return f.dateFrom }
func (f ReportFilter) DateTo() string        { return f.dateTo }
func (f ReportFilter) Severity() Severity    { return f.severity }
func (f ReportFilter) ReporterName() string  { return f.reporterName }
func (f ReportFilter) ReporterEmail() string { return f.reporterEmail }

// WithReporter returns a copy of the filter narrowed to the given reporter.
func (f ReportFilter) WithReporter(name, email string) ReportFilter {
	f.reporterName = strings.TrimSpace(name)
	f.reporterEmail = strings.TrimSpace(email)
	return f
}

func (f ReportFilter) IsEmpty() bool {
	return f == ReportFilter{}
}

// Query renders the filter as query parameters, empty criteria are omitted.
func (f ReportFilter) Query() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set("date_from", f.dateFrom)
	set("date_to", f.dateTo)
	set("severity", string(f.severity))
	set("reporter_name", f.reporterName)
	set("reporter_email", f.reporterEmail)
	return q
}
