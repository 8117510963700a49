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

package services

import (
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Module provides all service-layer constructors. It expects an API to be provided.
var Module = fx.Options(
	fx.Provide(func(api API) ReportAPI { return api }),
	fx.Provide(func(api API) AssignmentAPI { return api }),
	fx.Provide(func(api API) ResolveAPI { return api }),
	fx.Provide(func(api API) FeedbackAPI { return api }),
	fx.Provide(func(api API) ComplianceAPI { return api }),
	fx.Provide(func(api API) StatsAPI { return api }),
	fx.Provide(NewReportService),
	fx.Provide(NewAssignmentService),
	fx.Provide(NewResolveService),
	fx.Provide(NewFeedbackService),
	fx.Provide(NewComplianceService),
	fx.Provide(NewStatsService),
	fx.Provide(newDashboard),
)

// Dashboard bundles every service the presentation layer talks to.
type Dashboard struct {
	Reports     *ReportService
	Assignments *AssignmentService
	Resolve     *ResolveService
	Feedback    *FeedbackService
	Compliance  *ComplianceService
	Stats       *StatsService
}

type dashboardParams struct {
	fx.In

	Reports     *ReportService
	Assignments *AssignmentService
	Resolve     *ResolveService
	Feedback    *FeedbackService
	Compliance  *ComplianceService
	Stats       *StatsService
}

func newDashboard(p dashboardParams) *Dashboard {
	return &Dashboard{
		Reports:     p.Reports,
		Assignments: p.Assignments,
		Resolve:     p.Resolve,
		Feedback:    p.Feedback,
		Compliance:  p.Compliance,
		Stats:       p.Stats,
	}
}

// NewDashboard wires all services on top of api.
func NewDashboard(api API) (*Dashboard, error) {
	var dashboard *Dashboard
	app := fx.New(
		fx.NopLogger,
		fx.Provide(func() API { return api }),
		Module,
		fx.Populate(&dashboard),
	)
	if err := app.Err(); err != nil {
		return nil, errors.Wrap(err, "could not wire services")
	}
	return dashboard, nil
}
