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
	"context"
	"strings"

	"github.com/l3montree-dev/vrcms/accesscontrol"
	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/l3montree-dev/vrcms/statemachine"
	"github.com/pkg/errors"
)

type StatsService struct {
	api StatsAPI
}

func NewStatsService(api StatsAPI) *StatsService {
	return &StatsService{api: api}
}

// Stats fetches the dashboard numbers from the endpoint matching the role.
func (s *StatsService) Stats(ctx context.Context, role dtos.Role) (dtos.ReportStatsDTO, error) {
	var (
		stats dtos.ReportStatsDTO
		err   error
	)
	switch role {
	case dtos.RoleAdmin, dtos.RoleSuperadmin:
		stats, err = s.api.ReportStats(ctx)
	case dtos.RoleAuditor:
		stats, err = s.api.AuditStats(ctx)
	default:
		return dtos.ReportStatsDTO{}, errors.Wrapf(accesscontrol.ErrForbidden, "role %q cannot read stats", role)
	}
	if err != nil {
		return dtos.ReportStatsDTO{}, errors.Wrap(err, "could not fetch stats")
	}
	return stats, nil
}

// Summarize computes the stats locally. A report is resolved, pending if
// somebody is assigned or open otherwise. Unknown severities count as low.
func Summarize(reports []dtos.ReportDTO) dtos.ReportStatsDTO {
	stats := dtos.ReportStatsDTO{SeveritySnapshot: map[string]dtos.SeveritySnapshot{}}
	for _, sev := range dtos.Severities() {
		stats.SeveritySnapshot[strings.ToLower(string(sev))] = dtos.SeveritySnapshot{}
	}

	for i := range reports {
		r := &reports[i]
		key := strings.ToLower(string(r.Severity))
		if _, ok := dtos.ParseSeverity(key); !ok {
			key = strings.ToLower(string(dtos.SeverityLow))
		}
		snapshot := stats.SeveritySnapshot[key]
		snapshot.Total++
		stats.TotalReports++

		switch {
		case r.IsResolved():
			snapshot.Resolved++
			stats.ResolvedReports++
		case statemachine.PermittedAction(r) == statemachine.ActionReassign:
			snapshot.Pending++
			stats.PendingReports++
		default:
			snapshot.Open++
			stats.OpenReports++
		}
		stats.SeveritySnapshot[key] = snapshot
	}
	return stats
}
