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

// Package mocks holds testify mocks of the api interfaces the services depend on.
package mocks

import (
	"context"

	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/stretchr/testify/mock"
)

type API struct {
	mock.Mock
}

// NewAPI creates a new API mock and asserts its expectations on cleanup.
func NewAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *API {
	m := &API{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func get[T any](ret mock.Arguments, i int) T {
	var zero T
	if v := ret.Get(i); v != nil {
		return v.(T)
	}
	return zero
}

func (_m *API) ListReports(ctx context.Context, filter dtos.ReportFilter) ([]dtos.ReportDTO, error) {
	ret := _m.Called(ctx, filter)
	return get[[]dtos.ReportDTO](ret, 0), ret.Error(1)
}

func (_m *API) MyReports(ctx context.Context) ([]dtos.ReportDTO, error) {
	ret := _m.Called(ctx)
	return get[[]dtos.ReportDTO](ret, 0), ret.Error(1)
}

func (_m *API) AuditQueue(ctx context.Context) ([]dtos.ReportDTO, error) {
	ret := _m.Called(ctx)
	return get[[]dtos.ReportDTO](ret, 0), ret.Error(1)
}

func (_m *API) GetReport(ctx context.Context, reportID string) (dtos.ReportDetailResponse, error) {
	ret := _m.Called(ctx, reportID)
	return get[dtos.ReportDetailResponse](ret, 0), ret.Error(1)
}

func (_m *API) AssignmentHistory(ctx context.Context, reportID string) ([]dtos.AssignmentEventDTO, error) {
	ret := _m.Called(ctx, reportID)
	return get[[]dtos.AssignmentEventDTO](ret, 0), ret.Error(1)
}

func (_m *API) SubmitReport(ctx context.Context, req dtos.SubmitReportRequest) (dtos.SubmitReportResponse, error) {
	ret := _m.Called(ctx, req)
	return get[dtos.SubmitReportResponse](ret, 0), ret.Error(1)
}

func (_m *API) ListAssignments(ctx context.Context) ([]dtos.ReportDTO, error) {
	ret := _m.Called(ctx)
	return get[[]dtos.ReportDTO](ret, 0), ret.Error(1)
}

func (_m *API) Assign(ctx context.Context, reportID string, req dtos.AssignRequest) error {
	return _m.Called(ctx, reportID, req).Error(0)
}

func (_m *API) ReportFeedback(ctx context.Context, reportID string) ([]dtos.FeedbackDTO, error) {
	ret := _m.Called(ctx, reportID)
	return get[[]dtos.FeedbackDTO](ret, 0), ret.Error(1)
}

func (_m *API) RecordFeedback(ctx context.Context, reportID string, req dtos.RecordFeedbackRequest) error {
	return _m.Called(ctx, reportID, req).Error(0)
}

func (_m *API) AllFeedbacks(ctx context.Context) ([]dtos.FeedbackDTO, error) {
	ret := _m.Called(ctx)
	return get[[]dtos.FeedbackDTO](ret, 0), ret.Error(1)
}

func (_m *API) Resolve(ctx context.Context, reportID string, req dtos.ResolveRequest) error {
	return _m.Called(ctx, reportID, req).Error(0)
}

func (_m *API) Resolution(ctx context.Context, reportID string) (*dtos.ResolutionDTO, error) {
	ret := _m.Called(ctx, reportID)
	return get[*dtos.ResolutionDTO](ret, 0), ret.Error(1)
}

func (_m *API) Standards(ctx context.Context) ([]dtos.ComplianceStandardDTO, error) {
	ret := _m.Called(ctx)
	return get[[]dtos.ComplianceStandardDTO](ret, 0), ret.Error(1)
}

func (_m *API) ComplianceChecks(ctx context.Context, reportID string) ([]dtos.ComplianceCheckDTO, error) {
	ret := _m.Called(ctx, reportID)
	return get[[]dtos.ComplianceCheckDTO](ret, 0), ret.Error(1)
}

func (_m *API) SubmitCompliance(ctx context.Context, reportID string, submission dtos.ComplianceSubmission) error {
	return _m.Called(ctx, reportID, submission).Error(0)
}

func (_m *API) ReportStats(ctx context.Context) (dtos.ReportStatsDTO, error) {
	ret := _m.Called(ctx)
	return get[dtos.ReportStatsDTO](ret, 0), ret.Error(1)
}

func (_m *API) AuditStats(ctx context.Context) (dtos.ReportStatsDTO, error) {
	ret := _m.Called(ctx)
	return get[dtos.ReportStatsDTO](ret, 0), ret.Error(1)
}
