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

package client

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/l3montree-dev/vrcms/dtos"
	"github.com/l3montree-dev/vrcms/utils"
	"github.com/labstack/echo/v4"
)

const (
	testToken    = "test-token"
	testReportID = "65a1b2c3d4e5f6a7b8c9d0e1"
)

// fakeBackend mimics the routes of the vrcms api.
type fakeBackend struct {
	mu sync.Mutex

	listHits      atomic.Int32
	lastRequestID atomic.Value
	lastQuery     atomic.Value

	// closed by the test to let a blocked resolve continue
	resolveGate chan struct{}

	report      dtos.ReportDTO
	assignments []dtos.AssignmentEventDTO
	feedback    []dtos.FeedbackDTO
	resolution  *dtos.ResolutionDTO
	checks      []dtos.ComplianceCheckDTO
}

func newFakeBackend(t *testing.T) (*fakeBackend, *httptest.Server) {
	t.Helper()

	b := &fakeBackend{
		report: dtos.ReportDTO{
			ReportID: testReportID,
			Title:    "Stored XSS in search",
			Severity: dtos.SeverityHigh,
			Status:   dtos.ReportStatusOpen,
		},
	}

	e := echo.New()
	api := e.Group("/api")

	api.POST("/auth/login", func(ctx echo.Context) error {
		var req dtos.LoginRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		if req.Password != "secret" {
			return ctx.JSON(http.StatusUnauthorized, dtos.MessageResponse{Message: "Incorrect email or password"})
		}
		return ctx.JSON(http.StatusOK, dtos.LoginResponse{AccessToken: testToken, Username: "jane", Role: dtos.RoleAdmin})
	})

	protected := api.Group("", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if ctx.Request().Header.Get("Authorization") != "Bearer "+testToken {
				return ctx.JSON(http.StatusUnauthorized, map[string]string{"msg": "Token has expired"})
			}
			b.lastRequestID.Store(ctx.Request().Header.Get("X-Request-ID"))
			return next(ctx)
		}
	})

	protected.GET("/admin/reports", func(ctx echo.Context) error {
		b.listHits.Add(1)
		b.lastQuery.Store(ctx.QueryString())
		b.mu.Lock()
		defer b.mu.Unlock()
		return ctx.JSON(http.StatusOK, dtos.ReportListResponse{Items: dtos.List[dtos.ReportDTO]{b.report}})
	})

	protected.GET("/admin/assignments", func(ctx echo.Context) error {
		return ctx.JSONBlob(http.StatusOK, []byte(`{"items":[{"report_id":"unknown","severity":"Unknown","assignee_name":"Unknown Assignee"}]}`))
	})

	protected.GET("/admin/reports/:id", func(ctx echo.Context) error {
		if ctx.Param("id") != testReportID {
			return ctx.JSON(http.StatusNotFound, dtos.MessageResponse{Message: "Report not found"})
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		r := b.report
		r.ReportID, r.DocumentID = "", testReportID
		return ctx.JSON(http.StatusOK, dtos.ReportDetailResponse{Report: r, Assignments: b.assignments})
	})

	protected.GET("/admin/assignments/:id/history", func(ctx echo.Context) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		return ctx.JSON(http.StatusOK, dtos.AssignmentHistoryResponse{Assignments: b.assignments})
	})

	protected.PATCH("/admin/reports/:id/assign", func(ctx echo.Context) error {
		var req dtos.AssignRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		b.assignments = append(b.assignments, dtos.AssignmentEventDTO{
			AssigneeName:   utils.Ptr(req.AssigneeName),
			AssigneeEmail:  utils.Ptr(req.AssigneeEmail),
			AssignedAt:     "2025-03-01T10:00:00",
			IsReassignment: req.Type == dtos.AssignmentTypeReassignment,
		})
		b.report.AssigneeName = utils.Ptr(req.AssigneeName)
		b.report.AssigneeEmail = utils.Ptr(req.AssigneeEmail)
		b.report.AssignmentCount = dtos.NewOptionalInt(len(b.assignments))
		b.report.Status = dtos.ReportStatusInProgress
		return ctx.JSON(http.StatusOK, dtos.MessageResponse{Message: "Report assigned"})
	})

	protected.GET("/admin/reports/:id/feedback", func(ctx echo.Context) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		if len(b.feedback) == 0 {
			return ctx.JSON(http.StatusNotFound, dtos.MessageResponse{Message: "No feedback"})
		}
		return ctx.JSON(http.StatusOK, dtos.FeedbackResponse{Feedback: b.feedback})
	})

	protected.POST("/admin/reports/:id/feedback", func(ctx echo.Context) error {
		var req dtos.RecordFeedbackRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		b.feedback = append([]dtos.FeedbackDTO{{
			AssigneeName:  utils.Ptr(req.AssigneeName),
			AssigneeEmail: utils.Ptr(req.AssigneeEmail),
			FeedbackText:  utils.Ptr(req.FeedbackText),
		}}, b.feedback...)
		return ctx.JSON(http.StatusCreated, dtos.MessageResponse{Message: "Feedback recorded"})
	})

	protected.POST("/admin/reports/:id/resolve", func(ctx echo.Context) error {
		var req dtos.ResolveRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		if strings.TrimSpace(req.ResolveSteps) == "" {
			return ctx.JSON(http.StatusBadRequest, dtos.MessageResponse{Message: "resolve_steps is required"})
		}
		if b.resolveGate != nil {
			<-b.resolveGate
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		b.report.Status = dtos.ReportStatusResolved
		b.resolution = &dtos.ResolutionDTO{ID: "r1", ReportID: testReportID, ResolveSteps: utils.Ptr(req.ResolveSteps)}
		return ctx.JSON(http.StatusOK, dtos.MessageResponse{Message: "Report resolved"})
	})

	protected.GET("/admin/reports/:id/resolution", func(ctx echo.Context) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.resolution == nil {
			return ctx.JSON(http.StatusNotFound, dtos.MessageResponse{Message: "No resolution found"})
		}
		return ctx.JSON(http.StatusOK, dtos.ResolutionResponse{Resolution: b.resolution})
	})

	protected.GET("/admin/reports/stats", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, dtos.ReportStatsDTO{TotalReports: 1, OpenReports: 1})
	})

	protected.GET("/audit/compliance/standards", func(ctx echo.Context) error {
		return ctx.JSONBlob(http.StatusOK, []byte(`{"standards":[{"_id":"s1","control_id":"A.5.1","name":"ISO 27001"}]}`))
	})

	protected.GET("/audit/report/:id/compliance", func(ctx echo.Context) error {
		b.mu.Lock()
		defer b.mu.Unlock()
		return ctx.JSON(http.StatusOK, dtos.ComplianceChecksResponse{Checks: b.checks})
	})

	protected.POST("/audit/report/:id/compliance", func(ctx echo.Context) error {
		var sub dtos.ComplianceSubmission
		if err := ctx.Bind(&sub); err != nil {
			return err
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		if !b.report.IsResolved() {
			return ctx.JSON(http.StatusBadRequest, dtos.MessageResponse{Message: "Compliance checks are only allowed on resolved reports"})
		}
		b.checks = append([]dtos.ComplianceCheckDTO{{Overall: sub.Overall, Standards: sub.Standards}}, b.checks...)
		return ctx.JSON(http.StatusCreated, dtos.MessageResponse{Message: "Compliance check saved"})
	})

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return b, srv
}
