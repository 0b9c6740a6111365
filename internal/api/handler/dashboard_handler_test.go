package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/gotrek/gotrek/internal/api/middleware"
	"github.com/gotrek/gotrek/internal/core/domain"
)

func TestDashboardHandler_Get(t *testing.T) {
	e := newEcho()
	fixed := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	handler := NewDashboardHandler(func() time.Time { return fixed })

	ana := domain.Session{ID: "1", Name: "Ana", Email: "ana@x.com"}
	sessions := &stubSessionService{
		snapshotFn: func() domain.SessionSnapshot {
			return domain.SessionSnapshot{User: &ana, State: domain.StateAuthenticated}
		},
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), rec)

	if err := middleware.RequireSession(sessions)(handler.Get)(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp dashboardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Welcome != "Welcome back, Ana! Ready for your next adventure?" {
		t.Fatalf("unexpected welcome: %q", resp.Welcome)
	}
	if resp.Stats != (dashboardStats{}) {
		t.Fatalf("expected zeroed stats, got %+v", resp.Stats)
	}
	if len(resp.Features) != 4 || resp.Features[0].Title != "Discover Trails" {
		t.Fatalf("unexpected features: %+v", resp.Features)
	}
	want := profileBlock{Name: "Ana", Email: "ana@x.com", MemberSince: "2026-03-09"}
	if resp.Profile != want {
		t.Fatalf("expected profile %+v, got %+v", want, resp.Profile)
	}
}

func TestDashboardHandler_Get_WithoutSession(t *testing.T) {
	e := newEcho()
	handler := NewDashboardHandler(nil)

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), httptest.NewRecorder())

	if err := handler.Get(c); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestHealthHandler_Liveness(t *testing.T) {
	e := echo.New()
	handler := NewHealthHandler("memory", stubPinger{})

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

	if err := handler.Liveness(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantCode   int
		wantStatus string
	}{
		{"healthy", nil, http.StatusOK, "ok"},
		{"store down", errors.New("connection refused"), http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			handler := NewHealthHandler("bolt", stubPinger{err: tt.pingErr})

			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec)

			if err := handler.Readiness(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rec.Code)
			}

			var resp readinessResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Fatalf("expected status %q, got %q", tt.wantStatus, resp.Status)
			}
			if _, ok := resp.Dependencies["bolt"]; !ok {
				t.Fatalf("expected bolt dependency, got %+v", resp.Dependencies)
			}
		})
	}
}
