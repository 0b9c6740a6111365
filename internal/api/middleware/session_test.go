package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gotrek/gotrek/internal/core/domain"
)

type fixedSnapshot domain.SessionSnapshot

func (f fixedSnapshot) Snapshot() domain.SessionSnapshot { return domain.SessionSnapshot(f) }

func TestRequireSession(t *testing.T) {
	ana := domain.Session{ID: "1", Name: "Ana", Email: "ana@x.com"}

	tests := []struct {
		name       string
		snap       domain.SessionSnapshot
		wantCalled bool
		check      func(t *testing.T, err error)
	}{
		{
			name: "loading",
			snap: domain.SessionSnapshot{IsLoading: true, State: domain.StateInitializing},
			check: func(t *testing.T, err error) {
				var he *echo.HTTPError
				if !errors.As(err, &he) || he.Code != http.StatusServiceUnavailable {
					t.Fatalf("expected 503, got %v", err)
				}
			},
		},
		{
			name: "anonymous",
			snap: domain.SessionSnapshot{State: domain.StateAnonymous},
			check: func(t *testing.T, err error) {
				if !errors.Is(err, domain.ErrNotAuthenticated) {
					t.Fatalf("expected ErrNotAuthenticated, got %v", err)
				}
			},
		},
		{
			name:       "authenticated",
			snap:       domain.SessionSnapshot{User: &ana, State: domain.StateAuthenticated},
			wantCalled: true,
			check: func(t *testing.T, err error) {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/dashboard", nil), httptest.NewRecorder())

			called := false
			next := func(c echo.Context) error {
				called = true
				got, ok := SessionFrom(c)
				if !ok || got != ana {
					t.Fatalf("expected session on context, got %+v", got)
				}
				return nil
			}

			tt.check(t, RequireSession(fixedSnapshot(tt.snap))(next)(c))
			if called != tt.wantCalled {
				t.Fatalf("expected next called=%v, got %v", tt.wantCalled, called)
			}
		})
	}
}

func TestSessionFrom_Missing(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if _, ok := SessionFrom(c); ok {
		t.Fatalf("expected no session")
	}
}
