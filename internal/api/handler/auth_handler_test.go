package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gotrek/gotrek/internal/core/domain"
	"github.com/gotrek/gotrek/internal/core/forms"
)

type stubSessionService struct {
	signupFn   func(ctx context.Context, name, email, password string) error
	loginFn    func(ctx context.Context, email, password string) (domain.Session, error)
	logoutFn   func(ctx context.Context) error
	snapshotFn func() domain.SessionSnapshot
}

func (s *stubSessionService) Signup(ctx context.Context, name, email, password string) error {
	return s.signupFn(ctx, name, email, password)
}

func (s *stubSessionService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubSessionService) Logout(ctx context.Context) error {
	return s.logoutFn(ctx)
}

func (s *stubSessionService) Snapshot() domain.SessionSnapshot {
	return s.snapshotFn()
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	e := newEcho()
	stub := &stubSessionService{
		signupFn: func(_ context.Context, name, email, password string) error {
			if name != "Ana" || email != "ana@x.com" || password != "secret123" {
				t.Fatalf("unexpected args: %s %s %s", name, email, password)
			}
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"name":"Ana","email":"ana@x.com","password":"secret123","confirm_password":"secret123"}`
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/signup", body), rec)

	if err := handler.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp signupResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Message != "Account created! Redirecting to login..." || resp.Redirect != domain.RouteLogin {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Signup_InvalidForm(t *testing.T) {
	e := newEcho()
	stub := &stubSessionService{
		signupFn: func(context.Context, string, string, string) error {
			t.Fatalf("service must not be called for an invalid form")
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"name":"Ana","email":"ana@x.com","password":"secret123","confirm_password":"secret999"}`
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/signup", body), httptest.NewRecorder())

	err := handler.Signup(c)
	var fe forms.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldErrors, got %v", err)
	}
	if fe["confirm_password"] != "Passwords don't match" {
		t.Fatalf("unexpected field errors: %v", fe)
	}
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	e := newEcho()
	stub := &stubSessionService{
		signupFn: func(context.Context, string, string, string) error {
			return domain.ErrDuplicateEmail
		},
	}
	handler := NewAuthHandler(stub)

	body := `{"name":"Ana","email":"ana@x.com","password":"secret123","confirm_password":"secret123"}`
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/signup", body), httptest.NewRecorder())

	if err := handler.Signup(c); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthHandler_Signup_BadPayload(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubSessionService{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/signup", `{"name":`), httptest.NewRecorder())

	err := handler.Signup(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newEcho()
	ana := domain.Session{ID: "1", Name: "Ana", Email: "ana@x.com"}
	stub := &stubSessionService{
		loginFn: func(_ context.Context, email, password string) (domain.Session, error) {
			if email != "ana@x.com" || password != "secret123" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return ana, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"email":"ana@x.com","password":"secret123"}`), rec)

	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Login successful!" || resp["redirect"] != domain.RouteDashboard {
		t.Fatalf("unexpected response: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["name"] != "Ana" || user["email"] != "ana@x.com" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password must not be returned")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newEcho()
	stub := &stubSessionService{
		loginFn: func(context.Context, string, string) (domain.Session, error) {
			return domain.Session{}, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"email":"ana@x.com","password":"wrong1"}`), httptest.NewRecorder())

	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_ShortPassword(t *testing.T) {
	e := newEcho()
	handler := NewAuthHandler(&stubSessionService{})

	c := e.NewContext(jsonRequest(http.MethodPost, "/auth/login", `{"email":"ana@x.com","password":"12345"}`), httptest.NewRecorder())

	var fe forms.FieldErrors
	if err := handler.Login(c); !errors.As(err, &fe) || fe["password"] == "" {
		t.Fatalf("expected password field error, got %v", err)
	}
}

func TestAuthHandler_Logout_ReturnsNavigatedRoute(t *testing.T) {
	e := newEcho()
	stub := &stubSessionService{
		logoutFn: func(ctx context.Context) error {
			ContextNavigator{}.Navigate(ctx, domain.RouteLanding)
			return nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/logout", nil), rec)

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp logoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if rec.Code != http.StatusOK || resp.Redirect != "/" {
		t.Fatalf("unexpected response %d %+v", rec.Code, resp)
	}
}

func TestAuthHandler_Session(t *testing.T) {
	e := newEcho()
	stub := &stubSessionService{
		snapshotFn: func() domain.SessionSnapshot {
			return domain.SessionSnapshot{State: domain.StateAnonymous}
		},
	}
	handler := NewAuthHandler(stub)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/auth/session", nil), rec)

	if err := handler.Session(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"user":null,"is_loading":false}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestContextNavigator_DropsSignalWithoutCapture(t *testing.T) {
	// must not panic
	ContextNavigator{}.Navigate(context.Background(), domain.RouteLanding)

	ctx, route := WithNavigation(context.Background())
	ContextNavigator{}.Navigate(ctx, domain.RouteLogin)
	if *route != domain.RouteLogin {
		t.Fatalf("expected %q, got %q", domain.RouteLogin, *route)
	}
}
