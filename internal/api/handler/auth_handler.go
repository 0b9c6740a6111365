package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gotrek/gotrek/internal/api/metrics"
	"github.com/gotrek/gotrek/internal/core/domain"
	"github.com/gotrek/gotrek/internal/core/forms"
	"github.com/gotrek/gotrek/internal/core/ports"
)

type AuthHandler struct {
	sessions ports.SessionService
}

func NewAuthHandler(sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// Signup creates a new account. The caller is not logged in afterwards.
//
// @Summary      Create an account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forms.SignupForm  true  "Signup form"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req forms.SignupForm
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.SignupsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return err
	}

	if err := h.sessions.Signup(c.Request().Context(), req.Name, req.Email, req.Password); err != nil {
		metrics.SignupsTotal.WithLabelValues(resultLabel(err, domain.ErrDuplicateEmail)).Inc()
		return err
	}

	metrics.SignupsTotal.WithLabelValues(metrics.ResultOK).Inc()
	return c.JSON(http.StatusCreated, signupResponse{
		Message:  "Account created! Redirecting to login...",
		Redirect: domain.RouteLogin,
	})
}

// Login authenticates the profile's user.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forms.LoginForm  true  "Login form"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req forms.LoginForm
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.LoginsTotal.WithLabelValues(metrics.ResultInvalid).Inc()
		return err
	}

	session, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(resultLabel(err, domain.ErrInvalidCredentials)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(metrics.ResultOK).Inc()
	return c.JSON(http.StatusOK, loginResponse{
		Message:  "Login successful!",
		User:     session,
		Redirect: domain.RouteDashboard,
	})
}

// Logout ends the session and returns where the UI should go next.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  logoutResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx, route := WithNavigation(c.Request().Context())
	if err := h.sessions.Logout(ctx); err != nil {
		return err
	}

	metrics.LogoutsTotal.Inc()
	redirect := *route
	if redirect == "" {
		redirect = domain.RouteLanding
	}
	return c.JSON(http.StatusOK, logoutResponse{Redirect: redirect})
}

// Session reports the current user and whether the session is still loading.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	snap := h.sessions.Snapshot()
	return c.JSON(http.StatusOK, sessionResponse{User: snap.User, IsLoading: snap.IsLoading})
}

func resultLabel(err, rejected error) string {
	switch {
	case errors.Is(err, rejected):
		return metrics.ResultRejected
	case errors.Is(err, domain.ErrMalformedStoreData):
		return metrics.ResultCorrupted
	default:
		return metrics.ResultError
	}
}
