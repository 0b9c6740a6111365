package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gotrek/gotrek/internal/core/domain"
)

const sessionKey = "session"

// SessionReader is the part of the session service the middleware needs.
type SessionReader interface {
	Snapshot() domain.SessionSnapshot
}

// RequireSession rejects requests until the session has finished loading and
// a user is signed in. The user is stored on the context for handlers.
func RequireSession(sessions SessionReader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			snap := sessions.Snapshot()
			if snap.IsLoading {
				return echo.NewHTTPError(http.StatusServiceUnavailable, "session loading")
			}
			if snap.User == nil {
				return domain.ErrNotAuthenticated
			}

			c.Set(sessionKey, *snap.User)
			return next(c)
		}
	}
}

// SessionFrom returns the user stored by RequireSession.
func SessionFrom(c echo.Context) (domain.Session, bool) {
	s, ok := c.Get(sessionKey).(domain.Session)
	return s, ok
}
