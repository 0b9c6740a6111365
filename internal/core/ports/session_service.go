package ports

import (
	"context"

	"github.com/gotrek/gotrek/internal/core/domain"
)

// SessionService is the contract presentation code consumes.
type SessionService interface {
	Signup(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Logout(ctx context.Context) error
	Snapshot() domain.SessionSnapshot
}

// Navigator receives the route the UI should move to after a transition.
type Navigator interface {
	Navigate(ctx context.Context, route string)
}

// IDGenerator produces account identifiers.
type IDGenerator interface {
	NewID() string
}
