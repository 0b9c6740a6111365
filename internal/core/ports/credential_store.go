package ports

import (
	"context"

	"github.com/gotrek/gotrek/internal/core/domain"
)

// CredentialStore persists the account list and the current session.
type CredentialStore interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	AppendAccount(ctx context.Context, account domain.Account) error
	FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindAccountByCredentials(ctx context.Context, email, password string) (*domain.Account, error)

	SaveSession(ctx context.Context, session domain.Session) error
	ClearSession(ctx context.Context) error
	LoadSession(ctx context.Context) (*domain.Session, error)
}
