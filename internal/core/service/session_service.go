package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gotrek/gotrek/internal/core/domain"
	"github.com/gotrek/gotrek/internal/core/ports"
)

// SessionService holds the current user and drives the session transitions.
// A new service starts in StateInitializing until Restore is called.
type SessionService struct {
	store ports.CredentialStore
	ids   ports.IDGenerator
	nav   ports.Navigator
	log   zerolog.Logger

	// transition serializes Restore, Login and Logout, including their store
	// writes, so memory and the persisted session agree.
	transition sync.Mutex

	mu    sync.RWMutex
	state domain.SessionState
	user  *domain.Session
}

var _ ports.SessionService = (*SessionService)(nil)

// NewSessionService wires the service. A nil ids uses random UUIDs and a nil
// nav discards navigation signals.
func NewSessionService(store ports.CredentialStore, ids ports.IDGenerator, nav ports.Navigator, log zerolog.Logger) *SessionService {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	if nav == nil {
		nav = discardNavigator{}
	}
	return &SessionService{
		store: store,
		ids:   ids,
		nav:   nav,
		log:   log,
		state: domain.StateInitializing,
	}
}

// Restore loads the persisted session, if any. The stored session is trusted
// without checking it against the account list. A malformed entry is logged
// and leaves the service anonymous.
func (s *SessionService) Restore(ctx context.Context) error {
	s.transition.Lock()
	defer s.transition.Unlock()

	session, err := s.store.LoadSession(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case errors.Is(err, domain.ErrMalformedStoreData):
		s.log.Warn().Err(err).Msg("stored session unreadable, starting anonymous")
		s.state, s.user = domain.StateAnonymous, nil
		return nil
	case err != nil:
		s.state, s.user = domain.StateAnonymous, nil
		return fmt.Errorf("restore session: %w", err)
	case session == nil:
		s.state, s.user = domain.StateAnonymous, nil
	default:
		s.state, s.user = domain.StateAuthenticated, session
		s.log.Debug().Str("email", session.Email).Msg("session restored")
	}
	return nil
}

// Signup registers a new account. It does not log the user in; the caller is
// expected to send them to the login view.
func (s *SessionService) Signup(ctx context.Context, name, email, password string) error {
	existing, err := s.store.FindAccountByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("signup: %w", err)
	}
	if existing != nil {
		s.log.Info().Str("email", email).Msg("signup rejected, email taken")
		return domain.ErrDuplicateEmail
	}

	account := domain.Account{
		ID:       s.ids.NewID(),
		Name:     name,
		Email:    email,
		Password: password,
	}
	if err := s.store.AppendAccount(ctx, account); err != nil {
		return fmt.Errorf("signup: %w", err)
	}

	s.log.Info().Str("email", email).Str("account_id", account.ID).Msg("account created")
	return nil
}

// Login authenticates against the stored accounts. Unknown email and wrong
// password both return domain.ErrInvalidCredentials.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	s.transition.Lock()
	defer s.transition.Unlock()

	account, err := s.store.FindAccountByCredentials(ctx, email, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}
	if account == nil {
		s.log.Info().Str("email", email).Msg("login rejected")
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	session := account.Session()
	if err := s.store.SaveSession(ctx, session); err != nil {
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}

	s.mu.Lock()
	s.state, s.user = domain.StateAuthenticated, &session
	s.mu.Unlock()

	s.log.Info().Str("email", email).Msg("login succeeded")
	return session, nil
}

// Logout clears the session and signals navigation to the landing view.
// Calling it while anonymous only repeats the signal.
func (s *SessionService) Logout(ctx context.Context) error {
	s.transition.Lock()
	defer s.transition.Unlock()

	s.mu.Lock()
	s.state, s.user = domain.StateAnonymous, nil
	s.mu.Unlock()

	if err := s.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	s.nav.Navigate(ctx, domain.RouteLanding)
	return nil
}

func (s *SessionService) Snapshot() domain.SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := domain.SessionSnapshot{
		State:     s.state,
		IsLoading: s.state == domain.StateInitializing,
	}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

type discardNavigator struct{}

func (discardNavigator) Navigate(context.Context, string) {}
