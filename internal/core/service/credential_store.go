package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gotrek/gotrek/internal/core/domain"
	"github.com/gotrek/gotrek/internal/core/ports"
)

// Keys under which the store persists its two values.
const (
	UsersKey       = "users"
	CurrentUserKey = "currentUser"
)

type credentialStore struct {
	kv     ports.KVStore
	policy domain.CorruptPolicy
	log    zerolog.Logger
}

// NewCredentialStore returns a CredentialStore over kv. An empty policy means
// domain.CorruptPolicyError.
func NewCredentialStore(kv ports.KVStore, policy domain.CorruptPolicy, log zerolog.Logger) ports.CredentialStore {
	if policy == "" {
		policy = domain.CorruptPolicyError
	}
	return &credentialStore{kv: kv, policy: policy, log: log}
}

func (s *credentialStore) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	raw, err := s.kv.Get(ctx, UsersKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return []domain.Account{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	// an empty value reads as absent
	if len(raw) == 0 {
		return []domain.Account{}, nil
	}

	accounts, err := decodeAccounts(raw)
	if err != nil {
		if s.policy == domain.CorruptPolicyReset {
			s.log.Warn().Err(err).Str("key", UsersKey).Msg("discarding malformed account list")
			return []domain.Account{}, nil
		}
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// AppendAccount rewrites the whole list. Concurrent writers sharing the
// substrate can lose registrations; the last write wins.
func (s *credentialStore) AppendAccount(ctx context.Context, account domain.Account) error {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return fmt.Errorf("append account: %w", err)
	}
	accounts = append(accounts, account)

	raw, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("append account: encode: %w", err)
	}
	if err := s.kv.Set(ctx, UsersKey, raw); err != nil {
		return fmt.Errorf("append account: %w", err)
	}
	return nil
}

func (s *credentialStore) FindAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	for i := range accounts {
		if accounts[i].Email == email {
			found := accounts[i]
			return &found, nil
		}
	}
	return nil, nil
}

// FindAccountByCredentials compares email and password by exact equality.
func (s *credentialStore) FindAccountByCredentials(ctx context.Context, email, password string) (*domain.Account, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("find account: %w", err)
	}
	for i := range accounts {
		if accounts[i].Email == email && accounts[i].Password == password {
			found := accounts[i]
			return &found, nil
		}
	}
	return nil, nil
}

func (s *credentialStore) SaveSession(ctx context.Context, session domain.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("save session: encode: %w", err)
	}
	if err := s.kv.Set(ctx, CurrentUserKey, raw); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *credentialStore) ClearSession(ctx context.Context) error {
	if err := s.kv.Delete(ctx, CurrentUserKey); err != nil && !errors.Is(err, domain.ErrKeyNotFound) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *credentialStore) LoadSession(ctx context.Context) (*domain.Session, error) {
	raw, err := s.kv.Get(ctx, CurrentUserKey)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	session, err := decodeSession(raw)
	if err != nil {
		if s.policy == domain.CorruptPolicyReset {
			s.log.Warn().Err(err).Str("key", CurrentUserKey).Msg("discarding malformed session")
			return nil, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	return session, nil
}

func decodeAccounts(raw []byte) ([]domain.Account, error) {
	var accounts []domain.Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedStoreData, UsersKey, err)
	}
	for i, a := range accounts {
		if a.ID == "" || a.Email == "" {
			return nil, fmt.Errorf("%w: %s[%d]: missing id or email", domain.ErrMalformedStoreData, UsersKey, i)
		}
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

func decodeSession(raw []byte) (*domain.Session, error) {
	var session *domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedStoreData, CurrentUserKey, err)
	}
	if session == nil || session.ID == "" || session.Email == "" {
		return nil, fmt.Errorf("%w: %s: missing id or email", domain.ErrMalformedStoreData, CurrentUserKey)
	}
	return session, nil
}
