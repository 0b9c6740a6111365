package ports

import "context"

// KVStore is the persistence substrate: a profile-scoped string-keyed store.
// Get returns domain.ErrKeyNotFound when the key is absent.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by substrates that can report their own health.
type Pinger interface {
	Ping(ctx context.Context) error
}
