package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/gotrek/gotrek/internal/core/domain"
	"github.com/gotrek/gotrek/internal/core/ports"
)

// KVStore provides profile-scoped storage backed by Redis.
// Key format: gotrek:<profile>:<key>
type KVStore struct {
	client  *redis.Client
	profile string
}

var (
	_ ports.KVStore = (*KVStore)(nil)
	_ ports.Pinger  = (*KVStore)(nil)
)

// NewKVStore creates a KVStore wrapping the given Redis client.
func NewKVStore(client *redis.Client, profile string) *KVStore {
	return &KVStore{client: client, profile: profile}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

// Set stores value without expiry; browser storage never expires either.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *KVStore) key(key string) string {
	return fmt.Sprintf("gotrek:%s:%s", s.profile, key)
}
