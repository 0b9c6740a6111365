// Package redis provides a KV substrate backed by a Redis server, for
// deployments where several processes share one profile.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// Config holds the connection and scoping settings.
type Config struct {
	Addr    string
	DB      int
	Profile string
	Timeout time.Duration
}

// Open connects to Redis, verifies the connection with a ping and returns a
// KVStore scoped to cfg.Profile.
func Open(ctx context.Context, cfg Config) (*KVStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = dialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		DialTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return NewKVStore(client, cfg.Profile), nil
}

// Close releases the client's connection pool.
func (s *KVStore) Close() error {
	return s.client.Close()
}
