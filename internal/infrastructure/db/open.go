// Package db selects and opens the configured KV substrate.
package db

import (
	"context"
	"fmt"

	"github.com/gotrek/gotrek/internal/core/ports"
	"github.com/gotrek/gotrek/internal/infrastructure/db/bolt"
	"github.com/gotrek/gotrek/internal/infrastructure/db/memory"
	"github.com/gotrek/gotrek/internal/infrastructure/db/mongo"
	"github.com/gotrek/gotrek/internal/infrastructure/db/redis"
	"github.com/gotrek/gotrek/internal/infrastructure/db/sqlite"
	"github.com/gotrek/gotrek/internal/pkg/config"
)

// Backend is an open substrate.
type Backend interface {
	ports.KVStore
	ports.Pinger
	Close() error
}

// Open connects to the backend named in cfg.Store.Backend.
func Open(ctx context.Context, cfg *config.Config) (Backend, error) {
	profile := cfg.Store.Profile

	var (
		b   Backend
		err error
	)
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return memory.NewStore(), nil
	case config.BackendBolt:
		b, err = bolt.Open(cfg.Bolt.Path, profile)
	case config.BackendSQLite:
		b, err = sqlite.Open(ctx, cfg.SQLite.Path, profile)
	case config.BackendRedis:
		b, err = redis.Open(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB, Profile: profile})
	case config.BackendMongo:
		b, err = mongo.Open(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, Profile: profile})
	default:
		return nil, fmt.Errorf("open store: unknown backend %q", cfg.Store.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return b, nil
}
