// Package mongo provides a KV substrate stored as one MongoDB document per
// (profile, key) pair.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	connectTimeout = 10 * time.Second
	collectionName = "local_storage"
)

// Config holds the connection and scoping settings.
type Config struct {
	URI      string
	Database string
	Profile  string
	Timeout  time.Duration
}

// Open connects to MongoDB, pings it, and returns a KVStore over the
// local_storage collection of cfg.Database.
func Open(ctx context.Context, cfg Config) (*KVStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(collectionName)
	return NewKVStore(coll, cfg.Profile), nil
}
