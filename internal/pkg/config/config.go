package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Store backends accepted in STORE_BACKEND.
const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Store  StoreConfig
	Bolt   BoltConfig
	SQLite SQLiteConfig
	Mongo  MongoConfig
	Redis  RedisConfig
}

type StoreConfig struct {
	Backend       string `env:"STORE_BACKEND,        default=bolt"`
	Profile       string `env:"STORE_PROFILE,        default=default"`
	CorruptPolicy string `env:"STORE_CORRUPT_POLICY, default=error"`
}

type BoltConfig struct {
	Path string `env:"BOLT_PATH, default=gotrek.db"`
}

type SQLiteConfig struct {
	Path string `env:"SQLITE_PATH, default=gotrek.sqlite"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=gotrek"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsDevelopment reports whether human-friendly output should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendBolt, BackendSQLite, BackendRedis, BackendMongo:
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.Store.Backend)
	}
	switch c.Store.CorruptPolicy {
	case "error", "reset":
	default:
		return fmt.Errorf("config: unknown STORE_CORRUPT_POLICY %q", c.Store.CorruptPolicy)
	}
	if c.Store.Profile == "" {
		return fmt.Errorf("config: STORE_PROFILE must not be empty")
	}
	return nil
}
