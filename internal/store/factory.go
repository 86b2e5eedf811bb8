package store

import (
	"fmt"

	"github.com/redactlab/maskcore/internal/config"
	"github.com/redactlab/maskcore/internal/logger"
)

// NewFromConfig builds the Store selected by cfg.Backend, generalizing
// the teacher's embeddings/factory.go backend-selection switch to the
// three session-store backends.
func NewFromConfig(cfg config.StoreConfig, log *logger.Logger) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemStore(), nil
	case "redis":
		return NewRedisStore(RedisConfig{
			RedisURL:       cfg.Redis.URL,
			MaxConnections: cfg.Redis.MaxConnections,
			MinIdleConns:   cfg.Redis.MinIdleConns,
			KeyPrefix:      cfg.Redis.KeyPrefix,
			TTL:            cfg.Redis.DefaultTTL,
		}, log)
	case "postgres":
		return NewPgStore(PostgresConfig{
			DatabaseURL:     cfg.Postgres.DatabaseURL,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}, log)
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.Backend)
	}
}
