package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/redactlab/maskcore/internal/logger"
	"github.com/redactlab/maskcore/internal/mask"
)

// PostgresConfig mirrors the teacher's vector.Config connection-pool
// settings; DatabaseURL replaces the teacher's pgvector-specific
// schema assumptions with a plain key/value table.
type PostgresConfig struct {
	DatabaseURL     string        `yaml:"database_url" mapstructure:"database_url"`
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" mapstructure:"conn_max_idle_time"`
}

// PgStore persists RehydrationMaps in a rehydration_maps(session_id,
// payload, created_at, updated_at) table, adapted from the teacher's
// vector.Store connection handling. The pgvector-indexed similarity
// search the teacher's Store exists for has no place in this domain
// and is not carried over.
type PgStore struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewPgStore connects, configures the pool, and ensures the
// rehydration_maps table exists, mirroring the teacher's
// Store.initialize step.
func NewPgStore(cfg PostgresConfig, log *logger.Logger) (*PgStore, error) {
	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	store := &PgStore{db: db, logger: log}
	if err := store.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize rehydration store: %w", err)
	}

	if log != nil {
		log.Info("rehydration store initialized",
			zap.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
			zap.Int("max_open_conns", cfg.MaxOpenConns))
	}

	return store, nil
}

func (s *PgStore) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS rehydration_maps (
			session_id TEXT PRIMARY KEY,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure rehydration_maps table: %w", err)
	}
	return nil
}

func (s *PgStore) Put(ctx context.Context, sessionID string, m *mask.RehydrationMap) error {
	data, err := json.Marshal(toDocument(m))
	if err != nil {
		return fmt.Errorf("marshal rehydration map: %w", err)
	}

	query := `
		INSERT INTO rehydration_maps (session_id, payload, created_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (session_id) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = now()`
	if _, err := s.db.ExecContext(ctx, query, sessionID, data); err != nil {
		return fmt.Errorf("failed to upsert rehydration map: %w", err)
	}
	return nil
}

func (s *PgStore) Get(ctx context.Context, sessionID string) (*mask.RehydrationMap, error) {
	var data []byte
	query := `SELECT payload FROM rehydration_maps WHERE session_id = $1`
	if err := s.db.GetContext(ctx, &data, query, sessionID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query rehydration map: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal rehydration map: %w", err)
	}
	return fromDocument(doc), nil
}

func (s *PgStore) Delete(ctx context.Context, sessionID string) error {
	query := `DELETE FROM rehydration_maps WHERE session_id = $1`
	if _, err := s.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to delete rehydration map: %w", err)
	}
	return nil
}

func (s *PgStore) Close() error {
	return s.db.Close()
}

// maskDatabaseURL hides credentials in a Postgres DSN for logging,
// carried from the teacher's vector.maskDatabaseURL unchanged.
func maskDatabaseURL(url string) string {
	if !strings.Contains(url, "@") {
		return url
	}
	parts := strings.Split(url, "@")
	if len(parts) < 2 {
		return url
	}
	userPart := parts[0]
	if idx := strings.LastIndex(userPart, ":"); idx >= 0 {
		userPart = userPart[:idx+1] + "***"
	}
	return userPart + "@" + strings.Join(parts[1:], "@")
}
