package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/redactlab/maskcore/internal/logger"
	"github.com/redactlab/maskcore/internal/mask"
)

// RedisConfig mirrors the teacher's cache.Config field-for-field,
// minus the embedding-specific settings that have no analogue here.
type RedisConfig struct {
	RedisURL       string        `yaml:"redis_url" mapstructure:"redis_url"`
	MaxConnections int           `yaml:"max_connections" mapstructure:"max_connections"`
	MinIdleConns   int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
	KeyPrefix      string        `yaml:"key_prefix" mapstructure:"key_prefix"`
	TTL            time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// RedisStore persists RehydrationMaps in Redis as JSON blobs under
// "<prefix>:session:<id>", adapted from the teacher's VectorCache but
// storing session-keyed maps instead of cached similarity vectors.
type RedisStore struct {
	client *redis.Client
	cfg    RedisConfig
	logger *logger.Logger
}

// NewRedisStore connects to Redis and verifies the connection before
// returning, exactly as the teacher's NewVectorCache does.
func NewRedisStore(cfg RedisConfig, log *logger.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	opts.PoolSize = cfg.MaxConnections
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if log != nil {
		log.Info("rehydration store initialized",
			zap.String("redis_url", maskRedisURL(cfg.RedisURL)),
			zap.Int("max_connections", cfg.MaxConnections))
	}

	return &RedisStore{client: client, cfg: cfg, logger: log}, nil
}

func (s *RedisStore) key(sessionID string) string {
	prefix := s.cfg.KeyPrefix
	if prefix == "" {
		prefix = "maskcore"
	}
	return fmt.Sprintf("%s:session:%s", prefix, sessionID)
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, m *mask.RehydrationMap) error {
	data, err := json.Marshal(toDocument(m))
	if err != nil {
		return fmt.Errorf("marshal rehydration map: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sessionID), data, s.cfg.TTL).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (*mask.RehydrationMap, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var doc document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("unmarshal rehydration map: %w", err)
	}
	return fromDocument(doc), nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// maskRedisURL masks credentials in a Redis URL for logging, carried
// from the teacher's cache.maskRedisURL unchanged.
func maskRedisURL(url string) string {
	if !strings.Contains(url, "@") {
		return url
	}
	parts := strings.Split(url, "@")
	if len(parts) < 2 {
		return url
	}
	userPart := parts[0]
	if strings.Contains(userPart, ":") {
		userParts := strings.Split(userPart, ":")
		if len(userParts) >= 3 {
			userParts[len(userParts)-1] = "***"
			parts[0] = strings.Join(userParts, ":")
		}
	}
	return strings.Join(parts, "@")
}
