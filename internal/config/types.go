package config

import "time"

// Config represents the process-wide configuration structure: the ambient
// server/storage wiring around the sanitization core's own per-call
// Sanitizer config (internal/sanitizer.Config).
type Config struct {
	Patterns   PatternsConfig   `yaml:"patterns" mapstructure:"patterns"`
	Sanitizer  SanitizerConfig  `yaml:"sanitizer" mapstructure:"sanitizer"`
	Recognizer RecognizerConfig `yaml:"recognizer" mapstructure:"recognizer"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	Logging    LoggingConfig    `yaml:"logging" mapstructure:"logging"`
}

// PatternsConfig controls where the Pattern Registry loads packs from.
type PatternsConfig struct {
	Packs     []string `yaml:"packs" mapstructure:"packs"`
	ExtraDirs []string `yaml:"extra_dirs" mapstructure:"extra_dirs"`
}

// SanitizerConfig mirrors spec.md §3's Config table for process defaults;
// callers may still override per call via internal/sanitizer.Config.
type SanitizerConfig struct {
	RegexOnly          bool          `yaml:"regex_only" mapstructure:"regex_only"`
	MinConfidence      float64       `yaml:"min_confidence" mapstructure:"min_confidence"`
	StrictValidation   bool          `yaml:"strict_validation" mapstructure:"strict_validation"`
	Whitelist          []string      `yaml:"whitelist" mapstructure:"whitelist"`
	MaskTypes          []string      `yaml:"mask_types" mapstructure:"mask_types"`
	PlaceholderPrefix  string        `yaml:"placeholder_prefix" mapstructure:"placeholder_prefix"`
	PlaceholderSuffix  string        `yaml:"placeholder_suffix" mapstructure:"placeholder_suffix"`
	MaxInputCharacters int           `yaml:"max_input_characters" mapstructure:"max_input_characters"`
	FormatHint         string        `yaml:"format_hint" mapstructure:"format_hint"`
	SessionTTL         time.Duration `yaml:"session_ttl" mapstructure:"session_ttl"`
}

// RecognizerConfig controls whether and how the entity recognizer model is
// loaded. The adapter itself lives in internal/recognizer.
type RecognizerConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	ModelPath string `yaml:"model_path" mapstructure:"model_path"`
	MaxLength int    `yaml:"max_length" mapstructure:"max_length"`
}

// StoreConfig selects and configures the rehydration session store backend.
type StoreConfig struct {
	Backend  string         `yaml:"backend" mapstructure:"backend"` // memory, redis, postgres
	Redis    RedisConfig    `yaml:"redis" mapstructure:"redis"`
	Postgres PostgresConfig `yaml:"postgres" mapstructure:"postgres"`
}

// RedisConfig contains Redis-backed session store configuration.
type RedisConfig struct {
	URL            string        `yaml:"url" mapstructure:"url"`
	MaxConnections int           `yaml:"max_connections" mapstructure:"max_connections"`
	MinIdleConns   int           `yaml:"min_idle_conns" mapstructure:"min_idle_conns"`
	KeyPrefix      string        `yaml:"key_prefix" mapstructure:"key_prefix"`
	DefaultTTL     time.Duration `yaml:"default_ttl" mapstructure:"default_ttl"`
}

// PostgresConfig contains Postgres-backed session store configuration.
type PostgresConfig struct {
	DatabaseURL     string        `yaml:"database_url" mapstructure:"database_url"`
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"` // json or console
	File   struct {
		Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
		Path     string `yaml:"path" mapstructure:"path"`
		MaxSize  int    `yaml:"max_size" mapstructure:"max_size"`
		MaxAge   int    `yaml:"max_age" mapstructure:"max_age"`
		Compress bool   `yaml:"compress" mapstructure:"compress"`
	} `yaml:"file" mapstructure:"file"`
}

// GetDefaults returns a configuration with sensible defaults, matching
// spec.md §3's documented defaults for the sanitizer options.
func GetDefaults() *Config {
	return &Config{
		Patterns: PatternsConfig{
			Packs: []string{"default"},
		},
		Sanitizer: SanitizerConfig{
			RegexOnly:          false,
			MinConfidence:      0.85,
			StrictValidation:   false,
			Whitelist:          []string{},
			MaskTypes:          []string{},
			PlaceholderPrefix:  "<<",
			PlaceholderSuffix:  ">>",
			MaxInputCharacters: 50000,
			FormatHint:         "auto",
			SessionTTL:         24 * time.Hour,
		},
		Recognizer: RecognizerConfig{
			Enabled:   true,
			ModelPath: "./models/ner.onnx",
			MaxLength: 256,
		},
		Store: StoreConfig{
			Backend: "memory",
			Redis: RedisConfig{
				URL:            "redis://localhost:6379/0",
				MaxConnections: 10,
				MinIdleConns:   2,
				KeyPrefix:      "maskcore",
				DefaultTTL:     24 * time.Hour,
			},
			Postgres: PostgresConfig{
				DatabaseURL:     "postgres://localhost:5432/maskcore?sslmode=disable",
				MaxOpenConns:    10,
				MaxIdleConns:    2,
				ConnMaxLifetime: time.Hour,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
