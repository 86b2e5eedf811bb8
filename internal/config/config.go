package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	config := GetDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/maskcore/")
	viper.AddConfigPath("$HOME/.maskcore/")

	viper.SetEnvPrefix("MASKCORE")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if configPath != "" {
		viper.SetConfigFile(configPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// validateConfig validates the loaded configuration.
func validateConfig(config *Config) error {
	if config.Sanitizer.MinConfidence < 0 || config.Sanitizer.MinConfidence > 1 {
		return fmt.Errorf("invalid min_confidence: %f (must be between 0 and 1)", config.Sanitizer.MinConfidence)
	}

	if config.Sanitizer.MaxInputCharacters <= 0 {
		return fmt.Errorf("invalid max_input_characters: %d (must be positive)", config.Sanitizer.MaxInputCharacters)
	}

	switch config.Sanitizer.FormatHint {
	case "auto", "text", "structured", "markup":
	default:
		return fmt.Errorf("invalid format_hint: %s (must be auto, text, structured, or markup)", config.Sanitizer.FormatHint)
	}

	switch config.Store.Backend {
	case "memory", "redis", "postgres":
	default:
		return fmt.Errorf("invalid store backend: %s (must be memory, redis, or postgres)", config.Store.Backend)
	}

	if config.Recognizer.Enabled {
		if config.Recognizer.ModelPath == "" {
			return fmt.Errorf("recognizer.model_path must be set when recognizer is enabled")
		}
		if config.Recognizer.MaxLength <= 0 {
			return fmt.Errorf("invalid recognizer.max_length: %d (must be positive)", config.Recognizer.MaxLength)
		}
	}

	if config.Logging.Level != "debug" && config.Logging.Level != "info" && config.Logging.Level != "warn" && config.Logging.Level != "error" {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.Logging.Level)
	}

	if config.Logging.Format != "json" && config.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", config.Logging.Format)
	}

	return nil
}

// Watch starts watching the configuration file for changes, re-validating
// before invoking the callback so a bad edit never reaches live components.
func Watch(config *Config, callback func(*Config)) error {
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		newConfig := &Config{}
		if err := viper.Unmarshal(newConfig); err != nil {
			return
		}

		if err := validateConfig(newConfig); err != nil {
			return
		}

		callback(newConfig)
	})

	return nil
}
