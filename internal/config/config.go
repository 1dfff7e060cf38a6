// Package config provides YAML-based configuration loading for the game,
// with an embedded default file and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/vovakirdan/tui-rps/internal/core"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the complete application configuration.
type Config struct {
	Game     GameConfig     `yaml:"game"`
	Storage  StorageConfig  `yaml:"storage"`
	Provider ProviderConfig `yaml:"provider"`
	Log      LogConfig      `yaml:"log"`
}

// GameConfig defines the starting state of a session.
type GameConfig struct {
	Difficulty core.Difficulty `yaml:"difficulty"`
	PlayerName string          `yaml:"player_name"`
	Seed       int64           `yaml:"seed"` // 0 = random based on time
}

// StorageConfig defines where rounds and scores are kept.
type StorageConfig struct {
	Path         string `yaml:"path"`
	HistoryLimit int    `yaml:"history_limit"` // Rounds shown in history views
}

// ProviderConfig defines the optional remote prediction provider.
type ProviderConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Endpoint  string        `yaml:"endpoint"`
	Model     string        `yaml:"model"`
	APIKeyEnv string        `yaml:"api_key_env"` // Name of the env var holding the key
	Timeout   time.Duration `yaml:"timeout"`
	MaxTokens int           `yaml:"max_tokens"`
}

// APIKey reads the provider key from the configured environment variable.
func (p ProviderConfig) APIKey() string {
	if p.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(p.APIKeyEnv)
}

// LogConfig defines logging behaviour.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Used while a full-screen UI owns the terminal
}

// Validate checks the config for values the game cannot run with.
func (c Config) Validate() error {
	if _, err := core.ParseDifficulty(c.Game.Difficulty.String()); err != nil {
		return fmt.Errorf("%w: game.difficulty: %w", ErrInvalidConfig, err)
	}
	if c.Storage.HistoryLimit <= 0 {
		return fmt.Errorf("%w: storage.history_limit must be positive, got %d", ErrInvalidConfig, c.Storage.HistoryLimit)
	}
	if c.Provider.Enabled {
		if c.Provider.Timeout <= 0 {
			return fmt.Errorf("%w: provider.timeout must be positive, got %s", ErrInvalidConfig, c.Provider.Timeout)
		}
		if c.Provider.Endpoint == "" {
			return fmt.Errorf("%w: provider.endpoint is required when the provider is enabled", ErrInvalidConfig)
		}
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}
