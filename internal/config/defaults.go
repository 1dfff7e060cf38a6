package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/predict"
)

//go:embed defaults/rps.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default configuration.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			Difficulty: core.DifficultyMedium,
			PlayerName: "Player",
		},
		Storage: StorageConfig{
			Path:         "~/.rps/rps.db",
			HistoryLimit: 10,
		},
		Provider: ProviderConfig{
			Enabled:   false,
			Endpoint:  predict.DefaultEndpoint,
			Model:     predict.DefaultModel,
			APIKeyEnv: "OPENROUTER_API_KEY",
			Timeout:   3 * time.Second,
			MaxTokens: 10,
		},
		Log: LogConfig{
			Level: "info",
			File:  "~/.rps/rps.log",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
