package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-rps/internal/core"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rps.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded default YAML does not parse: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded defaults = %+v\nhardcoded = %+v", cfg, DefaultConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults fail validation: %v", err)
	}
}

func TestLoadCustomPathOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
game:
  difficulty: hard
  player_name: Nia
provider:
  enabled: true
  timeout: 750ms
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Game.Difficulty != core.DifficultyHard {
		t.Errorf("difficulty = %v, want hard", cfg.Game.Difficulty)
	}
	if cfg.Game.PlayerName != "Nia" {
		t.Errorf("player_name = %q", cfg.Game.PlayerName)
	}
	if !cfg.Provider.Enabled || cfg.Provider.Timeout != 750*time.Millisecond {
		t.Errorf("provider = %+v", cfg.Provider)
	}
	// Untouched keys keep their defaults.
	if cfg.Storage.HistoryLimit != 10 || cfg.Provider.Model == "" {
		t.Errorf("defaults lost: storage = %+v provider = %+v", cfg.Storage, cfg.Provider)
	}
}

func TestLoadRejectsAdaptiveDifficulty(t *testing.T) {
	path := writeConfig(t, "game:\n  difficulty: adaptive\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load() should reject the adaptive difficulty")
	}
}

func TestLoadMissingCustomFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load() should fail for a missing custom config")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "zero history limit", modify: func(c *Config) { c.Storage.HistoryLimit = 0 }},
		{name: "provider without timeout", modify: func(c *Config) {
			c.Provider.Enabled = true
			c.Provider.Timeout = 0
		}},
		{name: "provider without endpoint", modify: func(c *Config) {
			c.Provider.Enabled = true
			c.Provider.Endpoint = ""
		}},
		{name: "unknown log level", modify: func(c *Config) { c.Log.Level = "verbose" }},
		{name: "unknown difficulty", modify: func(c *Config) { c.Game.Difficulty = core.Difficulty(9) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestProviderAPIKeyFromEnv(t *testing.T) {
	t.Setenv("RPS_TEST_KEY", "secret")
	p := ProviderConfig{APIKeyEnv: "RPS_TEST_KEY"}
	if p.APIKey() != "secret" {
		t.Errorf("APIKey() = %q", p.APIKey())
	}
	if (ProviderConfig{}).APIKey() != "" {
		t.Error("APIKey() without env var name should be empty")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/.rps/rps.db"); got != filepath.Join(home, ".rps", "rps.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandHome() changed an absolute path: %q", got)
	}
}
