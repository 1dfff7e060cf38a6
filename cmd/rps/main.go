// rps is a terminal Rock-Paper-Scissors game against a computer that
// learns the player's habits.
//
// Usage:
//
//	rps play                 - Play against the computer
//	rps versus               - Two players on one keyboard
//	rps menu                 - Start menu to pick a mode interactively
//	rps history              - Show recent rounds
//	rps scores               - Show the scoreboard
//	rps serve                - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default search: ~/.rps/config.yaml, ./configs/rps.yaml)
//	--seed <value>      - Set RNG seed for reproducible games
//	--db <path>         - Set database path (default: ~/.rps/rps.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-rps/internal/config"
	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/games/rps"
	"github.com/vovakirdan/tui-rps/internal/predict"
	"github.com/vovakirdan/tui-rps/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rps",
	Short: "Rock Paper Scissors against a computer that learns your habits",
	Long: `rps is a terminal Rock-Paper-Scissors game. The computer watches
your recent moves and tries to predict and counter the next one.

Available commands:
  play     - Play against the computer
  versus   - Hot-seat match for two players
  menu     - Interactive mode picker
  history  - Show recent rounds
  scores   - Show the scoreboard
  serve    - Start SSH server for remote play

Examples:
  rps play --difficulty hard
  rps versus --p1 Ana --p2 Ben
  rps history --limit 20
  rps serve --ssh :2222`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to rounds and scores database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(versusCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the config file and applies global flag overrides.
// Exits on error.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagSeed != 0 {
		cfg.Game.Seed = flagSeed
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds the application logger. While a full-screen UI owns the
// terminal, logs go to the configured file instead of stderr.
// The returned func closes the log file, if any.
func newLogger(cfg config.Config, toFile bool) (*log.Logger, func()) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}

	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "rps",
		Level:           level,
	}

	if !toFile || cfg.Log.File == "" {
		return log.NewWithOptions(os.Stderr, opts), func() {}
	}

	path := config.ExpandHome(cfg.Log.File)
	//nolint:errcheck // Best-effort directory creation, OpenFile reports the failure
	os.MkdirAll(filepath.Dir(path), 0o755)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		opts.Level = log.FatalLevel // Keep the screen clean
		return log.NewWithOptions(os.Stderr, opts), func() {}
	}

	return log.NewWithOptions(f, opts), func() { f.Close() }
}

// newSession builds a game session from the config.
func newSession(cfg config.Config, logger *log.Logger, playerName string) *rps.Session {
	if playerName == "" {
		playerName = cfg.Game.PlayerName
	}

	opts := []rps.Option{
		rps.WithSeed(cfg.Game.Seed),
		rps.WithDifficulty(cfg.Game.Difficulty),
		rps.WithPlayerName(playerName),
		rps.WithLogger(logger),
	}

	if cfg.Provider.Enabled {
		provider := predict.NewChatProvider(predict.ChatConfig{
			Endpoint:  cfg.Provider.Endpoint,
			Model:     cfg.Provider.Model,
			APIKey:    cfg.Provider.APIKey(),
			MaxTokens: cfg.Provider.MaxTokens,
		})
		opts = append(opts,
			rps.WithProvider(provider),
			rps.WithProviderTimeout(cfg.Provider.Timeout),
		)
		logger.Info("prediction provider enabled", "model", cfg.Provider.Model)
	}

	return rps.NewSession(opts...)
}

// openStore opens the database, warning instead of failing so the game
// still works without persistence.
func openStore(cfg config.Config) *storage.Store {
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		return nil
	}
	return store
}

// runtimeConfig reads the terminal size.
func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	return rc
}
