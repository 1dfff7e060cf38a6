package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/platform/tui"
)

var (
	flagDifficulty string
	flagName       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play against the computer",
	Long: `Start a game against the computer.

Controls:
  R/1        - Rock
  P/2        - Paper
  S/3        - Scissors
  D          - Cycle difficulty
  X          - Reset scores and history
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - The computer plays at random
  medium - Half the time it counters a move you repeated
  hard   - It predicts from your last moves and counters every time

Examples:
  rps play
  rps play --difficulty hard
  rps play --name Nia --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard (overrides config)")
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name (overrides config)")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	if flagDifficulty != "" {
		d, err := core.ParseDifficulty(flagDifficulty)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg.Game.Difficulty = d
	}

	logger, closeLog := newLogger(cfg, true)
	sess := newSession(cfg, logger, flagName)
	store := openStore(cfg)

	logger.Info("game started", "session", sess.ID(), "difficulty", sess.Difficulty())

	runErr := tui.Run(sess, store, runtimeConfig(), logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}
	closeLog()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	scores := sess.Scores()
	if sess.Rounds() > 0 {
		fmt.Printf("%s %d : %d Computer after %d rounds\n", sess.PlayerName(), scores.Player, scores.Computer, sess.Rounds())
	}
}
