package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rps/internal/games/rps"
	"github.com/vovakirdan/tui-rps/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a mode picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a mode.
Leaving a mode with Esc returns to the menu. Scores against the computer
carry over between visits until you quit.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select mode
  Q            - Quit

Examples:
  rps menu
  rps menu --db ./rps.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger, closeLog := newLogger(cfg, true)
	defer closeLog()

	store := openStore(cfg)
	rc := runtimeConfig()

	// One session and one hot-seat match for the whole menu run
	sess := newSession(cfg, logger, "")
	match := rps.NewVersus(sess.PlayerName(), "")

	for {
		menuResult, err := tui.RunMenu(rc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		rc = menuResult.Config

		if menuResult.Quit {
			break
		}

		switch menuResult.Mode {
		case tui.ModeComputer:
			err = tui.Run(sess, store, rc, logger)
		case tui.ModeVersus:
			err = tui.RunVersus(match, rc)
		case tui.ModeScoreboard:
			var goBack bool
			goBack, err = tui.RunScoreboard(store, rc.ScreenW, rc.ScreenH)
			if err == nil && !goBack {
				menuResult.Quit = true
			}
		}

		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		if menuResult.Quit {
			break
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
