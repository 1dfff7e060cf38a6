package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rps/internal/config"
	"github.com/vovakirdan/tui-rps/internal/games/rps"
	"github.com/vovakirdan/tui-rps/internal/platform/tui"
)

var (
	flagP1 string
	flagP2 string
)

var versusCmd = &cobra.Command{
	Use:   "versus",
	Short: "Hot-seat match for two players",
	Long: `Play against another person on the same keyboard.

Player one picks a move while player two looks away, then player two picks.
Moves use the same keys as 'rps play'. Hot-seat rounds are not recorded.

Examples:
  rps versus
  rps versus --p1 Ana --p2 Ben`,
	Args: cobra.NoArgs,
	Run:  runVersus,
}

func init() {
	versusCmd.Flags().StringVar(&flagP1, "p1", "", "Name of player one")
	versusCmd.Flags().StringVar(&flagP2, "p2", "", "Name of player two")
}

func runVersus(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	// A configured player name takes the first seat unless --p1 is given.
	p1Name := flagP1
	if p1Name == "" && cfg.Game.PlayerName != config.DefaultConfig().Game.PlayerName {
		p1Name = cfg.Game.PlayerName
	}
	match := rps.NewVersus(p1Name, flagP2)

	if err := tui.RunVersus(match, runtimeConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}

	p1, p2 := match.Names()
	tally := match.Tally()
	fmt.Printf("%s %d : %d %s (%d ties)\n", p1, tally.P1, tally.P2, p2, tally.Ties)
}
