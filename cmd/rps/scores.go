package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rps/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the scoreboard",
	Long: `Display the best sessions against the computer, ranked by the
player's score with fewer computer wins breaking ties, followed by totals
per difficulty.

Examples:
  rps scores
  rps scores --limit 5`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of sessions to show")
}

func runScores(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}

	scores, err := store.TopScores(flagScoresLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Println("Scoreboard")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'rps play' to set the first score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-12s  %-6s  %-7s  %-6s  %s\n", "Rank", "Player", "Level", "Score", "Rounds", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-7s  %-6s  %s\n", "----", "------", "-----", "-----", "------", "----")

	for i, entry := range scores {
		fmt.Printf("  %-4d  %-12s  %-6s  %-7s  %-6d  %s\n",
			i+1,
			entry.PlayerName,
			entry.Difficulty,
			fmt.Sprintf("%d:%d", entry.PlayerScore, entry.ComputerScore),
			entry.Rounds,
			entry.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	// Show totals per difficulty
	stats, err := store.Stats()
	if err != nil || len(stats) == 0 {
		return
	}
	fmt.Println()
	for _, st := range stats {
		fmt.Printf("%-6s  %d sessions, %d rounds, won %d, lost %d, best %d\n",
			st.Difficulty, st.Sessions, st.Rounds, st.PlayerWins, st.ComputerWins, st.BestScore)
	}
}
