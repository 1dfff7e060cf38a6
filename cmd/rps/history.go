package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-rps/internal/storage"
)

var (
	flagHistoryLimit int
	flagClear        bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent rounds",
	Long: `Display the most recent rounds played against the computer,
newest first. The default limit comes from storage.history_limit.

Examples:
  rps history
  rps history --limit 25
  rps history --clear`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 0, "Number of rounds to show (default from config)")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the round history")
}

func runHistory(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRounds(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Round history cleared.")
		return
	}

	limit := flagHistoryLimit
	if limit <= 0 {
		limit = cfg.Storage.HistoryLimit
	}

	rounds, err := store.RecentRounds(limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent Rounds")
	fmt.Println()

	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'rps play' to start.")
		return
	}

	// Print header
	fmt.Printf("  %-12s  %-6s  %-8s  %-8s  %-13s  %-5s  %s\n", "Player", "Level", "You", "CPU", "Result", "Score", "Date")
	fmt.Printf("  %-12s  %-6s  %-8s  %-8s  %-13s  %-5s  %s\n", "------", "-----", "---", "---", "------", "-----", "----")

	for _, r := range rounds {
		fmt.Printf("  %-12s  %-6s  %-8s  %-8s  %-13s  %-5s  %s\n",
			r.PlayerName,
			r.Difficulty,
			r.PlayerMove,
			r.ComputerMove,
			r.Outcome,
			fmt.Sprintf("%d:%d", r.PlayerScore, r.ComputerScore),
			r.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
}
