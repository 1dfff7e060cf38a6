package rps

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-rps/internal/core"
)

// Thresholds for the dashboard commentary.
const (
	minGamesForFavorite = 5
	minGamesForPatterns = 10
	patternWindow       = 5
	highWinRate         = 60.0
	lowWinRate          = 30.0
)

// Analysis summarises the player's habits.
type Analysis struct {
	Games       int
	Counts      map[core.Move]int
	Percent     map[core.Move]int // rounded to whole percent
	WinRate     float64           // player wins / games * 100
	Favorite    core.Move         // valid only once enough games are played
	Repeating   bool              // last five moves identical
	Alternating bool              // last five moves alternate A B A B A
	Hint        string
}

// Analyze computes move frequencies, win rate and simple pattern flags.
func Analyze(history []core.Move, scores core.Scores) Analysis {
	a := Analysis{
		Games:   len(history),
		Counts:  make(map[core.Move]int, len(core.AllMoves)),
		Percent: make(map[core.Move]int, len(core.AllMoves)),
	}
	if a.Games == 0 {
		return a
	}

	for _, m := range history {
		a.Counts[m]++
	}
	for _, m := range core.AllMoves {
		a.Percent[m] = int(math.Round(float64(a.Counts[m]) / float64(a.Games) * 100))
	}
	a.WinRate = float64(scores.Player) / float64(a.Games) * 100

	if a.Games >= minGamesForFavorite {
		// Ties resolve in rock, paper, scissors order.
		for _, m := range core.AllMoves {
			if !a.Favorite.Valid() || a.Counts[m] > a.Counts[a.Favorite] {
				a.Favorite = m
			}
		}
	}

	if a.Games >= minGamesForPatterns {
		last := history[len(history)-patternWindow:]
		switch {
		case allSame(last):
			a.Repeating = true
		case last[0] == last[2] && last[2] == last[4] && last[1] == last[3]:
			a.Alternating = true
		}

		switch {
		case a.WinRate > highWinRate:
			a.Hint = "You're doing well against the computer. Maybe try a harder difficulty?"
		case a.WinRate < lowWinRate:
			a.Hint = "The computer seems to be predicting your moves. Try being less predictable."
		}
	}

	return a
}

// Summary renders the analysis as a short paragraph.
func (a Analysis) Summary() string {
	if a.Games < minGamesForFavorite {
		return "Play more games for analysis."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You favor %s (%d%% of moves). ", a.Favorite, a.Percent[a.Favorite])
	if a.Repeating {
		sb.WriteString("You're repeating the same move. Try mixing it up! ")
	}
	if a.Alternating {
		sb.WriteString("You're alternating in a predictable pattern. ")
	}
	sb.WriteString(a.Hint)
	return strings.TrimSpace(sb.String())
}

func allSame(moves []core.Move) bool {
	for _, m := range moves[1:] {
		if m != moves[0] {
			return false
		}
	}
	return true
}
