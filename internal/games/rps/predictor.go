package rps

import (
	"math/rand"

	"github.com/vovakirdan/tui-rps/internal/core"
)

// Window is the number of recent moves the pattern rules look at.
const Window = 3

// Strategy names how the computer arrived at its move.
type Strategy int

const (
	StrategyRandom      Strategy = iota // uniform random pick
	StrategyRepetition                  // player repeated one move three times
	StrategyRotation                    // player cycled rock -> paper -> scissors
	StrategyLeastRecent                 // player will pick a move missing from the window
	StrategyRemote                      // external prediction provider
)

// String returns a short label for the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyRandom:
		return "random"
	case StrategyRepetition:
		return "repetition"
	case StrategyRotation:
		return "rotation"
	case StrategyLeastRecent:
		return "least-recent"
	case StrategyRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Predict guesses the player's next move from their history.
// Rules are tried in priority order on the last three moves:
//
//  1. repetition: three identical moves predict that move again
//  2. rotation: a forward cycle (rock, paper, scissors) predicts the next step
//  3. least-recent: a random pick among moves missing from the window
//
// ok is false with fewer than three moves, and also when the window holds
// all three moves without forming a rotation.
func Predict(history []core.Move, rng *rand.Rand) (core.Move, Strategy, bool) {
	if len(history) < Window {
		return 0, StrategyRandom, false
	}
	last := history[len(history)-Window:]

	if m, ok := repetition(last); ok {
		return m, StrategyRepetition, true
	}

	if last[1] == core.Successor(last[0]) && last[2] == core.Successor(last[1]) {
		return core.Successor(last[2]), StrategyRotation, true
	}

	var unused []core.Move
	for _, m := range core.AllMoves {
		if last[0] != m && last[1] != m && last[2] != m {
			unused = append(unused, m)
		}
	}
	if len(unused) == 0 {
		return 0, StrategyRandom, false
	}
	return unused[rng.Intn(len(unused))], StrategyLeastRecent, true
}

// PredictRepetition applies only the repetition rule.
func PredictRepetition(history []core.Move) (core.Move, bool) {
	if len(history) < Window {
		return 0, false
	}
	return repetition(history[len(history)-Window:])
}

func repetition(last []core.Move) (core.Move, bool) {
	if last[0] == last[1] && last[1] == last[2] {
		return last[0], true
	}
	return 0, false
}
