package rps

import (
	"math/rand"

	"github.com/vovakirdan/tui-rps/internal/core"
)

// Decision is the computer's move together with how it was chosen.
type Decision struct {
	Move       core.Move
	Strategy   Strategy
	Prediction core.Move // expected player move, valid only if Predicted
	Predicted  bool
}

// CounterMove returns the move that beats the prediction,
// or a uniform random move when there is no prediction.
func CounterMove(predicted core.Move, ok bool, rng *rand.Rand) core.Move {
	if !ok {
		return core.RandomMove(rng)
	}
	return core.Counter(predicted)
}

// ChooseComputerMove applies the difficulty policy to the player's history.
//
//   - easy ignores the history and plays randomly.
//   - medium flips a coin: heads plays randomly, tails looks for a
//     three-move repetition and counters it, falling back to random.
//   - hard runs the full predictor and counters its guess.
//
// The returned decision always carries a valid move.
func ChooseComputerMove(d core.Difficulty, history []core.Move, rng *rand.Rand) Decision {
	switch d {
	case core.DifficultyMedium:
		if rng.Float64() < 0.5 {
			if m, ok := PredictRepetition(history); ok {
				return Decision{
					Move:       core.Counter(m),
					Strategy:   StrategyRepetition,
					Prediction: m,
					Predicted:  true,
				}
			}
		}
		return randomDecision(rng)

	case core.DifficultyHard:
		m, rule, ok := Predict(history, rng)
		if !ok {
			return randomDecision(rng)
		}
		return Decision{
			Move:       CounterMove(m, true, rng),
			Strategy:   rule,
			Prediction: m,
			Predicted:  true,
		}

	default:
		return randomDecision(rng)
	}
}

func randomDecision(rng *rand.Rand) Decision {
	return Decision{Move: core.RandomMove(rng), Strategy: StrategyRandom}
}
