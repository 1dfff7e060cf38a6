// Package predict defines the optional remote prediction capability.
// A Provider guesses the player's next move from their history; the game
// session treats it as best-effort and falls back to its local heuristic
// whenever a provider fails, times out or has no answer.
package predict

import (
	"context"
	"errors"

	"github.com/vovakirdan/tui-rps/internal/core"
)

// ErrProviderFailure wraps every transport, status or decoding failure
// reported by a provider.
var ErrProviderFailure = errors.New("prediction provider failure")

// MinHistory is the number of moves a provider needs before it is consulted.
const MinHistory = 3

// Provider predicts the player's next move.
// ok is false when the provider has no opinion; this is not an error.
type Provider interface {
	PredictNext(ctx context.Context, history []core.Move) (move core.Move, ok bool, err error)
}

// Func adapts an ordinary function to the Provider interface.
type Func func(ctx context.Context, history []core.Move) (core.Move, bool, error)

// PredictNext calls f.
func (f Func) PredictNext(ctx context.Context, history []core.Move) (core.Move, bool, error) {
	return f(ctx, history)
}
