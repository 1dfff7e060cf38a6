// Package rps implements the Rock-Paper-Scissors decision engine: the
// player history, the pattern predictor, the difficulty policies and the
// session that drives one round at a time. It has no UI or storage
// dependencies; the platform layer owns those.
package rps

import "github.com/vovakirdan/tui-rps/internal/core"

// History is the append-only, ordered record of the player's moves in a session.
type History struct {
	moves []core.Move
}

// Append records the player's move for a round.
func (h *History) Append(m core.Move) {
	h.moves = append(h.moves, m)
}

// Len returns the number of recorded moves.
func (h *History) Len() int {
	return len(h.moves)
}

// Recent returns a copy of the last n moves, oldest first.
// Fewer moves are returned if the history is shorter than n.
func (h *History) Recent(n int) []core.Move {
	if n <= 0 {
		return nil
	}
	if n > len(h.moves) {
		n = len(h.moves)
	}
	out := make([]core.Move, n)
	copy(out, h.moves[len(h.moves)-n:])
	return out
}

// All returns a copy of the whole history.
func (h *History) All() []core.Move {
	return h.Recent(len(h.moves))
}

// Reset clears the history.
func (h *History) Reset() {
	h.moves = nil
}
