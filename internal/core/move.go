// Package core provides the fundamental domain types for the game:
// moves, the beats relation, round outcomes and difficulty levels.
// It has no external dependencies so the decision engine stays pure
// and testable.
package core

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// ErrInvalidMove is returned when a value outside {rock, paper, scissors}
// reaches the boundary of the engine.
var ErrInvalidMove = errors.New("invalid move")

// Move is one of rock, paper or scissors. The zero value is not a valid move.
type Move uint8

const (
	Rock Move = iota + 1
	Paper
	Scissors
)

// AllMoves lists every valid move in canonical order.
var AllMoves = [3]Move{Rock, Paper, Scissors}

// Valid reports whether m is one of the three moves.
func (m Move) Valid() bool {
	switch m {
	case Rock, Paper, Scissors:
		return true
	default:
		return false
	}
}

// String returns the lowercase name of the move.
func (m Move) String() string {
	switch m {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return "unknown"
	}
}

// Symbol returns a short glyph for compact displays.
func (m Move) Symbol() string {
	switch m {
	case Rock:
		return "✊"
	case Paper:
		return "✋"
	case Scissors:
		return "✌"
	default:
		return "?"
	}
}

// Beats reports whether m defeats other.
// rock beats scissors, scissors beats paper, paper beats rock.
func (m Move) Beats(other Move) bool {
	switch m {
	case Rock:
		return other == Scissors
	case Paper:
		return other == Rock
	case Scissors:
		return other == Paper
	default:
		return false
	}
}

// Successor is the forward rotation rock -> paper -> scissors -> rock.
func Successor(m Move) Move {
	switch m {
	case Rock:
		return Paper
	case Paper:
		return Scissors
	case Scissors:
		return Rock
	default:
		return m
	}
}

// Counter returns the unique move that beats m.
func Counter(m Move) Move {
	switch m {
	case Rock:
		return Paper
	case Paper:
		return Scissors
	case Scissors:
		return Rock
	default:
		return m
	}
}

// LosesTo returns the move that m beats.
func LosesTo(m Move) Move {
	switch m {
	case Rock:
		return Scissors
	case Paper:
		return Rock
	case Scissors:
		return Paper
	default:
		return m
	}
}

// RandomMove draws a move uniformly from the three values.
func RandomMove(rng *rand.Rand) Move {
	return AllMoves[rng.Intn(len(AllMoves))]
}

// ParseMove converts user input into a Move.
// Accepts full names and single-letter shortcuts, case-insensitive.
func ParseMove(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rock", "r":
		return Rock, nil
	case "paper", "p":
		return Paper, nil
	case "scissors", "scissor", "s":
		return Scissors, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Move) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMove, uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Move) UnmarshalText(text []byte) error {
	parsed, err := ParseMove(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
