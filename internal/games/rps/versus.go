package rps

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-rps/internal/core"
)

var (
	// ErrChoicePending is returned when player one chooses twice in a round.
	ErrChoicePending = errors.New("player one has already chosen")

	// ErrNoPendingChoice is returned when player two chooses before player one.
	ErrNoPendingChoice = errors.New("player one has not chosen yet")
)

// VersusTally counts results of a hot-seat match.
type VersusTally struct {
	P1   int
	P2   int
	Ties int
}

// VersusResult describes one resolved hot-seat round.
type VersusResult struct {
	Round   int
	P1Move  core.Move
	P2Move  core.Move
	Outcome core.Outcome // PlayerWins means player one won
	Winner  string       // empty on a tie
	Tally   VersusTally
}

// Message returns the announcement for the round.
func (r VersusResult) Message() string {
	if r.Outcome == core.Tie {
		return "It's a tie!"
	}
	return fmt.Sprintf("%s wins!", r.Winner)
}

// Versus is a local two-player match on one device. Player one picks a
// hidden move, then player two picks, then the round is resolved.
type Versus struct {
	p1Name  string
	p2Name  string
	pending core.Move
	rounds  int
	tally   VersusTally
}

// NewVersus creates a hot-seat match. Empty names default to "Player 1"/"Player 2".
func NewVersus(p1Name, p2Name string) *Versus {
	if p1Name == "" {
		p1Name = "Player 1"
	}
	if p2Name == "" {
		p2Name = "Player 2"
	}
	return &Versus{p1Name: p1Name, p2Name: p2Name}
}

// ChooseFirst stores player one's hidden move.
func (v *Versus) ChooseFirst(m core.Move) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", core.ErrInvalidMove, uint8(m))
	}
	if v.pending.Valid() {
		return ErrChoicePending
	}
	v.pending = m
	return nil
}

// ChooseSecond takes player two's move and resolves the round.
func (v *Versus) ChooseSecond(m core.Move) (VersusResult, error) {
	if !m.Valid() {
		return VersusResult{}, fmt.Errorf("%w: %d", core.ErrInvalidMove, uint8(m))
	}
	if !v.pending.Valid() {
		return VersusResult{}, ErrNoPendingChoice
	}

	p1 := v.pending
	v.pending = 0
	v.rounds++

	outcome := core.Evaluate(p1, m)
	result := VersusResult{
		Round:   v.rounds,
		P1Move:  p1,
		P2Move:  m,
		Outcome: outcome,
	}
	switch outcome {
	case core.PlayerWins:
		v.tally.P1++
		result.Winner = v.p1Name
	case core.ComputerWins:
		v.tally.P2++
		result.Winner = v.p2Name
	default:
		v.tally.Ties++
	}
	result.Tally = v.tally
	return result, nil
}

// AwaitingSecond reports whether player one has chosen and player two is up.
func (v *Versus) AwaitingSecond() bool {
	return v.pending.Valid()
}

// Names returns both player names.
func (v *Versus) Names() (string, string) {
	return v.p1Name, v.p2Name
}

// Tally returns the running totals.
func (v *Versus) Tally() VersusTally {
	return v.tally
}

// Reset clears the tally and any pending choice.
func (v *Versus) Reset() {
	v.pending = 0
	v.rounds = 0
	v.tally = VersusTally{}
}
