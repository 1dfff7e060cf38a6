package core

// Outcome is the result of a round from the player's point of view.
type Outcome int

const (
	Tie Outcome = iota
	PlayerWins
	ComputerWins
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case Tie:
		return "tie"
	case PlayerWins:
		return "player wins"
	case ComputerWins:
		return "computer wins"
	default:
		return "unknown"
	}
}

// Evaluate compares the two moves of a round.
// Equal moves tie; otherwise the beats relation decides.
func Evaluate(player, computer Move) Outcome {
	switch {
	case player == computer:
		return Tie
	case player.Beats(computer):
		return PlayerWins
	default:
		return ComputerWins
	}
}

// Scores holds the cumulative score counters of a session.
// Both counters only grow until an explicit reset.
type Scores struct {
	Player   int
	Computer int
}

// Apply updates the counters for one round. Ties change nothing.
func (s *Scores) Apply(o Outcome) {
	switch o {
	case PlayerWins:
		s.Player++
	case ComputerWins:
		s.Computer++
	}
}

// Reset zeroes both counters.
func (s *Scores) Reset() {
	s.Player = 0
	s.Computer = 0
}
