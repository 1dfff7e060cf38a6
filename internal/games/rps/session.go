package rps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/predict"
)

var (
	// ErrRoundInProgress is returned when a move is submitted while the
	// previous round is still computing.
	ErrRoundInProgress = errors.New("round already in progress")

	// ErrSessionReset is returned by a round that was overtaken by ResetSession.
	// The round's result is discarded.
	ErrSessionReset = errors.New("session reset during round")
)

// DefaultProviderTimeout bounds a single call to the prediction provider.
const DefaultProviderTimeout = 3 * time.Second

// Phase is the position of the session in the per-round state machine.
type Phase int

const (
	PhaseAwaitingInput Phase = iota
	PhaseComputing
	PhaseEvaluating
	PhaseDisplayed
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingInput:
		return "awaiting input"
	case PhaseComputing:
		return "computing"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseDisplayed:
		return "displayed"
	default:
		return "unknown"
	}
}

// RoundResult is everything a round produced. It carries the inputs a
// history entry needs but is not persisted by the session itself.
type RoundResult struct {
	SessionID    string
	PlayerName   string
	Round        int
	Difficulty   core.Difficulty
	PlayerMove   core.Move
	ComputerMove core.Move
	Outcome      core.Outcome
	Scores       core.Scores
	Strategy     Strategy
	Prediction   core.Move // expected player move, valid only if Predicted
	Predicted    bool

	// Degraded is set when the prediction provider was consulted and
	// failed, so the local heuristic chose the move instead.
	Degraded bool
}

// Session holds the state of one player's game against the computer.
// It is safe for use from multiple goroutines, but only one round runs at a time.
type Session struct {
	mu sync.Mutex

	id         string
	playerName string
	difficulty core.Difficulty
	history    History
	scores     core.Scores
	rounds     int
	phase      Phase
	generation uint64

	rng             *rand.Rand
	provider        predict.Provider
	providerTimeout time.Duration
	logger          *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the randomness source. Tests pass a seeded source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithSeed seeds the randomness source. 0 means use current time.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithDifficulty sets the starting difficulty.
func WithDifficulty(d core.Difficulty) Option {
	return func(s *Session) {
		s.difficulty = d
	}
}

// WithProvider enables the remote prediction provider for hard difficulty.
func WithProvider(p predict.Provider) Option {
	return func(s *Session) {
		s.provider = p
	}
}

// WithProviderTimeout bounds each provider call.
func WithProviderTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.providerTimeout = d
		}
	}
}

// WithLogger sets the logger used for provider failures and decisions.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithPlayerName sets the name shown in results and stored with rounds.
func WithPlayerName(name string) Option {
	return func(s *Session) {
		if name != "" {
			s.playerName = name
		}
	}
}

// NewSession creates a session at medium difficulty with a time-seeded
// randomness source unless options say otherwise.
func NewSession(opts ...Option) *Session {
	s := &Session{
		id:              uuid.NewString(),
		playerName:      "Player",
		difficulty:      core.DifficultyMedium,
		providerTimeout: DefaultProviderTimeout,
		logger:          log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// SubmitPlayerMove plays one round: the computer decides its move from the
// history before this move, then both moves are compared and the scores
// and history are updated.
func (s *Session) SubmitPlayerMove(ctx context.Context, move core.Move) (RoundResult, error) {
	if !move.Valid() {
		return RoundResult{}, fmt.Errorf("%w: %d", core.ErrInvalidMove, uint8(move))
	}

	s.mu.Lock()
	if s.phase == PhaseComputing || s.phase == PhaseEvaluating {
		s.mu.Unlock()
		return RoundResult{}, ErrRoundInProgress
	}
	s.phase = PhaseComputing
	generation := s.generation
	difficulty := s.difficulty
	history := s.history.All()
	s.mu.Unlock()

	var (
		decision Decision
		remote   bool
		degraded bool
	)
	if difficulty == core.DifficultyHard && s.provider != nil && len(history) >= predict.MinHistory {
		decision, remote, degraded = s.remoteDecision(ctx, history)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != generation {
		return RoundResult{}, ErrSessionReset
	}

	if !remote {
		decision = ChooseComputerMove(difficulty, history, s.rng)
	}

	s.phase = PhaseEvaluating
	outcome := core.Evaluate(move, decision.Move)
	s.scores.Apply(outcome)
	s.history.Append(move)
	s.rounds++
	s.phase = PhaseDisplayed

	s.logger.Debug("round played",
		"session", s.id,
		"round", s.rounds,
		"difficulty", difficulty,
		"strategy", decision.Strategy,
		"player", move,
		"computer", decision.Move,
		"outcome", outcome,
	)

	return RoundResult{
		SessionID:    s.id,
		PlayerName:   s.playerName,
		Round:        s.rounds,
		Difficulty:   difficulty,
		PlayerMove:   move,
		ComputerMove: decision.Move,
		Outcome:      outcome,
		Scores:       s.scores,
		Strategy:     decision.Strategy,
		Prediction:   decision.Prediction,
		Predicted:    decision.Predicted,
		Degraded:     degraded,
	}, nil
}

// remoteDecision asks the provider for a prediction under a bounded timeout.
// Any failure or missing answer leaves remote false so the caller falls
// back to the local heuristic for this round only.
func (s *Session) remoteDecision(ctx context.Context, history []core.Move) (d Decision, remote, degraded bool) {
	ctx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	m, ok, err := s.provider.PredictNext(ctx, history)
	switch {
	case err != nil:
		s.logger.Warn("prediction provider failed, using local heuristic", "session", s.id, "error", err)
		return Decision{}, false, true
	case !ok || !m.Valid():
		s.logger.Debug("prediction provider had no answer", "session", s.id)
		return Decision{}, false, false
	}

	return Decision{
		Move:       core.Counter(m),
		Strategy:   StrategyRemote,
		Prediction: m,
		Predicted:  true,
	}, true, false
}

// ResetSession clears history, scores and the round counter and returns
// the session to awaiting input under a fresh ID. Calling it repeatedly
// leaves the same empty state. A round in flight is discarded.
func (s *Session) ResetSession() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history.Reset()
	s.scores.Reset()
	s.rounds = 0
	s.phase = PhaseAwaitingInput
	s.generation++
	s.id = uuid.NewString()
}

// SetDifficulty changes the policy used for the following rounds.
// It does not clear history or scores.
func (s *Session) SetDifficulty(d core.Difficulty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.difficulty = d
}

// Difficulty returns the current difficulty.
func (s *Session) Difficulty() core.Difficulty {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.difficulty
}

// Scores returns the current score counters.
func (s *Session) Scores() core.Scores {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scores
}

// History returns a copy of the player's moves so far.
func (s *Session) History() []core.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.All()
}

// Rounds returns the number of rounds played since the last reset.
func (s *Session) Rounds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rounds
}

// Phase returns the current state machine phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// ID returns the session identifier. It changes on every reset.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// PlayerName returns the player's display name.
func (s *Session) PlayerName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerName
}

// Analyze summarises the player's habits for the dashboard.
func (s *Session) Analyze() Analysis {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Analyze(s.history.All(), s.scores)
}
