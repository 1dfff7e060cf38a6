package rps

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-rps/internal/core"
)

const (
	r = core.Rock
	p = core.Paper
	s = core.Scissors
)

func TestPredictInsufficientHistory(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	histories := [][]core.Move{
		nil,
		{r},
		{s},
		{r, r},
		{p, s},
	}

	for _, h := range histories {
		if m, _, ok := Predict(h, rng); ok {
			t.Errorf("Predict(%v) = %v, want no prediction", h, m)
		}
	}
}

func TestPredictRules(t *testing.T) {
	tests := []struct {
		name     string
		history  []core.Move
		expected core.Move
		rule     Strategy
	}{
		{name: "repeated rock", history: []core.Move{r, r, r}, expected: r, rule: StrategyRepetition},
		{name: "repeated scissors", history: []core.Move{s, s, s}, expected: s, rule: StrategyRepetition},
		{name: "rotation from rock", history: []core.Move{r, p, s}, expected: r, rule: StrategyRotation},
		{name: "rotation from paper", history: []core.Move{p, s, r}, expected: p, rule: StrategyRotation},
		{name: "rotation from scissors", history: []core.Move{s, r, p}, expected: s, rule: StrategyRotation},
		{name: "only last three count", history: []core.Move{s, s, r, p, s}, expected: r, rule: StrategyRotation},
		{name: "repetition after noise", history: []core.Move{r, p, s, p, p, p}, expected: p, rule: StrategyRepetition},
		{name: "least recent rock paper rock", history: []core.Move{r, p, r}, expected: s, rule: StrategyLeastRecent},
		{name: "least recent rock rock paper", history: []core.Move{r, r, p}, expected: s, rule: StrategyLeastRecent},
		{name: "least recent scissors rock scissors", history: []core.Move{s, r, s}, expected: p, rule: StrategyLeastRecent},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			m, rule, ok := Predict(tc.history, rng)
			if !ok {
				t.Fatalf("Predict(%v) returned no prediction", tc.history)
			}
			if m != tc.expected {
				t.Errorf("Predict(%v) = %v, expected %v", tc.history, m, tc.expected)
			}
			if rule != tc.rule {
				t.Errorf("Predict(%v) rule = %v, expected %v", tc.history, rule, tc.rule)
			}
		})
	}
}

func TestPredictLeastRecentNeverPicksRecentMoves(t *testing.T) {
	history := []core.Move{r, p, r}
	for seed := int64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		m, _, ok := Predict(history, rng)
		if !ok {
			t.Fatalf("seed %d: no prediction", seed)
		}
		if m != s {
			t.Fatalf("seed %d: Predict(%v) = %v, only scissors is allowed", seed, history, m)
		}
	}
}

func TestPredictAllDistinctWithoutRotationIsNone(t *testing.T) {
	// Every permutation of the three moves that is not a forward rotation.
	histories := [][]core.Move{
		{r, s, p},
		{p, r, s},
		{s, p, r},
	}

	rng := rand.New(rand.NewSource(3))
	for _, h := range histories {
		if m, _, ok := Predict(h, rng); ok {
			t.Errorf("Predict(%v) = %v, want no prediction", h, m)
		}
	}
}

func TestPredictRepetitionOnly(t *testing.T) {
	if m, ok := PredictRepetition([]core.Move{p, p, p}); !ok || m != p {
		t.Errorf("PredictRepetition(ppp) = %v, %v; want paper, true", m, ok)
	}
	if _, ok := PredictRepetition([]core.Move{r, p, s}); ok {
		t.Error("PredictRepetition must ignore rotations")
	}
	if _, ok := PredictRepetition([]core.Move{r, p, r}); ok {
		t.Error("PredictRepetition must ignore least-recent picks")
	}
	if _, ok := PredictRepetition([]core.Move{r, r}); ok {
		t.Error("PredictRepetition needs three moves")
	}
}

func TestHistoryRecent(t *testing.T) {
	var h History
	if got := h.Recent(3); len(got) != 0 {
		t.Errorf("Recent(3) on empty history = %v", got)
	}

	for _, m := range []core.Move{r, p, s, s, r} {
		h.Append(m)
	}

	got := h.Recent(3)
	want := []core.Move{s, s, r}
	if len(got) != len(want) {
		t.Fatalf("Recent(3) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Recent(3) = %v, want %v", got, want)
		}
	}

	// Returned slices are copies.
	got[0] = p
	if h.Recent(3)[0] != s {
		t.Error("Recent() must not expose internal storage")
	}

	if h.Len() != 5 || len(h.Recent(10)) != 5 {
		t.Errorf("Len() = %d, Recent(10) = %v", h.Len(), h.Recent(10))
	}

	h.Reset()
	if h.Len() != 0 {
		t.Errorf("Len() after Reset = %d", h.Len())
	}
}
