package core

import (
	"errors"
	"math/rand"
	"testing"
)

func TestBeatsRelation(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Move
		expected bool
	}{
		{name: "rock beats scissors", a: Rock, b: Scissors, expected: true},
		{name: "scissors beats paper", a: Scissors, b: Paper, expected: true},
		{name: "paper beats rock", a: Paper, b: Rock, expected: true},
		{name: "scissors loses to rock", a: Scissors, b: Rock, expected: false},
		{name: "paper loses to scissors", a: Paper, b: Scissors, expected: false},
		{name: "rock loses to paper", a: Rock, b: Paper, expected: false},
		{name: "rock does not beat rock", a: Rock, b: Rock, expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Beats(tc.b); got != tc.expected {
				t.Errorf("%v.Beats(%v) = %v, expected %v", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestCounterIsExact(t *testing.T) {
	expected := map[Move]Move{
		Rock:     Paper,
		Paper:    Scissors,
		Scissors: Rock,
	}

	for _, m := range AllMoves {
		c := Counter(m)
		if c != expected[m] {
			t.Errorf("Counter(%v) = %v, expected %v", m, c, expected[m])
		}
		if !c.Beats(m) {
			t.Errorf("Counter(%v) = %v does not beat it", m, c)
		}
		if LosesTo(c) != m {
			t.Errorf("LosesTo(Counter(%v)) = %v", m, LosesTo(c))
		}
	}
}

func TestSuccessorCycles(t *testing.T) {
	m := Rock
	seen := []Move{m}
	for range 3 {
		m = Successor(m)
		seen = append(seen, m)
	}

	want := []Move{Rock, Paper, Scissors, Rock}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("rotation = %v, want %v", seen, want)
		}
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		input   string
		want    Move
		wantErr bool
	}{
		{input: "rock", want: Rock},
		{input: "ROCK", want: Rock},
		{input: " paper ", want: Paper},
		{input: "s", want: Scissors},
		{input: "scissors", want: Scissors},
		{input: "lizard", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseMove(tc.input)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidMove) {
					t.Fatalf("ParseMove(%q) error = %v, want ErrInvalidMove", tc.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMove(%q) unexpected error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseMove(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestZeroMoveIsInvalid(t *testing.T) {
	var m Move
	if m.Valid() {
		t.Error("zero Move should not be valid")
	}
	if _, err := m.MarshalText(); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("MarshalText() error = %v, want ErrInvalidMove", err)
	}
}

func TestRandomMoveAlwaysValid(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	counts := make(map[Move]int)
	for range 300 {
		m := RandomMove(rng)
		if !m.Valid() {
			t.Fatalf("RandomMove() returned invalid move %d", m)
		}
		counts[m]++
	}
	for _, m := range AllMoves {
		if counts[m] == 0 {
			t.Errorf("RandomMove() never produced %v in 300 draws", m)
		}
	}
}
