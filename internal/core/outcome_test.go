package core

import (
	"errors"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		player, computer Move
		expected         Outcome
	}{
		{Rock, Scissors, PlayerWins},
		{Scissors, Rock, ComputerWins},
		{Paper, Paper, Tie},
		{Paper, Rock, PlayerWins},
		{Rock, Paper, ComputerWins},
		{Scissors, Paper, PlayerWins},
		{Paper, Scissors, ComputerWins},
		{Rock, Rock, Tie},
		{Scissors, Scissors, Tie},
	}

	for _, tc := range tests {
		if got := Evaluate(tc.player, tc.computer); got != tc.expected {
			t.Errorf("Evaluate(%v, %v) = %v, expected %v", tc.player, tc.computer, got, tc.expected)
		}
	}
}

func TestScoresApply(t *testing.T) {
	var s Scores
	s.Apply(PlayerWins)
	s.Apply(Tie)
	s.Apply(ComputerWins)
	s.Apply(PlayerWins)

	if s.Player != 2 || s.Computer != 1 {
		t.Errorf("Scores = %+v, want {Player:2 Computer:1}", s)
	}

	s.Reset()
	if s != (Scores{}) {
		t.Errorf("Scores after Reset = %+v, want zero", s)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := map[string]Difficulty{
		"easy":   DifficultyEasy,
		"Medium": DifficultyMedium,
		"normal": DifficultyMedium,
		"HARD":   DifficultyHard,
	}
	for input, want := range tests {
		got, err := ParseDifficulty(input)
		if err != nil {
			t.Fatalf("ParseDifficulty(%q) unexpected error: %v", input, err)
		}
		if got != want {
			t.Errorf("ParseDifficulty(%q) = %v, want %v", input, got, want)
		}
	}

	if _, err := ParseDifficulty("adaptive"); !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("ParseDifficulty(adaptive) error = %v, want ErrUnknownDifficulty", err)
	}
}

func TestDifficultyNextCycles(t *testing.T) {
	d := DifficultyEasy
	for _, want := range []Difficulty{DifficultyMedium, DifficultyHard, DifficultyEasy} {
		d = d.Next()
		if d != want {
			t.Fatalf("Next() = %v, want %v", d, want)
		}
	}
}
