package tui

import (
	"context"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/games/rps"
	"github.com/vovakirdan/tui-rps/internal/predict"
	"github.com/vovakirdan/tui-rps/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testSession() *rps.Session {
	return rps.NewSession(
		rps.WithRand(rand.New(rand.NewSource(7))),
		rps.WithPlayerName("Nia"),
	)
}

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24}
}

// update feeds msg to a model and returns the concrete model type.
func update[M tea.Model](t *testing.T, m M, msg tea.Msg) (M, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(M)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out, cmd
}

func TestModelMoveKeyStartsRound(t *testing.T) {
	m := NewModel(testSession(), nil, testConfig(), nil)

	m, cmd := update(t, m, keyMsg("r"))
	if !m.busy {
		t.Fatal("move key should start a round")
	}
	if cmd == nil {
		t.Fatal("move key should return a command")
	}
	if !strings.Contains(m.View(), "thinking") {
		t.Error("busy view should show the computer thinking")
	}

	// Move keys are ignored while a round is computing.
	_, cmd = update(t, m, keyMsg("p"))
	if cmd != nil {
		t.Error("second move while busy should be ignored")
	}
}

func TestModelRecordsRound(t *testing.T) {
	sess := testSession()
	store := testStore(t)
	m := NewModel(sess, store, testConfig(), nil)
	m.busy = true

	res, err := sess.SubmitPlayerMove(context.Background(), core.Rock)
	if err != nil {
		t.Fatalf("SubmitPlayerMove() failed: %v", err)
	}

	m, _ = update(t, m, RoundMsg{Result: res})
	if m.busy || m.last == nil {
		t.Fatalf("round not recorded: busy=%v last=%v", m.busy, m.last)
	}
	if !strings.Contains(m.View(), "Computer: ") {
		t.Error("view should show both moves")
	}

	rounds, _ := store.RecentRounds(10)
	if len(rounds) != 1 || rounds[0].SessionID != sess.ID() {
		t.Errorf("round not saved: %+v", rounds)
	}
	score, _ := store.SessionScore(sess.ID())
	if score == nil || score.Rounds != 1 || score.PlayerName != "Nia" {
		t.Errorf("scoreboard entry not saved: %+v", score)
	}
}

func TestModelDiscardsResetRound(t *testing.T) {
	m := NewModel(testSession(), nil, testConfig(), nil)
	m.busy = true

	m, _ = update(t, m, RoundMsg{Err: rps.ErrSessionReset})
	if m.busy || m.last != nil || m.lastErr != nil {
		t.Errorf("reset round should be dropped silently: %+v", m)
	}
}

func TestModelDifficultyChange(t *testing.T) {
	tests := []struct {
		name       string
		answer     string
		wantRounds int
	}{
		{name: "confirm resets", answer: "y", wantRounds: 0},
		{name: "decline keeps scores", answer: "n", wantRounds: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sess := testSession()
			m := NewModel(sess, nil, testConfig(), nil)

			// No rounds yet: the change applies immediately.
			m, _ = update(t, m, keyMsg("d"))
			if sess.Difficulty() != core.DifficultyHard || m.confirming != nil {
				t.Fatalf("difficulty = %v, confirming = %v", sess.Difficulty(), m.confirming)
			}

			if _, err := sess.SubmitPlayerMove(context.Background(), core.Paper); err != nil {
				t.Fatalf("SubmitPlayerMove() failed: %v", err)
			}

			m, _ = update(t, m, keyMsg("d"))
			if m.confirming == nil {
				t.Fatal("changing difficulty mid-game should ask first")
			}
			if !strings.Contains(m.View(), "Reset scores for easy difficulty?") {
				t.Error("prompt not shown")
			}

			// Unrelated keys do not answer the prompt.
			m, _ = update(t, m, keyMsg("r"))
			if m.confirming == nil || m.busy {
				t.Fatal("prompt should swallow other keys")
			}

			m, _ = update(t, m, keyMsg(tc.answer))
			if m.confirming != nil {
				t.Fatal("prompt not cleared")
			}
			if sess.Difficulty() != core.DifficultyEasy {
				t.Errorf("difficulty = %v, want easy", sess.Difficulty())
			}
			if sess.Rounds() != tc.wantRounds {
				t.Errorf("rounds = %d, want %d", sess.Rounds(), tc.wantRounds)
			}
		})
	}
}

func TestModelResetKey(t *testing.T) {
	sess := testSession()
	m := NewModel(sess, nil, testConfig(), nil)
	oldID := sess.ID()

	sess.SubmitPlayerMove(context.Background(), core.Scissors) //nolint:errcheck

	m, _ = update(t, m, keyMsg("x"))
	if sess.Rounds() != 0 || sess.ID() == oldID {
		t.Errorf("reset did not start a fresh session: rounds=%d", sess.Rounds())
	}
	if m.last != nil {
		t.Error("reset should clear the last result")
	}
}

func TestVersusModelRound(t *testing.T) {
	m := NewVersusModel(rps.NewVersus("Ana", "Ben"), testConfig())

	m, _ = update(t, m, keyMsg("r"))
	if !m.match.AwaitingSecond() {
		t.Fatal("player one's move should be pending")
	}
	if strings.Contains(m.View(), "Ana: ") {
		t.Error("player one's move must stay hidden")
	}

	m, _ = update(t, m, keyMsg("s"))
	if m.last == nil || m.last.Winner != "Ana" {
		t.Fatalf("last = %+v, want Ana winning", m.last)
	}
	if tally := m.match.Tally(); tally.P1 != 1 || tally.P2 != 0 {
		t.Errorf("tally = %+v", tally)
	}
	if !strings.Contains(m.View(), "Ana wins!") {
		t.Error("result not shown")
	}

	// Difficulty has no meaning in hot-seat play.
	if m.keys.Difficulty.Enabled() {
		t.Error("difficulty key should be disabled")
	}
}

func TestMenuNavigation(t *testing.T) {
	m := NewMenuModel(testConfig())

	m, _ = update(t, m, keyMsg("down"))
	m, cmd := update(t, m, keyMsg("enter"))
	if m.Selected() == nil || m.Selected().Mode != ModeVersus {
		t.Fatalf("selected = %+v, want versus", m.Selected())
	}
	if cmd == nil {
		t.Error("standalone menu should quit after a selection")
	}

	embedded := NewMenuModel(testConfig()).Embedded()
	_, cmd = update(t, embedded, keyMsg("enter"))
	if cmd != nil {
		t.Error("embedded menu should not quit after a selection")
	}
}

func TestSessionModelFlow(t *testing.T) {
	sess := testSession()
	store := testStore(t)
	m := NewSessionModel(sess, store, testConfig(), nil)

	// Enter picks the first entry, the game against the computer.
	m, _ = update(t, m, keyMsg("enter"))
	if _, ok := m.active.(Model); !ok {
		t.Fatalf("active = %T, want Model", m.active)
	}

	// Esc goes back to the menu, keeping the session.
	m, _ = update(t, m, keyMsg("esc"))
	if m.active != nil {
		t.Fatalf("active = %T, want menu", m.active)
	}

	// A round finishing while the menu is shown is still persisted.
	res, err := sess.SubmitPlayerMove(context.Background(), core.Rock)
	if err != nil {
		t.Fatalf("SubmitPlayerMove() failed: %v", err)
	}
	m, _ = update(t, m, RoundMsg{Result: res})
	if rounds, _ := store.RecentRounds(10); len(rounds) != 1 {
		t.Errorf("Expected 1 saved round, got %d", len(rounds))
	}

	// q quits from the menu.
	m, cmd := update(t, m, keyMsg("q"))
	if !m.quitting || cmd == nil {
		t.Error("q should quit the session")
	}
}

func TestSessionModelSavesRoundFinishedOnOtherScreen(t *testing.T) {
	sess := testSession()
	store := testStore(t)
	m := NewSessionModel(sess, store, testConfig(), nil)

	// Leave the game for the hot-seat screen.
	m, _ = update(t, m, keyMsg("enter"))
	m, _ = update(t, m, keyMsg("esc"))
	m, _ = update(t, m, keyMsg("down"))
	m, _ = update(t, m, keyMsg("enter"))
	if _, ok := m.active.(VersusModel); !ok {
		t.Fatalf("active = %T, want VersusModel", m.active)
	}

	res, err := sess.SubmitPlayerMove(context.Background(), core.Paper)
	if err != nil {
		t.Fatalf("SubmitPlayerMove() failed: %v", err)
	}
	m, _ = update(t, m, RoundMsg{Result: res})

	if _, ok := m.active.(VersusModel); !ok {
		t.Errorf("active = %T, hot-seat screen should stay open", m.active)
	}
	if rounds, _ := store.RecentRounds(10); len(rounds) != 1 {
		t.Errorf("Expected 1 saved round, got %d", len(rounds))
	}
	if entry, err := store.SessionScore(sess.ID()); err != nil || entry == nil || entry.Rounds != 1 {
		t.Errorf("SessionScore() = %+v, %v", entry, err)
	}
}

func TestSessionModelReenterWhileComputing(t *testing.T) {
	release := make(chan struct{})
	provider := predict.Func(func(ctx context.Context, _ []core.Move) (core.Move, bool, error) {
		select {
		case <-release:
		case <-ctx.Done():
		}
		return core.Rock, true, nil
	})
	sess := rps.NewSession(
		rps.WithRand(rand.New(rand.NewSource(7))),
		rps.WithDifficulty(core.DifficultyHard),
		rps.WithProvider(provider),
		rps.WithProviderTimeout(5*time.Second),
	)

	// The provider is only asked once there is enough history.
	close(release)
	for range 3 {
		if _, err := sess.SubmitPlayerMove(context.Background(), core.Rock); err != nil {
			t.Fatalf("SubmitPlayerMove() failed: %v", err)
		}
	}
	release = make(chan struct{})

	done := make(chan RoundMsg, 1)
	go func() {
		res, err := sess.SubmitPlayerMove(context.Background(), core.Scissors)
		done <- RoundMsg{Result: res, Err: err}
	}()
	deadline := time.Now().Add(2 * time.Second)
	for sess.Phase() != rps.PhaseComputing {
		if time.Now().After(deadline) {
			t.Fatal("round never started computing")
		}
		time.Sleep(time.Millisecond)
	}

	m := NewSessionModel(sess, nil, testConfig(), nil)
	m, _ = update(t, m, keyMsg("enter"))
	game, ok := m.active.(Model)
	if !ok {
		t.Fatalf("active = %T, want Model", m.active)
	}
	if !game.busy {
		t.Fatal("game screen should open busy while a round is computing")
	}

	m, cmd := update(t, m, keyMsg("r"))
	if cmd != nil {
		t.Error("move key should be ignored while busy")
	}
	if game = m.active.(Model); game.lastErr != nil {
		t.Errorf("lastErr = %v, want nil", game.lastErr)
	}

	close(release)
	m, _ = update(t, m, <-done)
	if game = m.active.(Model); game.busy || game.last == nil {
		t.Errorf("busy = %v, last = %v after the round finished", game.busy, game.last)
	}
}

func TestScoreboardTabs(t *testing.T) {
	store := testStore(t)
	store.SaveScore(storage.ScoreRecord{SessionID: "a", PlayerName: "Ana", PlayerScore: 2, Rounds: 3}) //nolint:errcheck

	m := NewScoreboardModel(store, 80, 24)
	if len(m.scores) != 1 {
		t.Fatalf("Expected 1 score loaded, got %d", len(m.scores))
	}
	if !strings.Contains(m.View(), "Ana") {
		t.Error("scores tab should list the session")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.tab != tabRounds {
		t.Errorf("tab = %v, want rounds", m.tab)
	}
	if !strings.Contains(m.View(), "Nothing recorded yet") {
		t.Error("empty rounds tab should show the empty message")
	}

	m, _ = update(t, m.Embedded(), keyMsg("esc"))
	if !m.BackToMenu() {
		t.Error("esc should go back")
	}
}
