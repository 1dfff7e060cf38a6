package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/games/rps"
)

// RoundMsg carries the result of a round played off the UI goroutine.
type RoundMsg struct {
	Result rps.RoundResult
	Err    error
}

// playRoundCmd submits a move in the background so the UI stays responsive
// while a remote prediction is in flight.
func playRoundCmd(ctx context.Context, sess *rps.Session, move core.Move) tea.Cmd {
	return func() tea.Msg {
		res, err := sess.SubmitPlayerMove(ctx, move)
		return RoundMsg{Result: res, Err: err}
	}
}
