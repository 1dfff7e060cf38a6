package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/games/rps"
	"github.com/vovakirdan/tui-rps/internal/storage"
)

// Model is the Bubble Tea model for a game against the computer.
type Model struct {
	session *rps.Session
	store   *storage.Store
	logger  *log.Logger
	config  core.RuntimeConfig
	keys    GameKeyMap
	help    help.Model
	spinner spinner.Model

	busy        bool             // A round is computing; move keys are ignored
	confirming  *core.Difficulty // Pending difficulty change awaiting y/n
	last        *rps.RoundResult
	lastErr     error
	embedded    bool // Back returns to the caller instead of quitting
	quitting    bool
	backToMenu  bool
	storeFailed bool // Only the first storage failure is shown
}

// NewModel creates a new Bubble Tea model playing the given session.
// store and logger may be nil.
func NewModel(sess *rps.Session, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := spinner.New(spinner.WithSpinner(spinner.Dot))
	s.Style = selectedStyle

	h := help.New()
	h.Width = cfg.ScreenW

	// A round started from an earlier screen may still be running.
	phase := sess.Phase()

	return Model{
		session: sess,
		store:   store,
		logger:  logger,
		config:  cfg,
		keys:    DefaultGameKeyMap(),
		help:    h,
		spinner: s,
		busy:    phase == rps.PhaseComputing || phase == rps.PhaseEvaluating,
	}
}

// Embedded makes the back key hand control to a parent model.
func (m Model) Embedded() Model {
	m.embedded = true
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	if m.busy {
		return m.spinner.Tick
	}
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case RoundMsg:
		return m.handleRound(msg)

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.confirming != nil {
		return m.handleConfirm(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Difficulty):
		next := m.session.Difficulty().Next()
		if m.session.Rounds() == 0 {
			m.session.SetDifficulty(next)
			m.logger.Info("difficulty changed", "difficulty", next)
			return m, nil
		}
		m.confirming = &next
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.resetSession()
		return m, nil
	}

	move, ok := m.keys.MoveForKey(msg)
	if !ok || m.busy {
		return m, nil
	}

	m.busy = true
	m.lastErr = nil
	return m, tea.Batch(
		playRoundCmd(context.Background(), m.session, move),
		m.spinner.Tick,
	)
}

// handleConfirm answers the "reset scores for new difficulty?" prompt.
// The difficulty changes either way.
func (m Model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next := *m.confirming

	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.session.SetDifficulty(next)
		m.resetSession()
	case key.Matches(msg, m.keys.Cancel):
		m.session.SetDifficulty(next)
	default:
		return m, nil
	}

	m.confirming = nil
	m.logger.Info("difficulty changed", "difficulty", next)
	return m, nil
}

func (m *Model) resetSession() {
	m.session.ResetSession()
	m.last = nil
	m.lastErr = nil
	m.logger.Info("session reset", "session", m.session.ID())
}

// handleRound records a finished round.
func (m Model) handleRound(msg RoundMsg) (tea.Model, tea.Cmd) {
	m.busy = false

	if errors.Is(msg.Err, rps.ErrSessionReset) {
		return m, nil
	}
	if msg.Err != nil {
		m.lastErr = msg.Err
		m.logger.Error("round failed", "error", msg.Err)
		return m, nil
	}

	res := msg.Result
	m.last = &res

	if m.store != nil {
		if err := saveRound(m.store, res); err != nil {
			if !m.storeFailed {
				m.lastErr = err
			}
			m.storeFailed = true
			m.logger.Warn("could not save round", "error", err)
		}
	}

	return m, nil
}

// saveRound persists the round and refreshes the session's scoreboard entry.
func saveRound(store *storage.Store, res rps.RoundResult) error {
	if _, err := store.SaveRound(storage.RoundFromResult(res)); err != nil {
		return err
	}
	_, err := store.SaveScore(storage.ScoreRecord{
		SessionID:     res.SessionID,
		PlayerName:    res.PlayerName,
		Difficulty:    res.Difficulty,
		PlayerScore:   res.Scores.Player,
		ComputerScore: res.Scores.Computer,
		Rounds:        res.Round,
	})
	return err
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	var b strings.Builder
	width := m.config.ScreenW

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("R O C K   P A P E R   S C I S S O R S", width)))
	b.WriteString("\n")

	name := m.session.PlayerName()
	scores := m.session.Scores()
	status := fmt.Sprintf("%s   Difficulty: %s   Round %d",
		name, renderDifficulty(m.session.Difficulty()), m.session.Rounds())
	b.WriteString(centerText(status, width))
	b.WriteString("\n\n")

	board := fmt.Sprintf("%s  %d : %d  Computer", name, scores.Player, scores.Computer)
	b.WriteString(centerText(panelStyle.Render(board), width))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderRound(), width))
	b.WriteString("\n\n")

	analysis := m.session.Analyze()
	b.WriteString(centerText(mutedStyle.Render(lipgloss.NewStyle().Width(min(60, width)).Render(analysis.Summary())), width))
	b.WriteString("\n\n")

	if m.lastErr != nil {
		b.WriteString(centerText(warnStyle.Render("! "+m.lastErr.Error()), width))
		b.WriteString("\n")
	}

	if m.confirming != nil {
		prompt := fmt.Sprintf("Reset scores for %s difficulty? (y/n)", *m.confirming)
		b.WriteString(centerText(selectedStyle.Render(prompt), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m Model) renderRound() string {
	if m.busy {
		return m.spinner.View() + " Computer is thinking..."
	}
	if m.last == nil {
		return "Choose rock, paper or scissors."
	}

	res := m.last
	moves := fmt.Sprintf("You: %s %s    Computer: %s %s",
		res.PlayerMove.Symbol(), res.PlayerMove,
		res.ComputerMove.Symbol(), res.ComputerMove)

	var verdict string
	switch res.Outcome {
	case core.PlayerWins:
		verdict = "You win!"
	case core.ComputerWins:
		verdict = "Computer wins!"
	default:
		verdict = "It's a tie!"
	}

	lines := []string{moves, renderOutcome(res.Outcome, verdict)}
	if res.Predicted {
		lines = append(lines, mutedStyle.Render(
			fmt.Sprintf("Computer expected %s (%s)", res.Prediction, res.Strategy)))
	}
	if res.Degraded {
		lines = append(lines, warnStyle.Render("Prediction service unavailable, using local heuristics"))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given session.
func Run(sess *rps.Session, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(sess, store, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
