package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rps/internal/core"
	"github.com/vovakirdan/tui-rps/internal/games/rps"
)

// VersusModel is the Bubble Tea model for a hot-seat match between two
// people sharing one terminal.
type VersusModel struct {
	match      *rps.Versus
	config     core.RuntimeConfig
	keys       GameKeyMap
	help       help.Model
	last       *rps.VersusResult
	embedded   bool
	quitting   bool
	backToMenu bool
}

// NewVersusModel creates a hot-seat model.
func NewVersusModel(match *rps.Versus, cfg core.RuntimeConfig) VersusModel {
	h := help.New()
	h.Width = cfg.ScreenW

	return VersusModel{
		match:  match,
		config: cfg,
		keys:   versusKeys(),
		help:   h,
	}
}

// Embedded makes the back key hand control to a parent model.
func (m VersusModel) Embedded() VersusModel {
	m.embedded = true
	return m
}

// Init initializes the model.
func (m VersusModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the hot-seat match.
func (m VersusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m VersusModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Reset):
		m.match.Reset()
		m.last = nil
		return m, nil
	}

	move, ok := m.keys.MoveForKey(msg)
	if !ok {
		return m, nil
	}

	if !m.match.AwaitingSecond() {
		// MoveForKey only yields valid moves and no choice is pending.
		m.match.ChooseFirst(move) //nolint:errcheck
		m.last = nil
		return m, nil
	}

	res, err := m.match.ChooseSecond(move)
	if err != nil {
		return m, nil
	}
	m.last = &res
	return m, nil
}

// View renders the hot-seat screen.
func (m VersusModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	var b strings.Builder
	width := m.config.ScreenW
	p1, p2 := m.match.Names()
	tally := m.match.Tally()

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("H O T   S E A T", width)))
	b.WriteString("\n")

	board := fmt.Sprintf("%s  %d : %d  %s    Ties %d", p1, tally.P1, tally.P2, p2, tally.Ties)
	b.WriteString(centerText(panelStyle.Render(board), width))
	b.WriteString("\n\n")

	var prompt string
	if m.match.AwaitingSecond() {
		prompt = fmt.Sprintf("%s has chosen. %s, your move!", p1, p2)
	} else {
		prompt = fmt.Sprintf("%s, choose your move (%s, look away).", p1, p2)
	}

	lines := []string{}
	if m.last != nil {
		res := m.last
		lines = append(lines,
			fmt.Sprintf("%s: %s %s    %s: %s %s", p1, res.P1Move.Symbol(), res.P1Move, p2, res.P2Move.Symbol(), res.P2Move),
			renderOutcome(res.Outcome, res.Message()),
			"",
		)
	}
	lines = append(lines, selectedStyle.Render(prompt))

	b.WriteString(centerText(lipgloss.JoinVertical(lipgloss.Center, lines...), width))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsQuitting returns true if user requested to quit entirely.
func (m VersusModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m VersusModel) BackToMenu() bool {
	return m.backToMenu
}

// RunVersus starts a hot-seat match.
func RunVersus(match *rps.Versus, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewVersusModel(match, cfg),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
