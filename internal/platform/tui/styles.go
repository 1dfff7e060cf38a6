// Package tui provides the Bubble Tea integration for the game.
// It handles the terminal UI loop, key bindings, persistence hooks and
// the SSH front end.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rps/internal/core"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			MarginBottom(1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))
)

// outcomeStyles colours a round result from the first player's point of view.
var outcomeStyles = map[core.Outcome]lipgloss.Style{
	core.Tie:          lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	core.PlayerWins:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	core.ComputerWins: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
}

// difficultyStyles maps difficulties to badge colours.
var difficultyStyles = map[core.Difficulty]lipgloss.Style{
	core.DifficultyEasy:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.DifficultyMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.DifficultyHard:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

func renderDifficulty(d core.Difficulty) string {
	style, ok := difficultyStyles[d]
	if !ok {
		style = lipgloss.NewStyle()
	}
	return style.Render(strings.ToUpper(d.String()))
}

func renderOutcome(o core.Outcome, text string) string {
	style, ok := outcomeStyles[o]
	if !ok {
		style = lipgloss.NewStyle()
	}
	return style.Render(text)
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
