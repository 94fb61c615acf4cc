package tui

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tally/internal/config"
)

// Styles holds the browse view styles for one color scheme
type Styles struct {
	Title       lipgloss.Style
	Pane        lipgloss.Style
	ActivePane  lipgloss.Style
	PaneHeader  lipgloss.Style
	Cursor      lipgloss.Style
	Selected    lipgloss.Style
	Subtle      lipgloss.Style
	Status      lipgloss.Style
	ErrorStatus lipgloss.Style
}

// NewStyles builds the browse view styles from a color scheme
func NewStyles(colors config.ColorScheme) Styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Subtle)).
		Padding(0, 1)

	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.Title)),
		Pane:       pane,
		ActivePane: pane.BorderForeground(lipgloss.Color(colors.Accent)),
		PaneHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.Accent)),
		Cursor: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.Accent)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(colors.SelectedBg)),
		Subtle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors.Subtle)),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(colors.InfoFg)),
		ErrorStatus: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colors.ErrorFg)),
	}
}
