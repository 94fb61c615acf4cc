package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/thenoetrevino/tally/internal/config"
)

// KeyMap holds the browse view bindings
type KeyMap struct {
	Up             key.Binding
	Down           key.Binding
	ToggleLabel    key.Binding
	ToggleOperator key.Binding
	ClearFilter    key.Binding
	Search         key.Binding
	SwitchPane     key.Binding
	ToggleDone     key.Binding
	ShowHelp       key.Binding
	Quit           key.Binding
}

// NewKeyMap builds bindings from the configured key mappings.
// Arrow keys always work alongside the configured movement keys.
func NewKeyMap(km config.KeyMappings) KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys(km.PrevLabel, "up"),
			key.WithHelp(km.PrevLabel+"/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(km.NextLabel, "down"),
			key.WithHelp(km.NextLabel+"/↓", "down"),
		),
		ToggleLabel: key.NewBinding(
			key.WithKeys(km.ToggleLabel),
			key.WithHelp(km.ToggleLabel, "toggle label"),
		),
		ToggleOperator: key.NewBinding(
			key.WithKeys(km.ToggleOperator),
			key.WithHelp(km.ToggleOperator, "AND/OR"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys(km.ClearFilter),
			key.WithHelp(km.ClearFilter, "clear filter"),
		),
		Search: key.NewBinding(
			key.WithKeys(km.Search),
			key.WithHelp(km.Search, "search labels"),
		),
		SwitchPane: key.NewBinding(
			key.WithKeys(km.SwitchPane),
			key.WithHelp(km.SwitchPane, "switch pane"),
		),
		ToggleDone: key.NewBinding(
			key.WithKeys(km.ToggleDone),
			key.WithHelp(km.ToggleDone, "done/undone"),
		),
		ShowHelp: key.NewBinding(
			key.WithKeys(km.ShowHelp),
			key.WithHelp(km.ShowHelp, "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys(km.Quit, "ctrl+c"),
			key.WithHelp(km.Quit, "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleLabel, k.ToggleOperator, k.Search, k.SwitchPane, k.ShowHelp, k.Quit}
}

// FullHelp returns every binding, grouped by column
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.SwitchPane},
		{k.ToggleLabel, k.ToggleOperator, k.ClearFilter, k.Search},
		{k.ToggleDone, k.ShowHelp, k.Quit},
	}
}
