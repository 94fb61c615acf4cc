package config

// KeyMappings defines the browse view key bindings
type KeyMappings struct {
	// Navigation
	PrevLabel string `yaml:"prev_label"`
	NextLabel string `yaml:"next_label"`

	// Filtering
	ToggleLabel    string `yaml:"toggle_label"`
	ToggleOperator string `yaml:"toggle_operator"`
	ClearFilter    string `yaml:"clear_filter"`
	Search         string `yaml:"search"`
	SwitchPane     string `yaml:"switch_pane"`
	ToggleDone     string `yaml:"toggle_done"`

	// Other
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		PrevLabel:      "k",
		NextLabel:      "j",
		ToggleLabel:    "space",
		ToggleOperator: "o",
		ClearFilter:    "c",
		Search:         "/",
		SwitchPane:     "tab",
		ToggleDone:     "x",
		ShowHelp:       "?",
		Quit:           "q",
	}
}

// applyDefaults fills in any missing key mappings with defaults
func (km *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	if km.PrevLabel == "" {
		km.PrevLabel = defaults.PrevLabel
	}
	if km.NextLabel == "" {
		km.NextLabel = defaults.NextLabel
	}
	if km.ToggleLabel == "" {
		km.ToggleLabel = defaults.ToggleLabel
	}
	if km.ToggleOperator == "" {
		km.ToggleOperator = defaults.ToggleOperator
	}
	if km.ClearFilter == "" {
		km.ClearFilter = defaults.ClearFilter
	}
	if km.Search == "" {
		km.Search = defaults.Search
	}
	if km.SwitchPane == "" {
		km.SwitchPane = defaults.SwitchPane
	}
	if km.ToggleDone == "" {
		km.ToggleDone = defaults.ToggleDone
	}
	if km.ShowHelp == "" {
		km.ShowHelp = defaults.ShowHelp
	}
	if km.Quit == "" {
		km.Quit = defaults.Quit
	}
}
