package tui

import (
	"strings"

	"charm.land/bubbles/v2/key"
)

// helpLine renders bindings as "key desc • key desc"
func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
