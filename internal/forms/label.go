// Package forms holds the interactive huh forms used by --interactive commands
package forms

import (
	"charm.land/huh/v2"
	"github.com/thenoetrevino/tally/internal/models"
	labelservice "github.com/thenoetrevino/tally/internal/services/label"
)

// LabelColor is one entry of the label color palette
type LabelColor struct {
	Name string
	Hex  string
}

// LabelPalette is the color choice offered by the label form
var LabelPalette = []LabelColor{
	{"Purple", models.DefaultLabelColor},
	{"Blue", "#3B82F6"},
	{"Green", "#22C55E"},
	{"Yellow", "#EAB308"},
	{"Orange", "#F97316"},
	{"Red", "#EF4444"},
	{"Pink", "#EC4899"},
	{"Cyan", "#06B6D4"},
	{"Gray", "#6B7280"},
}

// LabelColorOptions returns the palette as select options keyed by hex value
func LabelColorOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(LabelPalette))
	for _, c := range LabelPalette {
		opts = append(opts, huh.NewOption(c.Name, c.Hex))
	}
	return opts
}

// validateLabelName runs the label store's name rules inside the form
func validateLabelName(name string) error {
	return labelservice.ValidateName(name).Err()
}

// CreateLabelForm creates a huh form for adding/editing a label
func CreateLabelForm(name *string, color *string) *huh.Form {
	if *color == "" {
		*color = models.DefaultLabelColor
	}

	fields := []huh.Field{
		huh.NewInput().
			Key("name").
			Title("Label Name").
			Placeholder("Enter label name...").
			CharLimit(models.MaxLabelNameLength).
			Validate(validateLabelName).
			Value(name),

		huh.NewSelect[string]().
			Key("color").
			Title("Color").
			Options(LabelColorOptions()...).
			Value(color),
	}

	return huh.NewForm(huh.NewGroup(fields...))
}
