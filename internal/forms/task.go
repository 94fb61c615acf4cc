package forms

import (
	"errors"
	"strings"

	"charm.land/huh/v2"
	"github.com/thenoetrevino/tally/internal/models"
)

// TaskKindOptions returns every task kind as select options
func TaskKindOptions() []huh.Option[models.TaskKind] {
	opts := make([]huh.Option[models.TaskKind], 0, len(models.TaskKinds))
	for _, k := range models.TaskKinds {
		opts = append(opts, huh.NewOption(string(k), k))
	}
	return opts
}

// LabelOptions offers existing labels for multi-select, keyed by id
func LabelOptions(labels []*models.Label) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(labels))
	for _, l := range labels {
		opts = append(opts, huh.NewOption(l.Name, l.ID))
	}
	return opts
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("title cannot be empty")
	}
	return nil
}

// CreateTaskForm creates a huh form for adding a task.
// The label picker is only shown when labels exist.
func CreateTaskForm(
	title *string,
	kind *models.TaskKind,
	notes *string,
	labelIDs *[]string,
	labels []*models.Label,
) *huh.Form {
	if *kind == "" {
		*kind = models.DefaultTaskKind
	}

	fields := []huh.Field{
		huh.NewInput().
			Key("title").
			Title("Title").
			Placeholder("What needs doing?").
			CharLimit(models.MaxTaskTitleLength).
			Validate(validateTitle).
			Value(title),

		huh.NewSelect[models.TaskKind]().
			Key("kind").
			Title("Kind").
			Options(TaskKindOptions()...).
			Value(kind),

		huh.NewText().
			Key("notes").
			Title("Notes (markdown, optional)").
			Placeholder("Add notes...").
			Lines(4).
			Value(notes),
	}

	if len(labels) > 0 {
		fields = append(fields, huh.NewMultiSelect[string]().
			Key("labels").
			Title("Labels").
			Options(LabelOptions(labels)...).
			Limit(models.MaxLabelsPerTask).
			Value(labelIDs))
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	return form.WithKeyMap(CreateKeyMapWithShiftEnter())
}
