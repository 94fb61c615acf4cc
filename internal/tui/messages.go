package tui

import (
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/models"
)

// dataLoadedMsg carries a fresh snapshot of labels and tasks
type dataLoadedMsg struct {
	labels []*models.Label
	tasks  []*models.Task
	err    error
}

// RefreshMsg is sent when the event bus reports a data change
type RefreshMsg struct {
	Event events.Event
}

// taskToggledMsg reports the result of flipping a task's completion
type taskToggledMsg struct {
	task *models.Task
	err  error
}
