// Package tui implements the interactive browse view: a label list that
// drives an AND/OR filter over the task list.
package tui

import (
	"context"
	"slices"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/tally/internal/app"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/filter"
	"github.com/thenoetrevino/tally/internal/models"
	labelservice "github.com/thenoetrevino/tally/internal/services/label"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
)

// Pane identifies which list has focus
type Pane int

const (
	LabelPane Pane = iota
	TaskPane
)

const storeTimeout = 5 * time.Second

// subscriber is implemented by event publishers that deliver changes in-process
type subscriber interface {
	Subscribe() (<-chan events.Event, func())
}

// Model represents the browse view state
type Model struct {
	ctx    context.Context
	app    *app.App
	keys   KeyMap
	styles Styles

	labels []*models.Label
	tasks  []*models.Task
	filter models.FilterState

	pane        Pane
	labelCursor int
	taskCursor  int

	search    textinput.Model
	searching bool
	showHelp  bool

	width  int
	height int
	status string
	err    error

	eventChan   <-chan events.Event
	unsubscribe func()
}

// InitialModel creates the browse model. Data is loaded by Init.
func InitialModel(ctx context.Context, a *app.App) Model {
	ti := textinput.New()
	ti.Placeholder = "label name"
	ti.Prompt = "/ "
	ti.CharLimit = models.MaxLabelNameLength

	m := Model{
		ctx:         ctx,
		app:         a,
		keys:        NewKeyMap(a.Config.KeyMappings),
		styles:      NewStyles(a.Config.ColorScheme),
		filter:      *models.NewFilterState(),
		search:      ti,
		unsubscribe: func() {},
	}

	if sub, ok := a.Events().(subscriber); ok {
		m.eventChan, m.unsubscribe = sub.Subscribe()
	}
	return m
}

// Init loads data and starts listening for changes
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadData(), m.waitForEvent())
}

// Close stops the event subscription
func (m Model) Close() {
	m.unsubscribe()
}

// dbContext returns a context bounded for a single store call
func (m Model) dbContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, storeTimeout)
}

func (m Model) loadData() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.dbContext()
		defer cancel()

		labels, err := m.app.LabelService.ListLabels(ctx)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		tasks, err := m.app.TaskService.ListTasks(ctx, "")
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		return dataLoadedMsg{labels: labels, tasks: tasks}
	}
}

// waitForEvent returns a command that blocks until the next bus event.
// Returns nil when no subscription exists.
func (m Model) waitForEvent() tea.Cmd {
	if m.eventChan == nil {
		return nil
	}
	ch, ctx := m.eventChan, m.ctx
	return func() tea.Msg {
		select {
		case event, ok := <-ch:
			if !ok {
				return nil
			}
			return RefreshMsg{Event: event}
		case <-ctx.Done():
			return nil
		}
	}
}

func (m Model) toggleDone(task *models.Task) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.dbContext()
		defer cancel()

		done := !task.Completed
		updated, err := m.app.TaskService.UpdateTask(ctx, taskservice.UpdateTaskRequest{
			ID:        task.ID,
			Completed: &done,
		})
		return taskToggledMsg{task: updated, err: err}
	}
}

// VisibleLabels returns the labels whose name or color matches the search,
// the same matching `tally label search` uses
func (m Model) VisibleLabels() []*models.Label {
	return labelservice.MatchLabels(m.labels, m.search.Value())
}

// VisibleTasks returns the tasks passing the current label filter
func (m Model) VisibleTasks() []*models.Task {
	return filter.Apply(m.tasks, m.filter)
}

// Filter returns the current label filter
func (m Model) Filter() models.FilterState {
	return m.filter
}

// FocusedPane returns the pane with keyboard focus
func (m Model) FocusedPane() Pane {
	return m.pane
}

func (m Model) currentLabel() *models.Label {
	labels := m.VisibleLabels()
	if m.labelCursor < 0 || m.labelCursor >= len(labels) {
		return nil
	}
	return labels[m.labelCursor]
}

func (m Model) currentTask() *models.Task {
	tasks := m.VisibleTasks()
	if m.taskCursor < 0 || m.taskCursor >= len(tasks) {
		return nil
	}
	return tasks[m.taskCursor]
}

// clampCursors keeps both cursors inside their lists
func (m *Model) clampCursors() {
	m.labelCursor = clamp(m.labelCursor, len(m.VisibleLabels()))
	m.taskCursor = clamp(m.taskCursor, len(m.VisibleTasks()))
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	return max(i, 0)
}

// dropMissingLabels removes deleted labels from the selection
func (m *Model) dropMissingLabels() {
	kept := make([]string, 0, len(m.filter.SelectedLabelIDs))
	for _, id := range m.filter.SelectedLabelIDs {
		if slices.ContainsFunc(m.labels, func(l *models.Label) bool { return l.ID == id }) {
			kept = append(kept, id)
		}
	}
	m.filter.SelectedLabelIDs = kept
}
