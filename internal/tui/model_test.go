package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tally/internal/app"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/models"
	labelservice "github.com/thenoetrevino/tally/internal/services/label"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
	"github.com/thenoetrevino/tally/internal/storage"
)

type fixture struct {
	app    *app.App
	labels map[string]string // name -> id
}

// newFixture builds the A/B scenario: one:[A,B] two:[B] three:[]
func newFixture(t *testing.T, opts ...app.Option) *fixture {
	t.Helper()
	ctx := context.Background()
	a := app.New(storage.NewMemoryStore(), opts...)
	t.Cleanup(func() { _ = a.Close() })

	f := &fixture{app: a, labels: map[string]string{}}
	for _, name := range []string{"A", "B"} {
		l, err := a.LabelService.CreateLabel(ctx, labelservice.CreateLabelRequest{Name: name, Color: "#888"})
		require.NoError(t, err)
		f.labels[name] = l.ID
	}
	for _, tc := range []struct {
		title  string
		labels []string
	}{
		{"one", []string{f.labels["A"], f.labels["B"]}},
		{"two", []string{f.labels["B"]}},
		{"three", nil},
	} {
		_, err := a.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{Title: tc.title, LabelIDs: tc.labels})
		require.NoError(t, err)
	}
	return f
}

// loaded returns a model with its initial data applied
func (f *fixture) loaded(t *testing.T) Model {
	t.Helper()
	m := InitialModel(context.Background(), f.app)
	t.Cleanup(m.Close)
	return update(t, m, m.loadData()())
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, keyMsg(k))
	}
	return m
}

func keyMsg(k string) tea.KeyPressMsg {
	switch k {
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	}
	r := []rune(k)[0]
	return tea.KeyPressMsg{Code: r, Text: k}
}

func titles(tasks []*models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestBrowse_NoSelectionShowsEverything(t *testing.T) {
	m := newFixture(t).loaded(t)

	assert.Len(t, m.VisibleLabels(), 2)
	assert.Equal(t, []string{"one", "two", "three"}, titles(m.VisibleTasks()))
	assert.False(t, filterActive(m))
}

func TestBrowse_ToggleLabelsAndOperator(t *testing.T) {
	f := newFixture(t)
	m := f.loaded(t)

	// labels are sorted by name: A then B
	m = press(t, m, "space")
	assert.Equal(t, []string{f.labels["A"]}, m.Filter().SelectedLabelIDs)
	assert.Equal(t, []string{"one"}, titles(m.VisibleTasks()))

	m = press(t, m, "j", "space")
	assert.Equal(t, models.OperatorOr, m.Filter().Operator)
	assert.Equal(t, []string{"one", "two"}, titles(m.VisibleTasks()))

	m = press(t, m, "o")
	assert.Equal(t, models.OperatorAnd, m.Filter().Operator)
	assert.Equal(t, []string{"one"}, titles(m.VisibleTasks()))

	// toggling B off again leaves A under AND
	m = press(t, m, "space")
	assert.Equal(t, []string{f.labels["A"]}, m.Filter().SelectedLabelIDs)

	m = press(t, m, "c")
	assert.False(t, filterActive(m))
	assert.Equal(t, models.OperatorAnd, m.Filter().Operator)
	assert.Len(t, m.VisibleTasks(), 3)
}

func TestBrowse_CursorStaysInBounds(t *testing.T) {
	m := newFixture(t).loaded(t)

	m = press(t, m, "k", "k")
	assert.Equal(t, 0, m.labelCursor)
	m = press(t, m, "j", "j", "j")
	assert.Equal(t, 1, m.labelCursor)

	m = press(t, m, "tab")
	assert.Equal(t, TaskPane, m.FocusedPane())
	m = press(t, m, "j", "j", "j", "j")
	assert.Equal(t, 2, m.taskCursor)

	// space in the task pane does not touch the filter
	m = press(t, m, "space")
	assert.False(t, filterActive(m))
}

func TestBrowse_SearchNarrowsLabels(t *testing.T) {
	m := newFixture(t).loaded(t)

	m = press(t, m, "/", "b")
	assert.True(t, m.searching)
	require.Len(t, m.VisibleLabels(), 1)
	assert.Equal(t, "B", m.VisibleLabels()[0].Name)

	// keys are text while searching
	assert.False(t, filterActive(m))

	m = press(t, m, "enter", "space")
	assert.False(t, m.searching)
	assert.Equal(t, []string{"one", "two"}, titles(m.VisibleTasks()))

	m = press(t, m, "/", "esc")
	assert.Len(t, m.VisibleLabels(), 2)
}

func TestBrowse_SearchMatchesColorLikeLabelSearch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.app.LabelService.CreateLabel(ctx, labelservice.CreateLabelRequest{Name: "urgent", Color: "#FF0000"})
	require.NoError(t, err)
	m := f.loaded(t)

	m = press(t, m, "/", "#", "f", "f")
	visible := m.VisibleLabels()
	require.Len(t, visible, 1)
	assert.Equal(t, "urgent", visible[0].Name)

	fromService, err := f.app.LabelService.SearchLabels(ctx, "#ff")
	require.NoError(t, err)
	assert.Equal(t, fromService, visible)
}

func TestBrowse_ToggleDone(t *testing.T) {
	f := newFixture(t)
	m := f.loaded(t)

	m = press(t, m, "tab", "j")
	_, cmd := m.Update(keyMsg("x"))
	require.NotNil(t, cmd)

	msg, ok := cmd().(taskToggledMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.Equal(t, "two", msg.task.Title)
	assert.True(t, msg.task.Completed)

	stored, err := f.app.TaskService.GetTask(context.Background(), msg.task.ID)
	require.NoError(t, err)
	assert.True(t, stored.Completed)
}

func TestBrowse_DeletedLabelLeavesSelection(t *testing.T) {
	f := newFixture(t)
	m := press(t, f.loaded(t), "space")
	require.True(t, filterActive(m))

	require.NoError(t, f.app.LabelService.DeleteLabel(context.Background(), f.labels["A"]))
	m = update(t, m, m.loadData()())

	assert.False(t, filterActive(m))
	assert.Len(t, m.VisibleLabels(), 1)
	assert.Len(t, m.VisibleTasks(), 3)
}

func TestBrowse_RefreshesOnBusEvent(t *testing.T) {
	bus := events.NewBus(10 * time.Millisecond)
	t.Cleanup(func() { _ = bus.Close() })
	f := newFixture(t, app.WithEventPublisher(bus))
	m := f.loaded(t)
	require.NotNil(t, m.eventChan)

	_, err := f.app.TaskService.CreateTask(context.Background(), taskservice.CreateTaskRequest{Title: "four"})
	require.NoError(t, err)

	msg, ok := m.waitForEvent()().(RefreshMsg)
	require.True(t, ok)

	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	m = update(t, m, m.loadData()())
	assert.Len(t, m.VisibleTasks(), 4)
}

func TestBrowse_View(t *testing.T) {
	m := newFixture(t).loaded(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = press(t, m, "space")

	view := m.View()
	assert.True(t, view.AltScreen)
	content := ansi.Strip(view.Content)
	assert.Contains(t, content, "Labels")
	assert.Contains(t, content, "Tasks (1/3)")
	assert.Contains(t, content, "[x]")
	assert.True(t, strings.Contains(content, "OR"))
}

func TestBrowse_QuitKey(t *testing.T) {
	m := newFixture(t).loaded(t)
	_, cmd := m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// filterActive copies the filter so its pointer-receiver method is callable
func filterActive(m Model) bool {
	f := m.Filter()
	return f.IsActive()
}
