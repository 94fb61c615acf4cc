package tui

import (
	"log/slog"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/tally/internal/apperrors"
)

// Update handles all messages and updates the model accordingly
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dataLoadedMsg:
		if msg.err != nil {
			slog.Error("failed to load data", "error", msg.err)
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.labels = msg.labels
		m.tasks = msg.tasks
		m.dropMissingLabels()
		m.clampCursors()
		return m, nil

	case RefreshMsg:
		slog.Debug("data changed", "type", msg.Event.Type)
		return m, tea.Batch(m.loadData(), m.waitForEvent())

	case taskToggledMsg:
		if msg.err != nil {
			m.status = apperrors.UserMessage(msg.err)
			return m, nil
		}
		m.status = ""
		// Without a bus subscription nothing else triggers a reload
		if m.eventChan == nil {
			return m, m.loadData()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if m.searching {
			return m.handleSearchKey(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.ShowHelp):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.keys.SwitchPane):
		if m.pane == LabelPane {
			m.pane = TaskPane
		} else {
			m.pane = LabelPane
		}

	case key.Matches(msg, m.keys.Up):
		if m.pane == LabelPane {
			m.labelCursor--
		} else {
			m.taskCursor--
		}
		m.clampCursors()

	case key.Matches(msg, m.keys.Down):
		if m.pane == LabelPane {
			m.labelCursor++
		} else {
			m.taskCursor++
		}
		m.clampCursors()

	case key.Matches(msg, m.keys.ToggleLabel):
		if l := m.currentLabel(); l != nil && m.pane == LabelPane {
			m.filter.Toggle(l.ID)
			m.taskCursor = 0
			m.clampCursors()
		}

	case key.Matches(msg, m.keys.ToggleOperator):
		m.filter.Operator = m.filter.Operator.Toggle()
		m.clampCursors()

	case key.Matches(msg, m.keys.ClearFilter):
		m.filter.Clear()
		m.clampCursors()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.pane = LabelPane
		cmd := m.search.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.ToggleDone):
		if t := m.currentTask(); t != nil && m.pane == TaskPane {
			return m, m.toggleDone(t)
		}
	}

	return m, nil
}

// handleSearchKey edits the label search. Enter keeps the query, esc drops it.
func (m Model) handleSearchKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.Reset()
		m.clampCursors()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.labelCursor = 0
	m.clampCursors()
	return m, cmd
}
