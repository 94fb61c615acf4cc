package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tally/internal/apperrors"
	"github.com/thenoetrevino/tally/internal/cli/styles"
	"github.com/thenoetrevino/tally/internal/filter"
	"github.com/thenoetrevino/tally/internal/models"
)

const labelPaneWidth = 32

// View renders the browse view
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.Content = m.render()
	return view
}

func (m Model) render() string {
	if m.err != nil {
		return m.styles.ErrorStatus.Render("Error: "+apperrors.UserMessage(m.err)) +
			"\n\n" + m.styles.Subtle.Render("press "+m.keys.Quit.Help().Key+" to quit")
	}

	header := m.styles.Title.Render("tally") + "  " + m.renderFilterStatus()

	labelPane := m.renderLabelPane()
	taskPane := m.renderTaskPane()
	body := lipgloss.JoinHorizontal(lipgloss.Top, labelPane, " ", taskPane)

	parts := []string{header, body}
	if m.searching || m.search.Value() != "" {
		parts = append(parts, m.search.View())
	}
	if m.status != "" {
		parts = append(parts, m.styles.ErrorStatus.Render(m.status))
	}
	parts = append(parts, m.renderHelp())

	return strings.Join(parts, "\n")
}

// renderFilterStatus describes the active filter by label name
func (m Model) renderFilterStatus() string {
	if !m.filter.IsActive() {
		return m.styles.Subtle.Render("no filter")
	}

	idx := make(map[string]*models.Label, len(m.labels))
	for _, l := range m.labels {
		idx[l.ID] = l
	}
	return fmt.Sprintf("%s %s",
		m.styles.PaneHeader.Render(string(m.filter.Operator)),
		styles.RenderLabelChips(m.filter.SelectedLabelIDs, idx))
}

func (m Model) paneStyle(p Pane) lipgloss.Style {
	if m.pane == p {
		return m.styles.ActivePane
	}
	return m.styles.Pane
}

func (m Model) renderLabelPane() string {
	var b strings.Builder
	b.WriteString(m.styles.PaneHeader.Render("Labels"))

	labels := m.VisibleLabels()
	if len(labels) == 0 {
		b.WriteString("\n" + m.styles.Subtle.Render("no labels"))
	}

	counts := filter.CountByLabel(m.tasks)
	for i, l := range labels {
		cursor := "  "
		if i == m.labelCursor && m.pane == LabelPane {
			cursor = m.styles.Cursor.Render("> ")
		}
		check := "[ ]"
		if m.filter.IsSelected(l.ID) {
			check = "[x]"
		}
		line := fmt.Sprintf("%s%s %s %s", cursor, check, styles.RenderLabelChip(l),
			m.styles.Subtle.Render(fmt.Sprintf("%d", counts[l.ID])))
		b.WriteString("\n" + line)
	}

	return m.paneStyle(LabelPane).Width(labelPaneWidth).Render(b.String())
}

func (m Model) renderTaskPane() string {
	var b strings.Builder
	tasks := m.VisibleTasks()
	b.WriteString(m.styles.PaneHeader.Render(fmt.Sprintf("Tasks (%d/%d)", len(tasks), len(m.tasks))))

	if len(tasks) == 0 {
		b.WriteString("\n" + m.styles.Subtle.Render("no tasks match"))
	}

	idx := make(map[string]*models.Label, len(m.labels))
	for _, l := range m.labels {
		idx[l.ID] = l
	}
	for i, t := range tasks {
		line := styles.RenderTaskLine(t, idx)
		if i == m.taskCursor && m.pane == TaskPane {
			line = m.styles.Cursor.Render("> ") + m.styles.Selected.Render(line)
		} else {
			line = "  " + line
		}
		b.WriteString("\n" + line)
	}

	style := m.paneStyle(TaskPane)
	if m.width > labelPaneWidth+4 {
		style = style.Width(m.width - labelPaneWidth - 4)
	}
	return style.Render(b.String())
}

func (m Model) renderHelp() string {
	if !m.showHelp {
		return m.styles.Subtle.Render(helpLine(m.keys.ShortHelp()))
	}
	lines := make([]string, 0, 3)
	for _, group := range m.keys.FullHelp() {
		lines = append(lines, helpLine(group))
	}
	return m.styles.Subtle.Render(strings.Join(lines, "\n"))
}
