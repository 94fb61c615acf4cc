package styles

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tally/internal/config"
	"github.com/thenoetrevino/tally/internal/models"
	labelservice "github.com/thenoetrevino/tally/internal/services/label"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Kind:", "Labels:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Notes"

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style
	DoneStyle    lipgloss.Style
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Accent)).
		Bold(true).
		MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Create))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg))

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.WarningFg))

	DoneStyle = lipgloss.NewStyle().
		Strikethrough(true).
		Foreground(lipgloss.Color(colors.Subtle))
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// RenderLabelChip renders a label name on its own color, with black or
// white text picked for contrast
func RenderLabelChip(label *models.Label) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(label.Color)).
		Foreground(lipgloss.Color(labelservice.ContrastText(label.Color))).
		Bold(true).
		Padding(0, 1).
		Render(label.Name)
}

// RenderLabelChips renders the labels referenced by ids, in order.
// Ids with no matching label are shown dimmed.
func RenderLabelChips(ids []string, labelsByID map[string]*models.Label) string {
	chips := make([]string, 0, len(ids))
	for _, id := range ids {
		if l, ok := labelsByID[id]; ok {
			chips = append(chips, RenderLabelChip(l))
			continue
		}
		chips = append(chips, SubtitleStyle.Render("?"+shortID(id)))
	}
	return strings.Join(chips, " ")
}

// RenderTaskLine renders a one-line task summary for lists
func RenderTaskLine(task *models.Task, labelsByID map[string]*models.Label) string {
	check := "[ ]"
	title := ValueStyle.Render(task.Title)
	if task.Completed {
		check = "[x]"
		title = DoneStyle.Render(task.Title)
	}

	line := fmt.Sprintf("%s %s %s %s",
		SubtitleStyle.Render(shortID(task.ID)),
		check,
		title,
		SubtitleStyle.Render("("+string(task.Kind)+")"))
	if chips := RenderLabelChips(task.LabelIDs, labelsByID); chips != "" {
		line += "  " + chips
	}
	return line
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}

// shortID keeps the tail of long ids, which is the random part of a ULID
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}
