// Package label holds all cli commands related to labels
// e.g., tally label ...
package label

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli/styles"
	"github.com/thenoetrevino/tally/internal/models"
)

// LabelCmd returns the label parent command
func LabelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "label",
		Short: "Manage labels",
		Long:  "Create, list, update, delete and search the labels used to tag tasks.",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(SearchCmd())
	cmd.AddCommand(ExistsCmd())

	return cmd
}

// labelResult is the output of commands that return a single label
type labelResult struct {
	*models.Label
	Action string `json:"-"`
}

// Render implements cli.Renderer
func (r *labelResult) Render() string {
	return fmt.Sprintf("%s Label %s %s (ID: %s)\n  Color: %s",
		styles.SuccessStyle.Render("✓"),
		styles.RenderLabelChip(r.Label),
		r.Action,
		r.ID,
		r.Color)
}

// labelRow is one entry of a label listing
type labelRow struct {
	*models.Label
	TaskCount int `json:"taskCount"`
}

// labelListResult is the output of list and search
type labelListResult struct {
	Labels []labelRow `json:"labels"`
	Total  int        `json:"total"`
	empty  string
}

// GetIDs implements quiet mode output
func (r *labelListResult) GetIDs() []string {
	ids := make([]string, 0, len(r.Labels))
	for _, row := range r.Labels {
		ids = append(ids, row.ID)
	}
	return ids
}

// Render implements cli.Renderer
func (r *labelListResult) Render() string {
	if len(r.Labels) == 0 {
		return r.empty
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Labels (%d)", r.Total)))
	for _, row := range r.Labels {
		b.WriteString("\n  ")
		b.WriteString(styles.RenderLabelChip(row.Label))
		b.WriteString(" ")
		b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("%s  %s  %d task(s)", row.Color, row.ID, row.TaskCount)))
	}
	return b.String()
}

func newListResult(labels []*models.Label, counts map[string]int, empty string) *labelListResult {
	rows := make([]labelRow, 0, len(labels))
	for _, l := range labels {
		rows = append(rows, labelRow{Label: l, TaskCount: counts[l.ID]})
	}
	return &labelListResult{Labels: rows, Total: len(rows), empty: empty}
}
