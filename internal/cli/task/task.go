// Package task holds all cli commands related to tasks
// e.g., tally task ...
package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/app"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/styles"
	"github.com/thenoetrevino/tally/internal/models"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks and their labels",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(LabelsCmd())
	cmd.AddCommand(AttachCmd())
	cmd.AddCommand(DetachCmd())
	cmd.AddCommand(FilterCmd())
	cmd.AddCommand(PruneCmd())

	return cmd
}

// labelIndex loads every label keyed by id, for rendering chips
func labelIndex(ctx context.Context, a *app.App) (map[string]*models.Label, error) {
	labels, err := a.LabelService.ListLabels(ctx)
	if err != nil {
		return nil, err
	}
	return cli.LabelIndex(labels), nil
}

// taskResult is the output of commands that return a single task
type taskResult struct {
	*models.Task
	Action string `json:"-"`
	labels map[string]*models.Label
}

// Render implements cli.Renderer
func (r *taskResult) Render() string {
	return fmt.Sprintf("%s Task %s\n  %s",
		styles.SuccessStyle.Render("✓"),
		r.Action,
		styles.RenderTaskLine(r.Task, r.labels))
}

func newTaskResult(ctx context.Context, a *app.App, task *models.Task, action string) (*taskResult, error) {
	idx, err := labelIndex(ctx, a)
	if err != nil {
		return nil, err
	}
	return &taskResult{Task: task, Action: action, labels: idx}, nil
}

// taskListResult is the output of list and filter
type taskListResult struct {
	Tasks  []*models.Task `json:"tasks"`
	Total  int            `json:"total"`
	Filter string         `json:"filter,omitempty"`
	labels map[string]*models.Label
}

// GetIDs implements quiet mode output
func (r *taskListResult) GetIDs() []string {
	ids := make([]string, 0, len(r.Tasks))
	for _, t := range r.Tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

// Render implements cli.Renderer
func (r *taskListResult) Render() string {
	if len(r.Tasks) == 0 {
		if r.Filter != "" {
			return "No tasks match " + r.Filter
		}
		return "No tasks found"
	}

	var b strings.Builder
	header := fmt.Sprintf("Tasks (%d)", r.Total)
	if r.Filter != "" {
		header += "  " + styles.SubtitleStyle.Render(r.Filter)
	}
	b.WriteString(styles.TitleStyle.Render(header))
	for _, t := range r.Tasks {
		b.WriteString("\n  ")
		b.WriteString(styles.RenderTaskLine(t, r.labels))
	}
	return b.String()
}

func newListResult(ctx context.Context, a *app.App, tasks []*models.Task, filter string) (*taskListResult, error) {
	idx, err := labelIndex(ctx, a)
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	return &taskListResult{Tasks: tasks, Total: len(tasks), Filter: filter, labels: idx}, nil
}

// describeFilter renders a label filter with names, e.g. "bug AND docs"
func describeFilter(ids []string, op models.Operator, idx map[string]*models.Label) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if l, ok := idx[id]; ok {
			names = append(names, l.Name)
			continue
		}
		names = append(names, id)
	}
	return strings.Join(names, " "+string(op)+" ")
}
