package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/cli/styles"
	"github.com/thenoetrevino/tally/internal/models"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task>",
		Short: "Show a task with its labels and notes",
		Long: `Show a single task. The task is given by its full ID or by the
trailing characters shown in lists. Notes are rendered as markdown.

Examples:
  tally task show 8ZK3QF2M
  tally task show 01JB8ZK3QF2M4V5N6P7Q8R9S0T --json
`,
		RunE: handler.Command(handler.HandlerFunc(runShow), handler.RequireArgs(1, "tally task show <task>")),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

// taskDetail is a task with its labels expanded
type taskDetail struct {
	*models.Task
	Labels []*models.Label `json:"labels"`
}

// Render implements cli.Renderer
func (d *taskDetail) Render() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(d.ID))
	b.WriteString("\n\n")

	status := "open"
	if d.Completed {
		status = "done"
	}
	fmt.Fprintf(&b, "%s %s\n", styles.LabelStyle.Render("Kind:"), styles.ValueStyle.Render(string(d.Kind)))
	fmt.Fprintf(&b, "%s %s\n", styles.LabelStyle.Render("Status:"), styles.ValueStyle.Render(status))
	fmt.Fprintf(&b, "%s %s\n", styles.LabelStyle.Render("Created:"), styles.ValueStyle.Render(d.CreatedAt.Local().Format("2006-01-02 15:04")))

	b.WriteString(styles.LabelStyle.Render("Labels:"))
	b.WriteString(" ")
	if len(d.LabelIDs) == 0 {
		b.WriteString(styles.SubtitleStyle.Render("none"))
	} else {
		b.WriteString(styles.RenderLabelChips(d.LabelIDs, cli.LabelIndex(d.Labels)))
	}
	b.WriteString("\n")

	b.WriteString(styles.SectionStyle.Render("Notes"))
	b.WriteString("\n")
	b.WriteString(styles.RenderMarkdown(d.Notes, styles.CardWidth-6))

	return styles.RenderCard(b.String())
}

func runShow(ctx context.Context, args *handler.Arguments) (any, error) {
	task, err := cli.ResolveTask(ctx, args.App.TaskService, args.Arg(0))
	if err != nil {
		return nil, err
	}

	idx, err := labelIndex(ctx, args.App)
	if err != nil {
		return nil, err
	}

	labels := make([]*models.Label, 0, len(task.LabelIDs))
	for _, id := range task.LabelIDs {
		if l, ok := idx[id]; ok {
			labels = append(labels, l)
		}
	}

	return &taskDetail{Task: task, Labels: labels}, nil
}
