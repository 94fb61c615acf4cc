package label

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/cli/styles"
)

// DeleteCmd returns the label delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <label>",
		Short: "Delete a label and detach it from every task",
		Long: `Delete a label by ID or name. The label is deleted, then removed from
every task. If that cleanup fails the command reports
LABEL_CLEANUP_INCOMPLETE; run 'tally task prune' to finish it.

Examples:
  tally label delete bug
  tally label delete bug --json
`,
		RunE: handler.Command(handler.HandlerFunc(runDelete), handler.RequireArgs(1, "tally label delete <label>")),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

type deleteResult struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	TasksAffected int    `json:"tasksAffected"`
}

// GetID implements quiet mode output
func (r *deleteResult) GetID() string {
	return r.ID
}

func (r *deleteResult) Render() string {
	return fmt.Sprintf("%s Label '%s' deleted (removed from %d task(s))",
		styles.SuccessStyle.Render("✓"), r.Name, r.TasksAffected)
}

func runDelete(ctx context.Context, args *handler.Arguments) (any, error) {
	label, err := cli.ResolveLabel(ctx, args.App.LabelService, args.Arg(0))
	if err != nil {
		return nil, err
	}

	affected, err := args.App.TaskService.GetLabelUsageCount(ctx, label.ID)
	if err != nil {
		return nil, err
	}

	if err := args.App.LabelService.DeleteLabel(ctx, label.ID); err != nil {
		return nil, err
	}

	return &deleteResult{ID: label.ID, Name: label.Name, TasksAffected: affected}, nil
}
