package task

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/cli/styles"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <task>",
		Short: "Delete a task",
		Long: `Delete a task permanently. Its labels are left untouched.

Examples:
  tally task delete 8ZK3QF2M
`,
		RunE: handler.Command(handler.HandlerFunc(runDelete), handler.RequireArgs(1, "tally task delete <task>")),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

type deleteResult struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// GetID implements quiet mode output
func (r *deleteResult) GetID() string {
	return r.ID
}

func (r *deleteResult) Render() string {
	return fmt.Sprintf("%s Task '%s' deleted", styles.SuccessStyle.Render("✓"), r.Title)
}

func runDelete(ctx context.Context, args *handler.Arguments) (any, error) {
	task, err := cli.ResolveTask(ctx, args.App.TaskService, args.Arg(0))
	if err != nil {
		return nil, err
	}
	if err := args.App.TaskService.DeleteTask(ctx, task.ID); err != nil {
		return nil, err
	}
	return &deleteResult{ID: task.ID, Title: task.Title}, nil
}
