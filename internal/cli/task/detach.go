package task

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
)

// DetachCmd returns the task detach subcommand
func DetachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detach <task> <label>",
		Short: "Remove a label from a task",
		Long: `Remove a label from a task. Detaching a label the task doesn't have does nothing.
A label that was already deleted can still be detached by its ID.

Examples:
  tally task detach 8ZK3QF2M bug
`,
		RunE: handler.Command(handler.HandlerFunc(runDetach), handler.RequireArgs(2, "tally task detach <task> <label>")),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runDetach(ctx context.Context, args *handler.Arguments) (any, error) {
	task, err := cli.ResolveTask(ctx, args.App.TaskService, args.Arg(0))
	if err != nil {
		return nil, err
	}

	labelID := args.Arg(1)
	if label, err := cli.ResolveLabel(ctx, args.App.LabelService, labelID); err == nil {
		labelID = label.ID
	} else if !task.HasLabel(labelID) {
		return nil, err
	}

	task, err = args.App.TaskService.RemoveLabel(ctx, task.ID, labelID)
	if err != nil {
		return nil, err
	}
	return newTaskResult(ctx, args.App, task, "label removed")
}
