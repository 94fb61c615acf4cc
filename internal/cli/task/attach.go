package task

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
)

// AttachCmd returns the task attach subcommand
func AttachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attach <task> <label>",
		Short: "Add a label to a task",
		Long: `Add a label to a task. Attaching a label the task already has does nothing.

Examples:
  tally task attach 8ZK3QF2M bug
  tally task attach 8ZK3QF2M 0b7c3e1a-4f0e-4c1f-9a55-2d7f5b0f3a11 --json
`,
		RunE: handler.Command(handler.HandlerFunc(runAttach), handler.RequireArgs(2, "tally task attach <task> <label>")),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runAttach(ctx context.Context, args *handler.Arguments) (any, error) {
	task, err := cli.ResolveTask(ctx, args.App.TaskService, args.Arg(0))
	if err != nil {
		return nil, err
	}
	label, err := cli.ResolveLabel(ctx, args.App.LabelService, args.Arg(1))
	if err != nil {
		return nil, err
	}

	task, err = args.App.TaskService.AddLabel(ctx, task.ID, label.ID)
	if err != nil {
		return nil, err
	}
	return newTaskResult(ctx, args.App, task, "labeled "+label.Name)
}
