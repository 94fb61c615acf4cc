package task

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
)

// LabelsCmd returns the task labels subcommand
func LabelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labels <task> [label]...",
		Short: "Replace a task's labels",
		Long: `Set the exact labels of a task, replacing whatever it had.
Pass --clear to remove every label.

Examples:
  tally task labels 8ZK3QF2M bug urgent
  tally task labels 8ZK3QF2M --clear
`,
		RunE: handler.Command(handler.HandlerFunc(runLabels), handler.Chain(
			handler.RequireArgs(1, "tally task labels <task> [label]... | --clear"),
			parseLabelsFlags,
		)),
	}

	cmd.Flags().Bool("clear", false, "Remove every label from the task")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runLabels(ctx context.Context, args *handler.Arguments) (any, error) {
	task, err := cli.ResolveTask(ctx, args.App.TaskService, args.Arg(0))
	if err != nil {
		return nil, err
	}

	labelIDs, err := cli.ResolveLabelIDs(ctx, args.App.LabelService, args.Args[1:])
	if err != nil {
		return nil, err
	}

	task, err = args.App.TaskService.SetLabelIDs(ctx, task.ID, labelIDs)
	if err != nil {
		return nil, err
	}
	return newTaskResult(ctx, args.App, task, "labels set")
}

func parseLabelsFlags(cmd *cobra.Command, args []string) error {
	clearAll, _ := cmd.Flags().GetBool("clear")
	switch {
	case clearAll && len(args) > 1:
		return &cli.UsageError{Msg: "--clear cannot be combined with labels"}
	case !clearAll && len(args) < 2:
		return &cli.UsageError{Msg: "pass at least one label, or --clear to remove them all"}
	}
	return nil
}
