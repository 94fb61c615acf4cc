package task

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
)

// FilterCmd returns the task filter subcommand
func FilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter <label>...",
		Short: "Find tasks by label",
		Long: `Find the tasks carrying the given labels. With --op=or (the default)
a task needs at least one of them; with --op=and it needs all of them.

Examples:
  tally task filter bug
  tally task filter bug urgent --op=and --json
  tally task filter bug --quiet | xargs -n1 tally task show
`,
		RunE: handler.Command(handler.HandlerFunc(runFilter), handler.Chain(
			handler.RequireArgs(1, "tally task filter <label>... [--op and|or]"),
			parseOpFlag,
		)),
	}

	cmd.Flags().String("op", "or", "How multiple labels combine: and, or")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runFilter(ctx context.Context, args *handler.Arguments) (any, error) {
	op, err := handler.ParseOperator(args.GetString("op", ""))
	if err != nil {
		return nil, err
	}
	labelIDs, err := cli.ResolveLabelIDs(ctx, args.App.LabelService, args.Args)
	if err != nil {
		return nil, err
	}

	tasks, err := args.App.TaskService.GetTasksByLabels(ctx, labelIDs, op)
	if err != nil {
		return nil, err
	}

	result, err := newListResult(ctx, args.App, tasks, "")
	if err != nil {
		return nil, err
	}
	result.Filter = describeFilter(labelIDs, op, result.labels)
	return result, nil
}

func parseOpFlag(cmd *cobra.Command, _ []string) error {
	op, _ := cmd.Flags().GetString("op")
	_, err := handler.ParseOperator(op)
	return err
}
