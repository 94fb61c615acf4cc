package task

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/filter"
	"github.com/thenoetrevino/tally/internal/models"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks in creation order. Pass --label to narrow the list;
with no --label every task is shown.

Examples:
  # Every task
  tally task list

  # Only habits
  tally task list --kind=habit

  # Tasks tagged bug or urgent
  tally task list --label=bug --label=urgent

  # Tasks tagged both bug and urgent, as JSON
  tally task list --label=bug --label=urgent --op=and --json
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runList), parseListFlags),
	}

	cmd.Flags().String("kind", "", "Only show this kind: todo, activity or habit")
	cmd.Flags().StringArray("label", nil, "Label ID or name to filter by (repeatable)")
	cmd.Flags().String("op", "or", "How multiple labels combine: and, or")
	cmd.Flags().Bool("open", false, "Hide completed tasks")

	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	kind, err := handler.ParseKind(args.GetString("kind", ""))
	if err != nil {
		return nil, err
	}
	op, err := handler.ParseOperator(args.GetString("op", ""))
	if err != nil {
		return nil, err
	}
	labelIDs, err := cli.ResolveLabelIDs(ctx, args.App.LabelService, args.GetStringSlice("label", nil))
	if err != nil {
		return nil, err
	}

	tasks, err := args.App.TaskService.ListTasks(ctx, kind)
	if err != nil {
		return nil, err
	}

	state := models.FilterState{SelectedLabelIDs: labelIDs, Operator: op}
	tasks = filter.Apply(tasks, state)
	if args.GetBool("open") {
		open := tasks[:0]
		for _, t := range tasks {
			if !t.Completed {
				open = append(open, t)
			}
		}
		tasks = open
	}

	result, err := newListResult(ctx, args.App, tasks, "")
	if err != nil {
		return nil, err
	}
	if state.IsActive() {
		result.Filter = describeFilter(labelIDs, op, result.labels)
	}
	return result, nil
}

func parseListFlags(cmd *cobra.Command, _ []string) error {
	kind, _ := cmd.Flags().GetString("kind")
	if _, err := handler.ParseKind(kind); err != nil {
		return err
	}
	op, _ := cmd.Flags().GetString("op")
	_, err := handler.ParseOperator(op)
	return err
}
