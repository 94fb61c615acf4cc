package task

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/cli/styles"
)

// PruneCmd returns the task prune subcommand
func PruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove references to labels that no longer exist",
		Long: `Strip label IDs that don't match any existing label from every task.
Run this after a label delete reported LABEL_CLEANUP_INCOMPLETE.

Examples:
  tally task prune
  tally task prune --json
`,
		Args: cobra.NoArgs,
		RunE: handler.SimpleCommand(handler.HandlerFunc(runPrune)),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

type pruneResult struct {
	TasksChanged int `json:"tasksChanged"`
}

func (r *pruneResult) Render() string {
	if r.TasksChanged == 0 {
		return "No dangling label references found"
	}
	return fmt.Sprintf("%s Cleaned %d task(s)", styles.SuccessStyle.Render("✓"), r.TasksChanged)
}

func runPrune(ctx context.Context, args *handler.Arguments) (any, error) {
	labels, err := args.App.LabelService.ListLabels(ctx)
	if err != nil {
		return nil, err
	}
	known := make([]string, 0, len(labels))
	for _, l := range labels {
		known = append(known, l.ID)
	}

	changed, err := args.App.TaskService.PruneLabelReferences(ctx, known)
	if err != nil {
		return nil, err
	}
	return &pruneResult{TasksChanged: changed}, nil
}
