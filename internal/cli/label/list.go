package label

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
)

// ListCmd returns the label list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List labels",
		Long: `List all labels, sorted by name, with the number of tasks using each.

Examples:
  # Human-readable list
  tally label list

  # JSON output for agents
  tally label list --json

  # Quiet mode (one ID per line)
  tally label list --quiet
`,
		Args: cobra.NoArgs,
		RunE: handler.SimpleCommand(handler.HandlerFunc(runList)),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(ctx context.Context, args *handler.Arguments) (any, error) {
	labels, err := args.App.LabelService.ListLabels(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := args.App.TaskService.LabelUsageCounts(ctx)
	if err != nil {
		return nil, err
	}

	return newListResult(labels, counts, "No labels yet. Create one with: tally label create --name <name>"), nil
}
