package label

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
)

// SearchCmd returns the label search subcommand
func SearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search labels by name or color",
		Long: `Find labels whose name or color contains the query, ignoring case.
An empty query lists every label.

Examples:
  tally label search bug
  tally label search "#ff" --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: handler.SimpleCommand(handler.HandlerFunc(runSearch)),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runSearch(ctx context.Context, args *handler.Arguments) (any, error) {
	query := args.Arg(0)

	labels, err := args.App.LabelService.SearchLabels(ctx, query)
	if err != nil {
		return nil, err
	}

	counts, err := args.App.TaskService.LabelUsageCounts(ctx)
	if err != nil {
		return nil, err
	}

	return newListResult(labels, counts, fmt.Sprintf("No labels match %q", query)), nil
}
