package label

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
)

// ExistsCmd returns the label exists subcommand
func ExistsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exists <name>",
		Short: "Check whether a label name is taken",
		Long: `Report whether a label with this name exists, ignoring case.

Examples:
  tally label exists Bug
  tally label exists bug --json
`,
		RunE: handler.Command(handler.HandlerFunc(runExists), handler.RequireArgs(1, "tally label exists <name>")),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

type existsResult struct {
	Name   string `json:"name"`
	Exists bool   `json:"exists"`
}

func (r *existsResult) Render() string {
	if r.Exists {
		return fmt.Sprintf("Label %q exists", r.Name)
	}
	return fmt.Sprintf("Label %q does not exist", r.Name)
}

func runExists(ctx context.Context, args *handler.Arguments) (any, error) {
	name := args.Arg(0)
	exists, err := args.App.LabelService.LabelExists(ctx, name)
	if err != nil {
		return nil, err
	}
	return &existsResult{Name: name, Exists: exists}, nil
}
