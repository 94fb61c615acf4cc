package label

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	labelservice "github.com/thenoetrevino/tally/internal/services/label"
)

// UpdateCmd returns the label update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <label>",
		Short: "Rename or recolor a label",
		Long: `Update a label's name, color, or both. The label is given by ID or name.
Renaming keeps every task association.

Examples:
  tally label update bug --name="defect"
  tally label update 0b7c3e1a-... --color="#00FF00" --json
`,
		RunE: handler.Command(&updateHandler{}, handler.Chain(
			handler.RequireArgs(1, "tally label update <label> [--name N] [--color C]"),
			requireChange,
		)),
	}

	cmd.Flags().String("name", "", "New label name")
	cmd.Flags().String("color", "", "New label color in hex format")

	cli.AddOutputFlags(cmd)

	return cmd
}

type updateHandler struct{}

// Execute implements the Handler interface
func (h *updateHandler) Execute(ctx context.Context, args *handler.Arguments) (any, error) {
	existing, err := cli.ResolveLabel(ctx, args.App.LabelService, args.Arg(0))
	if err != nil {
		return nil, err
	}

	label, err := args.App.LabelService.UpdateLabel(ctx, labelservice.UpdateLabelRequest{
		ID:    existing.ID,
		Name:  args.StringPtr("name"),
		Color: args.StringPtr("color"),
	})
	if err != nil {
		return nil, err
	}

	return &labelResult{Label: label, Action: "updated"}, nil
}

func requireChange(cmd *cobra.Command, _ []string) error {
	if !cmd.Flags().Changed("name") && !cmd.Flags().Changed("color") {
		return &cli.UsageError{Msg: "nothing to update: pass --name and/or --color"}
	}
	return nil
}
