package label

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/forms"
	"github.com/thenoetrevino/tally/internal/models"
	labelservice "github.com/thenoetrevino/tally/internal/services/label"
)

// CreateCmd returns the label create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new label",
		Long: `Create a new label with a name and color.

Names are unique regardless of case and at most 32 characters.
Colors are hex values like #F53 or #FF5533.

Examples:
  # Create label (human-readable output)
  tally label create --name="bug" --color="#FF0000"

  # Pick name and color in a form
  tally label create --interactive

  # JSON output for agents
  tally label create --name="bug" --color="#FF0000" --json

  # Quiet mode for bash capture
  LABEL_ID=$(tally label create --name="bug" --quiet)
`,
		RunE: handler.Command(&createHandler{}, parseCreateFlags),
	}

	cmd.Flags().String("name", "", "Label name (required unless --interactive)")
	cmd.Flags().String("color", "", "Label color in hex format (default "+models.DefaultLabelColor+")")
	cmd.Flags().BoolP("interactive", "i", false, "Fill in the label with a form")

	cli.AddOutputFlags(cmd)

	return cmd
}

// createHandler implements handler.Handler for label creation
type createHandler struct{}

// Execute implements the Handler interface
func (h *createHandler) Execute(ctx context.Context, args *handler.Arguments) (any, error) {
	name := args.GetString("name", "")
	color := args.GetString("color", "")

	if args.GetBool("interactive") {
		form := forms.CreateLabelForm(&name, &color).
			WithTheme(forms.Theme(args.App.Config.ColorScheme))
		if err := form.Run(); err != nil {
			return nil, fmt.Errorf("label form: %w", err)
		}
	}
	if color == "" {
		color = models.DefaultLabelColor
	}

	label, err := args.App.LabelService.CreateLabel(ctx, labelservice.CreateLabelRequest{
		Name:  name,
		Color: color,
	})
	if err != nil {
		return nil, err
	}

	return &labelResult{Label: label, Action: "created"}, nil
}

func parseCreateFlags(cmd *cobra.Command, _ []string) error {
	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		return nil
	}
	return handler.RequireFlags("name")(cmd, nil)
}
