package migrate

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/cli/styles"
)

// CheckCmd returns the migrate check subcommand
func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether stored tasks need migrating",
		Long: `Report whether any stored task is missing its labelIds field.
Nothing is written.

Examples:
  tally migrate check
  tally migrate check --json
`,
		Args: cobra.NoArgs,
		RunE: handler.SimpleCommand(handler.HandlerFunc(runCheck)),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

type checkResult struct {
	Needed bool `json:"needed"`
}

func (r *checkResult) Render() string {
	if r.Needed {
		return styles.WarningStyle.Render("Migration needed.") + " Run: tally migrate run"
	}
	return styles.SuccessStyle.Render("✓") + " Tasks are up to date"
}

func runCheck(ctx context.Context, args *handler.Arguments) (any, error) {
	needed, err := args.App.Migrator.CheckIfMigrationNeeded(ctx)
	if err != nil {
		return nil, err
	}
	return &checkResult{Needed: needed}, nil
}
