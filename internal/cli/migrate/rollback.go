package migrate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/cli/styles"
	"github.com/thenoetrevino/tally/internal/events"
)

// RollbackCmd returns the migrate rollback subcommand
func RollbackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rollback <backup-key>",
		Short: "Restore tasks from a backup",
		Long: `Replace the stored tasks with a backup, byte for byte.
Find backup keys with: tally migrate backups

Examples:
  tally migrate rollback tally.tasks.backup.20260101T120000.000000000Z
`,
		RunE: handler.Command(handler.HandlerFunc(runRollback), handler.RequireArgs(1, "tally migrate rollback <backup-key>")),
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

type rollbackResult struct {
	Restored string `json:"restored"`
}

// GetID implements quiet mode output
func (r *rollbackResult) GetID() string {
	return r.Restored
}

func (r *rollbackResult) Render() string {
	return fmt.Sprintf("%s Tasks restored from %s", styles.SuccessStyle.Render("✓"), r.Restored)
}

func runRollback(ctx context.Context, args *handler.Arguments) (any, error) {
	key := args.Arg(0)
	if err := args.App.Migrator.Rollback(ctx, key); err != nil {
		return nil, err
	}
	events.Notify(args.App.Events(), events.EventTasksChanged)
	return &rollbackResult{Restored: key}, nil
}
