package migrate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/cli/styles"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/migration"
)

// RunCmd returns the migrate run subcommand
func RunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Add missing labelIds to stored tasks",
		Long: `Rewrite the stored tasks so every task has a labelIds array.
A backup of the original data is taken first unless --backup=false
(or migration.backup: false in the config file).

Examples:
  # Preview without writing anything
  tally migrate run --dry-run --json

  # Migrate, taking a backup
  tally migrate run

  # Rewrite even when nothing is missing, turning null labelIds into []
  tally migrate run --force
`,
		Args: cobra.NoArgs,
		RunE: handler.SimpleCommand(handler.HandlerFunc(runMigrate)),
	}

	cmd.Flags().Bool("dry-run", false, "Compute the result without writing anything")
	cmd.Flags().Bool("backup", true, "Back up the tasks before rewriting them")
	cmd.Flags().Bool("force", false, "Rewrite even when no task needs it")

	cli.AddOutputFlags(cmd)

	return cmd
}

// runResult is a migration result, with the rewritten tasks on dry runs
type runResult struct {
	*migration.Result
	Preview json.RawMessage `json:"preview,omitempty"`
}

// GetID implements quiet mode output: the backup key, if any
func (r *runResult) GetID() string {
	return r.BackupKey
}

func (r *runResult) Render() string {
	var b strings.Builder
	switch {
	case r.DryRun && r.Data != nil:
		fmt.Fprintf(&b, "Dry run: %d of %d task(s) would be migrated. Nothing was written.", r.Migrated, r.Total)
	case r.State == migration.StateMigrated:
		fmt.Fprintf(&b, "%s Migrated %d of %d task(s)", styles.SuccessStyle.Render("✓"), r.Migrated, r.Total)
	default:
		b.WriteString(styles.SuccessStyle.Render("✓") + " Nothing to migrate")
	}
	if r.BackupKey != "" {
		fmt.Fprintf(&b, "\n  Backup: %s", r.BackupKey)
	}
	return b.String()
}

func runMigrate(ctx context.Context, args *handler.Arguments) (any, error) {
	backup := args.App.Config.Migration.BackupEnabled()
	if args.Has("backup") {
		backup = args.GetBool("backup")
	}
	opts := migration.Options{
		DryRun: args.GetBool("dry-run"),
		Backup: backup,
		Force:  args.GetBool("force"),
	}

	result, err := args.App.Migrator.Migrate(ctx, opts)
	if err != nil {
		return nil, err
	}

	out := &runResult{Result: result}
	if opts.DryRun && result.Data != nil {
		out.Preview = json.RawMessage(result.Data)
	}
	if result.State == migration.StateMigrated {
		events.Notify(args.App.Events(), events.EventTasksChanged)
	}
	return out, nil
}
