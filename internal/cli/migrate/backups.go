package migrate

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/handler"
	"github.com/thenoetrevino/tally/internal/cli/styles"
	"github.com/thenoetrevino/tally/internal/migration"
)

// BackupsCmd returns the migrate backups subcommand
func BackupsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "List task backups",
		Long: `List the backups taken before migrations, newest first.
Pass --prune N to delete all but the newest N.

Examples:
  tally migrate backups
  tally migrate backups --prune 3 --json
`,
		Args: cobra.NoArgs,
		RunE: handler.Command(handler.HandlerFunc(runBackups), parseBackupsFlags),
	}

	cmd.Flags().Int("prune", 0, "Keep only the newest N backups")

	cli.AddOutputFlags(cmd)

	return cmd
}

type backupsResult struct {
	Backups []migration.Backup `json:"backups"`
	Removed []string           `json:"removed,omitempty"`
}

// GetIDs implements quiet mode output
func (r *backupsResult) GetIDs() []string {
	keys := make([]string, 0, len(r.Backups))
	for _, b := range r.Backups {
		keys = append(keys, b.Key)
	}
	return keys
}

func (r *backupsResult) Render() string {
	var b strings.Builder
	if len(r.Removed) > 0 {
		fmt.Fprintf(&b, "%s Removed %d backup(s)\n", styles.SuccessStyle.Render("✓"), len(r.Removed))
	}
	if len(r.Backups) == 0 {
		b.WriteString("No backups")
		return b.String()
	}

	b.WriteString(styles.TitleStyle.Render(fmt.Sprintf("Backups (%d)", len(r.Backups))))
	for _, bk := range r.Backups {
		fmt.Fprintf(&b, "\n  %s  %s  %s",
			bk.Key,
			styles.SubtitleStyle.Render(bk.CreatedAt.Local().Format("2006-01-02 15:04:05")),
			styles.SubtitleStyle.Render(fmt.Sprintf("%d bytes", bk.Size)))
	}
	return b.String()
}

func runBackups(ctx context.Context, args *handler.Arguments) (any, error) {
	result := &backupsResult{}
	if args.Has("prune") {
		removed, err := args.App.Migrator.PruneBackups(ctx, args.GetInt("prune", 0))
		if err != nil {
			return nil, err
		}
		result.Removed = removed
	}

	backups, err := args.App.Migrator.ListBackups(ctx)
	if err != nil {
		return nil, err
	}
	result.Backups = backups
	return result, nil
}

func parseBackupsFlags(cmd *cobra.Command, _ []string) error {
	if keep, _ := cmd.Flags().GetInt("prune"); keep < 0 {
		return &cli.UsageError{Msg: "--prune must be zero or more"}
	}
	return nil
}
