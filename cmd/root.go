package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/cli/browse"
	"github.com/thenoetrevino/tally/internal/cli/label"
	"github.com/thenoetrevino/tally/internal/cli/migrate"
	"github.com/thenoetrevino/tally/internal/cli/task"
	"github.com/thenoetrevino/tally/internal/cli/tutorial"
)

// NewRootCmd builds the tally command tree. Running it without a
// subcommand opens the browse view.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tally",
		Short: "Tally - label and filter your tasks from the terminal",
		Long: `Tally keeps tasks and labels in a local store. Attach up to 12 labels
to a task, then filter by any or all of them from the CLI or the
interactive browser.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          browse.Run,
	}

	// subcommands inherit this, so bad flags exit with the usage code
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &cli.UsageError{Msg: err.Error()}
	})

	rootCmd.AddCommand(label.LabelCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(migrate.MigrateCmd())
	rootCmd.AddCommand(browse.BrowseCmd())
	rootCmd.AddCommand(tutorial.TutorialCmd())

	return rootCmd
}

// Execute runs the root command with ctx
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
