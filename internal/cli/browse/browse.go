// Package browse holds the command that opens the interactive view
package browse

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tally/internal/cli"
	"github.com/thenoetrevino/tally/internal/launcher"
)

// BrowseCmd returns the browse command
func BrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse tasks interactively, filtering by label",
		Long: `Open the interactive view. Pick labels on the left to filter the
tasks on the right; toggle AND/OR to require all or any of them.

Keys (configurable under key_mappings in the config file):
  j/k      move          space  toggle label
  o        AND/OR        c      clear filter
  /        search labels tab    switch pane
  x        done/undone   ?      help
  q        quit
`,
		Args: cobra.NoArgs,
		RunE: Run,
	}
}

// Run opens the browse view; the root command uses it as its default action
func Run(cmd *cobra.Command, _ []string) error {
	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	return launcher.Launch(cmd.Context(), cliInstance.App)
}
