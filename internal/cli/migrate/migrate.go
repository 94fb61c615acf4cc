// Package migrate holds the cli commands that inspect and upgrade stored tasks
// e.g., tally migrate ...
package migrate

import (
	"github.com/spf13/cobra"
)

// MigrateCmd returns the migrate parent command
func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Check, run and roll back task data migrations",
		Long: `Older versions stored tasks without a labelIds field. tally upgrades them
automatically on startup; these commands let you inspect and control that.`,
	}

	cmd.AddCommand(CheckCmd())
	cmd.AddCommand(RunCmd())
	cmd.AddCommand(RollbackCmd())
	cmd.AddCommand(ValidateCmd())
	cmd.AddCommand(BackupsCmd())

	return cmd
}
