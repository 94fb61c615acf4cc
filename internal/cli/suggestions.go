package cli

import (
	"github.com/thenoetrevino/tally/internal/apperrors"
)

var suggestions = map[string]string{
	apperrors.CodeLabelDuplicate:         "List existing labels with: tally label list",
	apperrors.CodeLabelNotFound:          "List existing labels with: tally label list",
	apperrors.CodeTaskNotFound:           "List tasks with: tally task list",
	apperrors.CodeLabelCleanupIncomplete: "Remove dangling label references with: tally task prune",
	apperrors.CodeTaskLabelLimit:         "Detach a label first with: tally task detach",
	apperrors.CodeBackupNotFound:         "List backups with: tally migrate backups",
	apperrors.CodeStorageCorrupt:         "Restore a backup with: tally migrate rollback <key>",
	apperrors.CodeMigrationFailed:        "Check for problems with: tally migrate validate",
}

func suggestionFor(err error) string {
	return suggestions[apperrors.CodeOf(err)]
}
