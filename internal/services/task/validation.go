package task

import (
	"strings"
	"unicode/utf8"

	"github.com/thenoetrevino/tally/internal/models"
)

func validateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errEmptyTitle()
	}
	if utf8.RuneCountInString(title) > models.MaxTaskTitleLength {
		return errTitleTooLong()
	}
	return nil
}

func validateKind(kind models.TaskKind) error {
	if kind == "" || kind.Valid() {
		return nil
	}
	return errInvalidKind(kind)
}

// ValidateLabelIDs checks a complete label list: no empty ids, no
// duplicates, at most MaxLabelsPerTask entries.
func ValidateLabelIDs(ids []string) error {
	if len(ids) > models.MaxLabelsPerTask {
		return errTooManyLabels(len(ids))
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return errEmptyLabelID()
		}
		if _, dup := seen[id]; dup {
			return errDuplicateLabel(id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
