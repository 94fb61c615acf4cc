package label

import (
	"github.com/thenoetrevino/tally/internal/apperrors"
)

// Label-related errors. These are constructors rather than sentinels so
// each error carries the offending id; match them with
// errors.Is(err, apperrors.ErrNotFound) etc.

func errLabelNotFound(id string) error {
	return apperrors.NotFound(apperrors.CodeLabelNotFound, "label %s not found", id)
}

func errDuplicateName(name string) error {
	return apperrors.Duplicate(apperrors.CodeLabelDuplicate, "a label named %q already exists", name)
}

func errLabelLimit() error {
	return apperrors.Limit(apperrors.CodeLabelLimit, "cannot create more than %d labels", maxLabels)
}

func errCleanupIncomplete(id string, cause error) error {
	return apperrors.Storage(apperrors.CodeLabelCleanupIncomplete, cause,
		"label %s deleted but removing it from tasks failed", id)
}
