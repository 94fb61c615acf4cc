package task

import (
	"github.com/thenoetrevino/tally/internal/apperrors"
	"github.com/thenoetrevino/tally/internal/models"
)

// Task-related errors. Each carries a stable code; match by kind with
// errors.Is(err, apperrors.ErrValidation) and friends.

func errTaskNotFound(id string) error {
	return apperrors.NotFound(apperrors.CodeTaskNotFound, "task %s not found", id)
}

func errEmptyTitle() error {
	return apperrors.Validation(apperrors.CodeTaskTitleRequired, "task title cannot be empty")
}

func errTitleTooLong() error {
	return apperrors.Validation(apperrors.CodeTaskTitleTooLong,
		"task title cannot exceed %d characters", models.MaxTaskTitleLength)
}

func errInvalidKind(kind models.TaskKind) error {
	return apperrors.Validation(apperrors.CodeTaskKindInvalid,
		"invalid task kind %q (must be todo, activity or habit)", kind)
}

func errDuplicateLabel(labelID string) error {
	return apperrors.Validation(apperrors.CodeTaskLabelDuplicate, "label %s listed more than once", labelID)
}

func errTooManyLabels(n int) error {
	return apperrors.Validation(apperrors.CodeTaskLabelLimit,
		"a task can carry at most %d labels, got %d", models.MaxLabelsPerTask, n)
}

func errEmptyLabelID() error {
	return apperrors.Validation(apperrors.CodeTaskLabelInvalid, "label id cannot be empty")
}
