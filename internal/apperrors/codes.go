package apperrors

// Error codes. These are stable and are what the UI keys its messages on.
const (
	CodeLabelNameRequired      = "LABEL_NAME_REQUIRED"
	CodeLabelNameTooLong       = "LABEL_NAME_TOO_LONG"
	CodeLabelColorInvalid      = "LABEL_COLOR_INVALID"
	CodeLabelDuplicate         = "LABEL_DUPLICATE"
	CodeLabelLimit             = "LABEL_LIMIT_REACHED"
	CodeLabelNotFound          = "LABEL_NOT_FOUND"
	CodeLabelCleanupIncomplete = "LABEL_CLEANUP_INCOMPLETE"

	CodeTaskTitleRequired  = "TASK_TITLE_REQUIRED"
	CodeTaskTitleTooLong   = "TASK_TITLE_TOO_LONG"
	CodeTaskKindInvalid    = "TASK_KIND_INVALID"
	CodeTaskNotFound       = "TASK_NOT_FOUND"
	CodeTaskLabelDuplicate = "TASK_LABELS_DUPLICATE"
	CodeTaskLabelLimit     = "TASK_LABELS_LIMIT"
	CodeTaskLabelInvalid   = "TASK_LABEL_ID_INVALID"

	CodeFilterOperatorInvalid = "FILTER_OPERATOR_INVALID"

	CodeStorageRead    = "STORAGE_READ"
	CodeStorageWrite   = "STORAGE_WRITE"
	CodeStorageCorrupt = "STORAGE_CORRUPT"

	CodeMigrationFailed = "MIGRATION_FAILED"
	CodeBackupNotFound  = "BACKUP_NOT_FOUND"
)
