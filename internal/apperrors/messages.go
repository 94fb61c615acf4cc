package apperrors

// GenericMessage is shown for unknown codes and non-domain errors.
const GenericMessage = "An unexpected error occurred."

var userMessages = map[string]string{
	CodeLabelNameRequired:      "Please enter a label name.",
	CodeLabelNameTooLong:       "Label names can be at most 32 characters.",
	CodeLabelColorInvalid:      "Colors must be a hex value like #F0C or #FF00CC.",
	CodeLabelDuplicate:         "A label with this name already exists.",
	CodeLabelLimit:             "You have reached the maximum number of labels.",
	CodeLabelNotFound:          "That label no longer exists.",
	CodeLabelCleanupIncomplete: "The label was deleted but some tasks still reference it. Run cleanup again.",
	CodeTaskTitleRequired:      "Please enter a title.",
	CodeTaskTitleTooLong:       "Titles can be at most 255 characters.",
	CodeTaskKindInvalid:        "Kind must be todo, activity or habit.",
	CodeTaskNotFound:           "That task no longer exists.",
	CodeTaskLabelDuplicate:     "A task can't carry the same label twice.",
	CodeTaskLabelLimit:         "A task can carry at most 12 labels.",
	CodeTaskLabelInvalid:       "Label IDs can't be empty.",
	CodeFilterOperatorInvalid:  "Filter operator must be AND or OR.",
	CodeStorageRead:            "Your data could not be read.",
	CodeStorageWrite:           "Your changes could not be saved.",
	CodeStorageCorrupt:         "Stored data is corrupted.",
	CodeMigrationFailed:        "Upgrading your data failed. Nothing was lost; try again or restore a backup.",
	CodeBackupNotFound:         "That backup does not exist.",
}

// UserMessage maps err to user-facing text via its code.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg, ok := userMessages[CodeOf(err)]; ok {
		return msg
	}
	return GenericMessage
}
