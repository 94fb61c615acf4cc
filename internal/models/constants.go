package models

// ============================================================================
// LABEL LIMITS
// ============================================================================

// MaxLabelNameLength is the maximum length of a trimmed label name
const MaxLabelNameLength = 32

// MaxLabels is the maximum number of labels that can exist at once
const MaxLabels = 200

// ============================================================================
// TASK LIMITS
// ============================================================================

// MaxLabelsPerTask is the maximum number of labels a single task may carry
const MaxLabelsPerTask = 12

// MaxTaskTitleLength is the maximum length of a trimmed task title
const MaxTaskTitleLength = 255

// DefaultTaskKind is used when a task is created without a kind
const DefaultTaskKind = KindTodo

// ============================================================================
// LABEL COLOR DEFAULTS
// ============================================================================

// DefaultLabelColor is used by interactive forms when no color is chosen
const DefaultLabelColor = "#7D56F4"
