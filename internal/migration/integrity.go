package migration

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/thenoetrevino/tally/internal/apperrors"
	"github.com/thenoetrevino/tally/internal/models"
	"github.com/thenoetrevino/tally/internal/storage"
)

// Violation codes reported by ValidateIntegrity
const (
	ViolationNotObject     = "TASK_NOT_OBJECT"
	ViolationMissing       = "LABEL_IDS_MISSING"
	ViolationNotArray      = "LABEL_IDS_NOT_ARRAY"
	ViolationTooMany       = "LABEL_IDS_TOO_MANY"
	ViolationDuplicate     = "LABEL_IDS_DUPLICATE"
	ViolationNotString     = "LABEL_ID_NOT_STRING"
	ViolationDanglingLabel = "LABEL_ID_DANGLING"
)

// Violation is one integrity problem in the stored tasks
type Violation struct {
	Index   int    `json:"index"`
	TaskID  string `json:"taskId,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// IntegrityReport lists every violation found
type IntegrityReport struct {
	Total      int         `json:"total"`
	Violations []Violation `json:"violations"`
}

// Valid reports whether no violations were found
func (r *IntegrityReport) Valid() bool {
	return len(r.Violations) == 0
}

// ValidateIntegrity checks every stored task's labelIds. Label ids that no
// longer name a label are reported too. Only storage failures are errors.
func (m *Migrator) ValidateIntegrity(ctx context.Context) (*IntegrityReport, error) {
	report := &IntegrityReport{Violations: []Violation{}}

	raw, ok, err := m.readTasks(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return report, nil
	}
	blob, err := parseTasksBlob(raw)
	if err != nil {
		return nil, apperrors.Storage(apperrors.CodeStorageCorrupt, err, "corrupt data in %s", storage.KeyTasks)
	}

	known, err := m.knownLabels(ctx)
	if err != nil {
		return nil, err
	}

	report.Total = len(blob.items)
	for i, item := range blob.items {
		report.Violations = append(report.Violations, checkItem(i, item, known)...)
	}
	return report, nil
}

// knownLabels returns the set of stored label ids, nil when no labels blob exists
func (m *Migrator) knownLabels(ctx context.Context) (map[string]struct{}, error) {
	if _, ok, err := m.store.GetItem(ctx, storage.KeyLabels); err != nil || !ok {
		if err != nil {
			return nil, apperrors.Storage(apperrors.CodeStorageRead, err, "failed to read %s", storage.KeyLabels)
		}
		return nil, nil
	}
	labels, err := storage.NewCollection[*models.Label](m.store, storage.KeyLabels, storage.LabelsVersion).Load(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		known[l.ID] = struct{}{}
	}
	return known, nil
}

func checkItem(index int, item json.RawMessage, known map[string]struct{}) []Violation {
	id := taskID(item)
	violation := func(code, format string, args ...any) Violation {
		return Violation{Index: index, TaskID: id, Code: code, Message: fmt.Sprintf(format, args...)}
	}

	var rec record
	if err := json.Unmarshal(item, &rec); err != nil || rec == nil {
		return []Violation{violation(ViolationNotObject, "task at index %d is not an object", index)}
	}

	rawIDs, ok := rec[labelIDsField]
	if !ok {
		return []Violation{violation(ViolationMissing, "labelIds is missing")}
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(rawIDs, &entries); err != nil || isNull(rawIDs) {
		return []Violation{violation(ViolationNotArray, "labelIds is not an array")}
	}

	var out []Violation
	if len(entries) > models.MaxLabelsPerTask {
		out = append(out, violation(ViolationTooMany,
			"labelIds has %d entries (max %d)", len(entries), models.MaxLabelsPerTask))
	}

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		var labelID string
		if err := json.Unmarshal(entry, &labelID); err != nil || isNull(entry) {
			out = append(out, violation(ViolationNotString, "labelIds entry %s is not a string", entry))
			continue
		}
		if _, dup := seen[labelID]; dup {
			out = append(out, violation(ViolationDuplicate, "label %s listed more than once", labelID))
			continue
		}
		seen[labelID] = struct{}{}
		if known != nil {
			if _, exists := known[labelID]; !exists {
				out = append(out, violation(ViolationDanglingLabel, "label %s does not exist", labelID))
			}
		}
	}
	return out
}
