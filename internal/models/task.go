package models

import (
	"encoding/json"
	"maps"
	"slices"
	"time"
)

// TaskKind distinguishes the record types that share the task collection
type TaskKind string

const (
	KindTodo     TaskKind = "todo"
	KindActivity TaskKind = "activity"
	KindHabit    TaskKind = "habit"
)

// TaskKinds lists every valid kind in display order
var TaskKinds = []TaskKind{KindTodo, KindActivity, KindHabit}

// Valid reports whether k is a known kind
func (k TaskKind) Valid() bool {
	return slices.Contains(TaskKinds, k)
}

// Task represents a todo, activity or habit.
// LabelIDs is owned by the task service; other code should treat it as read-only.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Kind      TaskKind  `json:"kind,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Completed bool      `json:"completed"`
	LabelIDs  []string  `json:"labelIds"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Extra holds stored fields this version doesn't know about. The task
	// service writes them back unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

// GetID returns the task ID (used by quiet CLI output)
func (t *Task) GetID() string {
	return t.ID
}

// HasLabel reports whether the task carries labelID
func (t *Task) HasLabel(labelID string) bool {
	return slices.Contains(t.LabelIDs, labelID)
}

// Clone returns a deep copy so callers can't mutate stored label slices
func (t *Task) Clone() *Task {
	c := *t
	c.LabelIDs = slices.Clone(t.LabelIDs)
	if c.LabelIDs == nil {
		c.LabelIDs = []string{}
	}
	c.Extra = maps.Clone(t.Extra)
	return &c
}
