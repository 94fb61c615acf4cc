package events

import "time"

// EventType indicates what kind of change occurred
type EventType string

const (
	EventLabelsChanged EventType = "labels_changed"
	EventTasksChanged  EventType = "tasks_changed"
	// EventDataChanged is delivered when a batch mixed several event types
	EventDataChanged EventType = "data_changed"
)

// Event represents a collection change notification
type Event struct {
	Type       EventType
	Timestamp  time.Time // When the event occurred
	SequenceID int64     // Monotonically increasing sequence number for ordering
}
