package task

import (
	"encoding/json"

	"github.com/thenoetrevino/tally/internal/models"
)

// knownFields are the JSON keys models.Task maps itself
var knownFields = []string{"id", "title", "kind", "notes", "completed", "labelIds", "createdAt", "updatedAt"}

// record is the stored form of a task. Unknown fields round-trip through
// Task.Extra so older or newer data isn't trimmed by a write.
type record models.Task

func (r *record) UnmarshalJSON(data []byte) error {
	var task models.Task
	if err := json.Unmarshal(data, &task); err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for _, k := range knownFields {
		delete(fields, k)
	}
	if len(fields) > 0 {
		task.Extra = fields
	}
	*r = record(task)
	return nil
}

func (r record) MarshalJSON() ([]byte, error) {
	task := models.Task(r)
	known, err := json.Marshal(&task)
	if err != nil || len(task.Extra) == 0 {
		return known, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(known, &fields); err != nil {
		return nil, err
	}
	merged := make(map[string]json.RawMessage, len(fields)+len(task.Extra))
	for k, v := range task.Extra {
		merged[k] = v
	}
	// known fields win over a stale copy in Extra
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

func toTasks(records []*record) []*models.Task {
	tasks := make([]*models.Task, len(records))
	for i, r := range records {
		tasks[i] = (*models.Task)(r)
	}
	return tasks
}

func toRecords(tasks []*models.Task) []*record {
	records := make([]*record, len(tasks))
	for i, t := range tasks {
		records[i] = (*record)(t)
	}
	return records
}
