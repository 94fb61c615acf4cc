package migration

import (
	"bytes"
	"encoding/json"
	"errors"
)

const labelIDsField = "labelIds"

// record is one task as raw fields, so unknown fields survive a rewrite
type record map[string]json.RawMessage

// tasksBlob is the raw tasks collection, in either layout
type tasksBlob struct {
	envelope map[string]json.RawMessage // nil for the legacy bare array
	items    []json.RawMessage
}

var errNotCollection = errors.New("tasks blob is neither an envelope nor an array")

func parseTasksBlob(raw []byte) (*tasksBlob, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return &tasksBlob{}, nil
	}

	switch raw[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return &tasksBlob{items: items}, nil
	case '{':
		var env map[string]json.RawMessage
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, err
		}
		b := &tasksBlob{envelope: env}
		if items, ok := env["items"]; ok && !isNull(items) {
			if err := json.Unmarshal(items, &b.items); err != nil {
				return nil, err
			}
		}
		return b, nil
	default:
		return nil, errNotCollection
	}
}

func (b *tasksBlob) legacy() bool {
	return b.envelope == nil
}

// version returns the envelope version, 0 when absent or legacy
func (b *tasksBlob) version() int {
	if b.envelope == nil {
		return 0
	}
	var v int
	if raw, ok := b.envelope["version"]; ok {
		_ = json.Unmarshal(raw, &v)
	}
	return v
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// needsLabelIDs reports whether an item is missing the labelIds key.
// Items that are not objects are left to integrity validation.
func needsLabelIDs(item json.RawMessage) bool {
	var rec record
	if err := json.Unmarshal(item, &rec); err != nil {
		return false
	}
	_, ok := rec[labelIDsField]
	return !ok
}

// taskID extracts the id of a raw item for reporting, "" if unavailable
func taskID(item json.RawMessage) string {
	var probe struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(item, &probe); err != nil || len(probe.ID) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(probe.ID, &s); err == nil {
		return s
	}
	return string(probe.ID)
}
