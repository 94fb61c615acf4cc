// Package storage defines the key/value blob store every collection is
// persisted in, and the envelope format each collection is wrapped with.
package storage

import (
	"context"
	"strings"
	"time"
)

// Store is a flat key/value store of opaque blobs.
// Implementations must return copies; callers may mutate returned slices.
type Store interface {
	// GetItem returns the blob stored under key. ok is false when the key is absent.
	GetItem(ctx context.Context, key string) (value []byte, ok bool, err error)

	// SetItem stores value under key, replacing any previous value.
	SetItem(ctx context.Context, key string, value []byte) error

	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(ctx context.Context, key string) error

	// Keys lists every key starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// Fixed collection keys.
const (
	KeyLabels = "tally.labels"
	KeyTasks  = "tally.tasks"

	// BackupPrefix namespaces verbatim snapshots of the tasks blob.
	BackupPrefix = KeyTasks + ".backup."
)

// Collection schema versions. Tasks moved to version 2 when labelIds was added.
const (
	LabelsVersion = 1
	TasksVersion  = 2
)

const backupTimeLayout = "20060102T150405.000000000Z"

// BackupKey returns the snapshot key for a backup taken at t.
func BackupKey(t time.Time) string {
	return BackupPrefix + t.UTC().Format(backupTimeLayout)
}

// IsBackupKey reports whether key lives in the backup namespace.
func IsBackupKey(key string) bool {
	return strings.HasPrefix(key, BackupPrefix) && len(key) > len(BackupPrefix)
}

// BackupTime parses the timestamp suffix of a backup key.
func BackupTime(key string) (time.Time, bool) {
	if !IsBackupKey(key) {
		return time.Time{}, false
	}
	t, err := time.Parse(backupTimeLayout, strings.TrimPrefix(key, BackupPrefix))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
