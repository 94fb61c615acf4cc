// Package migration upgrades the stored tasks blob so every task carries a
// labelIds array, and manages the verbatim backups taken beforehand.
package migration

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/thenoetrevino/tally/internal/apperrors"
	"github.com/thenoetrevino/tally/internal/storage"
)

// Options controls a migration run
type Options struct {
	// DryRun computes the migrated blob without writing anything, backup included.
	DryRun bool
	// Backup snapshots the current blob before it is rewritten.
	Backup bool
	// Force rewrites even when detection finds nothing, normalizing null labelIds.
	Force bool
}

// Result describes a migration run
type Result struct {
	State     State  `json:"state"`
	DryRun    bool   `json:"dryRun"`
	BackupKey string `json:"backupKey,omitempty"`
	Migrated  int    `json:"migrated"` // records whose labelIds were added or normalized
	Total     int    `json:"total"`
	Data      []byte `json:"-"` // the migrated blob; nil when nothing was computed
}

// Migrator runs tasks-blob migrations against a store
type Migrator struct {
	store storage.Store
	now   func() time.Time
	last  State
}

// New creates a migrator over store
func New(store storage.Store) *Migrator {
	return &Migrator{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// State returns the final state of the most recent Migrate call
func (m *Migrator) State() State {
	return m.last
}

func (m *Migrator) readTasks(ctx context.Context) ([]byte, bool, error) {
	raw, ok, err := m.store.GetItem(ctx, storage.KeyTasks)
	if err != nil {
		return nil, false, apperrors.Storage(apperrors.CodeStorageRead, err, "failed to read %s", storage.KeyTasks)
	}
	return raw, ok, nil
}

// CheckIfMigrationNeeded reports whether any stored task lacks labelIds.
// A missing tasks blob needs no migration.
func (m *Migrator) CheckIfMigrationNeeded(ctx context.Context) (bool, error) {
	raw, ok, err := m.readTasks(ctx)
	if err != nil || !ok {
		return false, err
	}
	blob, err := parseTasksBlob(raw)
	if err != nil {
		return false, apperrors.Storage(apperrors.CodeStorageCorrupt, err, "corrupt data in %s", storage.KeyTasks)
	}
	return detect(blob), nil
}

func detect(blob *tasksBlob) bool {
	for _, item := range blob.items {
		if needsLabelIDs(item) {
			return true
		}
	}
	// a legacy array has to be wrapped even when every record is complete
	return blob.legacy() && len(blob.items) > 0
}

// Migrate adds an empty labelIds to every task that lacks one
func (m *Migrator) Migrate(ctx context.Context, opts Options) (*Result, error) {
	run := &tracker{}
	result, err := m.migrate(ctx, run, opts)
	m.last = run.state
	if result != nil {
		result.State = run.state
	}
	if err != nil {
		slog.Error("migration failed", "error", err)
		return result, err
	}
	slog.Info("migration finished",
		"state", run.state,
		"dry_run", opts.DryRun,
		"migrated", result.Migrated,
		"total", result.Total,
		"backup", result.BackupKey)
	return result, nil
}

func (m *Migrator) migrate(ctx context.Context, run *tracker, opts Options) (*Result, error) {
	result := &Result{DryRun: opts.DryRun}

	raw, ok, err := m.readTasks(ctx)
	if err != nil {
		return result, m.fail(run, err)
	}
	if !ok {
		return result, run.transition(StateNotNeeded)
	}

	blob, err := parseTasksBlob(raw)
	if err != nil {
		return result, m.fail(run, err)
	}
	result.Total = len(blob.items)

	if detect(blob) {
		if err := run.transition(StateNeedsMigration); err != nil {
			return result, err
		}
	} else {
		if err := run.transition(StateNotNeeded); err != nil {
			return result, err
		}
		if !opts.Force {
			return result, nil
		}
		if err := run.transition(StateNeedsMigration); err != nil {
			return result, err
		}
	}

	data, migrated, err := rewrite(blob, m.now())
	if err != nil {
		// parsed but not rewritable: a record is not an object
		return result, m.failMigrating(run, err)
	}
	result.Data = data
	result.Migrated = migrated

	if opts.DryRun {
		return result, nil
	}

	if err := run.transition(StateMigrating); err != nil {
		return result, err
	}

	if opts.Backup {
		key, err := m.backup(ctx, raw)
		if err != nil {
			return result, m.fail(run, err)
		}
		result.BackupKey = key
	}

	if err := m.store.SetItem(ctx, storage.KeyTasks, data); err != nil {
		return result, m.fail(run, apperrors.Storage(apperrors.CodeStorageWrite, err, "failed to write %s", storage.KeyTasks))
	}

	return result, run.transition(StateMigrated)
}

// fail moves the run to FAILED and wraps cause as a MigrationError
func (m *Migrator) fail(run *tracker, cause error) error {
	if err := run.transition(StateFailed); err != nil {
		slog.Warn("unexpected migration state", "error", err)
	}
	return apperrors.Migration(apperrors.CodeMigrationFailed, cause, "migration failed")
}

func (m *Migrator) failMigrating(run *tracker, cause error) error {
	_ = run.transition(StateMigrating)
	return m.fail(run, cause)
}

// rewrite returns the upgraded envelope and how many records changed
func rewrite(blob *tasksBlob, now time.Time) ([]byte, int, error) {
	items := make([]record, 0, len(blob.items))
	migrated := 0
	for _, item := range blob.items {
		var rec record
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, 0, err
		}
		if rec == nil {
			return nil, 0, errNotCollection
		}
		if ids, ok := rec[labelIDsField]; !ok || isNull(ids) {
			rec[labelIDsField] = json.RawMessage("[]")
			migrated++
		}
		items = append(items, rec)
	}

	env := blob.envelope
	if env == nil {
		env = make(map[string]json.RawMessage, 3)
	}

	version := max(blob.version(), storage.TasksVersion)
	fields := map[string]any{
		"version":     version,
		"items":       items,
		"lastUpdated": now.UTC(),
	}
	for k, v := range fields {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, 0, err
		}
		env[k] = b
	}

	data, err := json.Marshal(env)
	if err != nil {
		return nil, 0, err
	}
	return data, migrated, nil
}
