package migration

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/thenoetrevino/tally/internal/apperrors"
	"github.com/thenoetrevino/tally/internal/storage"
)

// Backup is a verbatim snapshot of the tasks blob
type Backup struct {
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"createdAt"`
	Size      int       `json:"size"`
}

// backup copies raw to a fresh timestamped key
func (m *Migrator) backup(ctx context.Context, raw []byte) (string, error) {
	at := m.now()
	key := storage.BackupKey(at)
	for {
		_, exists, err := m.store.GetItem(ctx, key)
		if err != nil {
			return "", apperrors.Storage(apperrors.CodeStorageRead, err, "failed to read %s", key)
		}
		if !exists {
			break
		}
		at = at.Add(time.Nanosecond)
		key = storage.BackupKey(at)
	}

	if err := m.store.SetItem(ctx, key, raw); err != nil {
		return "", apperrors.Storage(apperrors.CodeStorageWrite, err, "failed to write backup %s", key)
	}
	slog.Info("tasks backed up", "key", key, "bytes", len(raw))
	return key, nil
}

// Rollback restores the tasks blob from a backup, byte for byte.
// Keys outside the backup namespace are never backups, so they are not found.
func (m *Migrator) Rollback(ctx context.Context, backupKey string) error {
	if !storage.IsBackupKey(backupKey) {
		return apperrors.NotFound(apperrors.CodeBackupNotFound, "%q is not a backup key", backupKey)
	}

	raw, ok, err := m.store.GetItem(ctx, backupKey)
	if err != nil {
		return apperrors.Storage(apperrors.CodeStorageRead, err, "failed to read backup %s", backupKey)
	}
	if !ok {
		return apperrors.NotFound(apperrors.CodeBackupNotFound, "backup %s not found", backupKey)
	}

	if err := m.store.SetItem(ctx, storage.KeyTasks, raw); err != nil {
		return apperrors.Storage(apperrors.CodeStorageWrite, err, "failed to restore %s", storage.KeyTasks)
	}
	slog.Info("tasks restored from backup", "key", backupKey)
	return nil
}

// ListBackups returns every backup, newest first
func (m *Migrator) ListBackups(ctx context.Context) ([]Backup, error) {
	keys, err := m.store.Keys(ctx, storage.BackupPrefix)
	if err != nil {
		return nil, apperrors.Storage(apperrors.CodeStorageRead, err, "failed to list backups")
	}

	backups := make([]Backup, 0, len(keys))
	for _, key := range keys {
		at, ok := storage.BackupTime(key)
		if !ok {
			slog.Warn("skipping malformed backup key", "key", key)
			continue
		}
		raw, exists, err := m.store.GetItem(ctx, key)
		if err != nil {
			return nil, apperrors.Storage(apperrors.CodeStorageRead, err, "failed to read backup %s", key)
		}
		if !exists {
			continue
		}
		backups = append(backups, Backup{Key: key, CreatedAt: at, Size: len(raw)})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})
	return backups, nil
}

// PruneBackups keeps the newest keep backups and removes the rest.
// It returns the removed keys.
func (m *Migrator) PruneBackups(ctx context.Context, keep int) ([]string, error) {
	keep = max(keep, 0)
	backups, err := m.ListBackups(ctx)
	if err != nil {
		return nil, err
	}
	if len(backups) <= keep {
		return []string{}, nil
	}

	removed := make([]string, 0, len(backups)-keep)
	for _, b := range backups[keep:] {
		if err := m.store.RemoveItem(ctx, b.Key); err != nil {
			return removed, apperrors.Storage(apperrors.CodeStorageWrite, err, "failed to remove backup %s", b.Key)
		}
		removed = append(removed, b.Key)
	}
	slog.Info("pruned backups", "removed", len(removed), "kept", keep)
	return removed, nil
}
