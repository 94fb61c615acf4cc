package migration

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tally/internal/apperrors"
	"github.com/thenoetrevino/tally/internal/storage"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestMigrator(t *testing.T, tasksBlob string) (*Migrator, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()
	if tasksBlob != "" {
		require.NoError(t, store.SetItem(context.Background(), storage.KeyTasks, []byte(tasksBlob)))
	}
	m := New(store)
	m.now = func() time.Time { return fixedNow }
	return m, store
}

type decodedEnvelope struct {
	Version     int                          `json:"version"`
	Items       []map[string]json.RawMessage `json:"items"`
	LastUpdated time.Time                    `json:"lastUpdated"`
}

func decode(t *testing.T, raw []byte) decodedEnvelope {
	t.Helper()
	var env decodedEnvelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return env
}

func stored(t *testing.T, store storage.Store, key string) []byte {
	t.Helper()
	raw, ok, err := store.GetItem(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok, "expected %s to exist", key)
	return raw
}

// failingStore fails reads or writes of the tasks key on demand
type failingStore struct {
	*storage.MemoryStore
	failRead  bool
	failWrite bool
}

func (s *failingStore) GetItem(ctx context.Context, key string) ([]byte, bool, error) {
	if s.failRead && key == storage.KeyTasks {
		return nil, false, errors.New("read failed")
	}
	return s.MemoryStore.GetItem(ctx, key)
}

func (s *failingStore) SetItem(ctx context.Context, key string, value []byte) error {
	if s.failWrite && key == storage.KeyTasks {
		return errors.New("write failed")
	}
	return s.MemoryStore.SetItem(ctx, key, value)
}

// ============================================================================
// DETECTION
// ============================================================================

func TestCheckIfMigrationNeeded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		blob string
		want bool
	}{
		{"missing blob", "", false},
		{"all migrated", `{"version":2,"items":[{"id":"1","labelIds":[]}],"lastUpdated":"2024-01-01T00:00:00Z"}`, false},
		{"empty envelope", `{"version":1,"items":[]}`, false},
		{"one missing", `{"version":1,"items":[{"id":"1","labelIds":["a"]},{"id":"2"}]}`, true},
		{"null labelIds is present", `{"version":1,"items":[{"id":"1","labelIds":null}]}`, false},
		{"legacy array", `[{"id":"1","labelIds":[]}]`, true},
		{"empty legacy array", `[]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestMigrator(t, tt.blob)
			got, err := m.CheckIfMigrationNeeded(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckIfMigrationNeeded_Corrupt(t *testing.T) {
	t.Parallel()

	m, _ := newTestMigrator(t, "not json")
	_, err := m.CheckIfMigrationNeeded(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.Equal(t, apperrors.CodeStorageCorrupt, apperrors.CodeOf(err))
}

// ============================================================================
// MIGRATE
// ============================================================================

func TestMigrate_WithBackup(t *testing.T) {
	t.Parallel()

	original := `[{"id":1},{"id":2,"labelIds":["X"]}]`
	m, store := newTestMigrator(t, original)
	ctx := context.Background()

	result, err := m.Migrate(ctx, Options{Backup: true})
	require.NoError(t, err)

	assert.Equal(t, StateMigrated, result.State)
	assert.Equal(t, StateMigrated, m.State())
	assert.Equal(t, 1, result.Migrated)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, storage.BackupKey(fixedNow), result.BackupKey)

	// Backup holds the original blob byte for byte
	assert.Equal(t, original, string(stored(t, store, result.BackupKey)))

	env := decode(t, stored(t, store, storage.KeyTasks))
	assert.Equal(t, storage.TasksVersion, env.Version)
	assert.True(t, env.LastUpdated.Equal(fixedNow))
	require.Len(t, env.Items, 2)
	assert.JSONEq(t, `1`, string(env.Items[0]["id"]))
	assert.JSONEq(t, `[]`, string(env.Items[0]["labelIds"]))
	assert.JSONEq(t, `2`, string(env.Items[1]["id"]))
	assert.JSONEq(t, `["X"]`, string(env.Items[1]["labelIds"]))

	needed, err := m.CheckIfMigrationNeeded(ctx)
	require.NoError(t, err)
	assert.False(t, needed)
}

func TestMigrate_PreservesOtherFields(t *testing.T) {
	t.Parallel()

	m, store := newTestMigrator(t,
		`{"version":1,"owner":"me","items":[{"id":"a","title":"Run","streak":{"days":3}}],"lastUpdated":"2023-01-01T00:00:00Z"}`)

	_, err := m.Migrate(context.Background(), Options{})
	require.NoError(t, err)

	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(stored(t, store, storage.KeyTasks), &env))
	assert.JSONEq(t, `"me"`, string(env["owner"]))
	assert.JSONEq(t, `2`, string(env["version"]))
	assert.JSONEq(t, `[{"id":"a","title":"Run","streak":{"days":3},"labelIds":[]}]`, string(env["items"]))
}

func TestMigrate_NotNeeded(t *testing.T) {
	t.Parallel()

	blob := `{"version":2,"items":[{"id":"1","labelIds":[]}],"lastUpdated":"2024-01-01T00:00:00Z"}`
	m, store := newTestMigrator(t, blob)

	result, err := m.Migrate(context.Background(), Options{Backup: true})
	require.NoError(t, err)
	assert.Equal(t, StateNotNeeded, result.State)
	assert.Empty(t, result.BackupKey)
	assert.Nil(t, result.Data)

	assert.Equal(t, blob, string(stored(t, store, storage.KeyTasks)))
	keys, err := store.Keys(context.Background(), storage.BackupPrefix)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMigrate_MissingBlob(t *testing.T) {
	t.Parallel()

	m, store := newTestMigrator(t, "")
	result, err := m.Migrate(context.Background(), Options{Force: true})
	require.NoError(t, err)
	assert.Equal(t, StateNotNeeded, result.State)

	_, ok, err := store.GetItem(context.Background(), storage.KeyTasks)
	require.NoError(t, err)
	assert.False(t, ok, "nothing is created for a fresh install")
}

func TestMigrate_DryRunWritesNothing(t *testing.T) {
	t.Parallel()

	original := `{"version":1,"items":[{"id":"1"}]}`
	m, store := newTestMigrator(t, original)

	result, err := m.Migrate(context.Background(), Options{DryRun: true, Backup: true})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, StateNeedsMigration, result.State)
	assert.Equal(t, 1, result.Migrated)
	assert.Empty(t, result.BackupKey)
	require.NotNil(t, result.Data)
	env := decode(t, result.Data)
	assert.JSONEq(t, `[]`, string(env.Items[0]["labelIds"]))

	assert.Equal(t, original, string(stored(t, store, storage.KeyTasks)))
	keys, err := store.Keys(context.Background(), storage.BackupPrefix)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestMigrate_ForceNormalizesNull(t *testing.T) {
	t.Parallel()

	m, store := newTestMigrator(t, `{"version":2,"items":[{"id":"1","labelIds":null},{"id":"2","labelIds":["a"]}]}`)

	result, err := m.Migrate(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, StateNotNeeded, result.State)

	result, err = m.Migrate(context.Background(), Options{Force: true})
	require.NoError(t, err)
	assert.Equal(t, StateMigrated, result.State)
	assert.Equal(t, 1, result.Migrated)

	env := decode(t, stored(t, store, storage.KeyTasks))
	assert.JSONEq(t, `[]`, string(env.Items[0]["labelIds"]))
	assert.JSONEq(t, `["a"]`, string(env.Items[1]["labelIds"]))
}

func TestMigrate_WriteFailure(t *testing.T) {
	t.Parallel()

	original := `{"version":1,"items":[{"id":"1"}]}`
	store := &failingStore{MemoryStore: storage.NewMemoryStore()}
	ctx := context.Background()
	require.NoError(t, store.MemoryStore.SetItem(ctx, storage.KeyTasks, []byte(original)))
	store.failWrite = true

	m := New(store)
	m.now = func() time.Time { return fixedNow }

	result, err := m.Migrate(ctx, Options{Backup: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrMigration)
	assert.Equal(t, apperrors.CodeMigrationFailed, apperrors.CodeOf(err))
	assert.Equal(t, StateFailed, result.State)

	// The backup was taken before the failed rewrite and can restore
	require.NotEmpty(t, result.BackupKey)
	store.failWrite = false
	require.NoError(t, m.Rollback(ctx, result.BackupKey))
	assert.Equal(t, original, string(stored(t, store, storage.KeyTasks)))
}

func TestMigrate_ReadFailure(t *testing.T) {
	t.Parallel()

	store := &failingStore{MemoryStore: storage.NewMemoryStore(), failRead: true}
	m := New(store)

	result, err := m.Migrate(context.Background(), Options{})
	assert.ErrorIs(t, err, apperrors.ErrMigration)
	assert.Equal(t, StateFailed, result.State)
}

func TestMigrate_NonObjectRecordFails(t *testing.T) {
	t.Parallel()

	original := `{"version":1,"items":[{"id":"1"},42]}`
	m, store := newTestMigrator(t, original)

	result, err := m.Migrate(context.Background(), Options{})
	assert.ErrorIs(t, err, apperrors.ErrMigration)
	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, original, string(stored(t, store, storage.KeyTasks)))
}

// ============================================================================
// STATE MACHINE
// ============================================================================

func TestTransitions(t *testing.T) {
	t.Parallel()

	allowed := [][2]State{
		{StateUnknown, StateNotNeeded},
		{StateUnknown, StateNeedsMigration},
		{StateNotNeeded, StateNeedsMigration},
		{StateNeedsMigration, StateMigrating},
		{StateMigrating, StateMigrated},
		{StateMigrating, StateFailed},
	}
	for _, tr := range allowed {
		assert.True(t, isAllowedTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	disallowed := [][2]State{
		{StateNeedsMigration, StateMigrated},
		{StateMigrated, StateMigrating},
		{StateFailed, StateMigrating},
		{StateNotNeeded, StateMigrated},
	}
	for _, tr := range disallowed {
		assert.False(t, isAllowedTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	run := &tracker{}
	require.NoError(t, run.transition(StateNeedsMigration))
	assert.Error(t, run.transition(StateMigrated))
	assert.Equal(t, StateNeedsMigration, run.state)
}
