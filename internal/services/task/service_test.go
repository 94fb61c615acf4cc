package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tally/internal/apperrors"
	"github.com/thenoetrevino/tally/internal/models"
	"github.com/thenoetrevino/tally/internal/storage"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

// writeFailStore lets reads through and fails every write once armed
type writeFailStore struct {
	*storage.MemoryStore
	failWrites bool
}

func (s *writeFailStore) SetItem(ctx context.Context, key string, value []byte) error {
	if s.failWrites {
		return errors.New("disk full")
	}
	return s.MemoryStore.SetItem(ctx, key, value)
}

func setupService(t *testing.T) Service {
	t.Helper()
	return NewService(storage.NewMemoryStore(), nil)
}

func mustCreate(t *testing.T, svc Service, title string, labelIDs ...string) *models.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: title, LabelIDs: labelIDs})
	require.NoError(t, err)
	return task
}

func titles(tasks []*models.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func manyLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("label-%d", i)
	}
	return out
}

// ============================================================================
// TASK CRUD
// ============================================================================

func TestCreateTask(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, CreateTaskRequest{
		Title:    "  Water plants ",
		Kind:     models.KindHabit,
		Notes:    "every **monday**",
		LabelIDs: []string{"a", "b"},
	})
	require.NoError(t, err)

	assert.Len(t, created.ID, 26, "ids are ULIDs")
	assert.Equal(t, "Water plants", created.Title)
	assert.Equal(t, models.KindHabit, created.Kind)
	assert.Equal(t, []string{"a", "b"}, created.LabelIDs)
	assert.False(t, created.Completed)

	fetched, err := svc.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Title, fetched.Title)
	assert.Equal(t, created.Notes, fetched.Notes)
	assert.Equal(t, created.LabelIDs, fetched.LabelIDs)
	assert.True(t, created.CreatedAt.Equal(fetched.CreatedAt))
}

func TestCreateTask_Defaults(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	created := mustCreate(t, svc, "Buy milk")

	assert.Equal(t, models.KindTodo, created.Kind)
	assert.NotNil(t, created.LabelIDs)
	assert.Empty(t, created.LabelIDs)
}

func TestCreateTask_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      CreateTaskRequest
		wantCode string
	}{
		{"empty title", CreateTaskRequest{Title: " "}, apperrors.CodeTaskTitleRequired},
		{"long title", CreateTaskRequest{Title: strings.Repeat("x", 256)}, apperrors.CodeTaskTitleTooLong},
		{"bad kind", CreateTaskRequest{Title: "t", Kind: "chore"}, apperrors.CodeTaskKindInvalid},
		{"duplicate labels", CreateTaskRequest{Title: "t", LabelIDs: []string{"a", "a"}}, apperrors.CodeTaskLabelDuplicate},
		{"empty label id", CreateTaskRequest{Title: "t", LabelIDs: []string{""}}, apperrors.CodeTaskLabelInvalid},
		{"too many labels", CreateTaskRequest{Title: "t", LabelIDs: manyLabels(13)}, apperrors.CodeTaskLabelLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setupService(t)
			_, err := svc.CreateTask(context.Background(), tt.req)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
			assert.Equal(t, tt.wantCode, apperrors.CodeOf(err))
		})
	}
}

func TestListTasks_ByKind(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	ctx := context.Background()
	for _, req := range []CreateTaskRequest{
		{Title: "one", Kind: models.KindTodo},
		{Title: "two", Kind: models.KindActivity},
		{Title: "three", Kind: models.KindHabit},
		{Title: "four", Kind: models.KindActivity},
	} {
		_, err := svc.CreateTask(ctx, req)
		require.NoError(t, err)
	}

	all, err := svc.ListTasks(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three", "four"}, titles(all))

	activities, err := svc.ListTasks(ctx, models.KindActivity)
	require.NoError(t, err)
	assert.Equal(t, []string{"two", "four"}, titles(activities))

	_, err = svc.ListTasks(ctx, "chore")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateTask(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	ctx := context.Background()
	task := mustCreate(t, svc, "draft", "a")

	title := "final"
	done := true
	updated, err := svc.UpdateTask(ctx, UpdateTaskRequest{ID: task.ID, Title: &title, Completed: &done})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Title)
	assert.True(t, updated.Completed)
	assert.Equal(t, []string{"a"}, updated.LabelIDs, "labels are untouched by updates")

	empty := ""
	_, err = svc.UpdateTask(ctx, UpdateTaskRequest{ID: task.ID, Title: &empty})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.UpdateTask(ctx, UpdateTaskRequest{ID: "missing", Title: &title})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	ctx := context.Background()
	task := mustCreate(t, svc, "gone")

	require.NoError(t, svc.DeleteTask(ctx, task.ID))
	_, err := svc.GetTask(ctx, task.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, svc.DeleteTask(ctx, task.ID), apperrors.ErrNotFound)
}

// ============================================================================
// LABEL ASSOCIATION
// ============================================================================

func TestSetLabelIDs(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	ctx := context.Background()
	task := mustCreate(t, svc, "t", "a")

	updated, err := svc.SetLabelIDs(ctx, task.ID, []string{"b", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, updated.LabelIDs)

	cleared, err := svc.SetLabelIDs(ctx, task.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, cleared.LabelIDs)

	_, err = svc.SetLabelIDs(ctx, "missing", []string{"a"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSetLabelIDs_InvalidLeavesTaskUnmodified(t *testing.T) {
	t.Parallel()

	tests := map[string][]string{
		"duplicate": {"a", "b", "a"},
		"too many":  manyLabels(13),
	}

	for name, labelIDs := range tests {
		t.Run(name, func(t *testing.T) {
			svc := setupService(t)
			ctx := context.Background()
			task := mustCreate(t, svc, "t", "x", "y")

			_, err := svc.SetLabelIDs(ctx, task.ID, labelIDs)
			assert.ErrorIs(t, err, apperrors.ErrValidation)

			fetched, err := svc.GetTask(ctx, task.ID)
			require.NoError(t, err)
			assert.Equal(t, []string{"x", "y"}, fetched.LabelIDs)
			assert.True(t, task.UpdatedAt.Equal(fetched.UpdatedAt))
		})
	}
}

func TestSetLabelIDs_TwelveIsAllowed(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	task := mustCreate(t, svc, "t")
	updated, err := svc.SetLabelIDs(context.Background(), task.ID, manyLabels(12))
	require.NoError(t, err)
	assert.Len(t, updated.LabelIDs, 12)
}

func TestAddLabel_Idempotent(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	ctx := context.Background()
	task := mustCreate(t, svc, "t")

	_, err := svc.AddLabel(ctx, task.ID, "a")
	require.NoError(t, err)
	once, err := svc.GetTask(ctx, task.ID)
	require.NoError(t, err)

	_, err = svc.AddLabel(ctx, task.ID, "a")
	require.NoError(t, err)
	twice, err := svc.GetTask(ctx, task.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"a"}, twice.LabelIDs)
	assert.Equal(t, once.LabelIDs, twice.LabelIDs)
	assert.True(t, once.UpdatedAt.Equal(twice.UpdatedAt), "a repeated add writes nothing")
}

func TestAddLabel_Limit(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	ctx := context.Background()
	task := mustCreate(t, svc, "t", manyLabels(12)...)

	_, err := svc.AddLabel(ctx, task.ID, "thirteenth")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, apperrors.CodeTaskLabelLimit, apperrors.CodeOf(err))

	// Re-adding an existing label at the limit is still fine
	_, err = svc.AddLabel(ctx, task.ID, "label-0")
	assert.NoError(t, err)
}

func TestRemoveLabel_Idempotent(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	ctx := context.Background()
	task := mustCreate(t, svc, "t", "a", "b")

	updated, err := svc.RemoveLabel(ctx, task.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, updated.LabelIDs)

	updated, err = svc.RemoveLabel(ctx, task.ID, "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, updated.LabelIDs)

	_, err = svc.RemoveLabel(ctx, "missing", "a")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetTasksByLabels(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	ctx := context.Background()
	mustCreate(t, svc, "1", "A", "B")
	mustCreate(t, svc, "2", "B")
	mustCreate(t, svc, "3")

	tests := []struct {
		name     string
		labelIDs []string
		op       models.Operator
		want     []string
	}{
		{"and", []string{"A", "B"}, models.OperatorAnd, []string{"1"}},
		{"or", []string{"A", "B"}, models.OperatorOr, []string{"1", "2"}},
		{"single and", []string{"B"}, models.OperatorAnd, []string{"1", "2"}},
		{"unknown label", []string{"Z"}, models.OperatorOr, []string{}},
		{"empty and", nil, models.OperatorAnd, []string{}},
		{"empty or", []string{}, models.OperatorOr, []string{}},
		{"lowercase and", []string{"A", "B"}, "and", []string{"1"}},
		{"lowercase or", []string{"A", "B"}, "or", []string{"1", "2"}},
		{"padded and", []string{"A", "B"}, " And ", []string{"1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetTasksByLabels(ctx, tt.labelIDs, tt.op)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(got))
		})
	}

	_, err := svc.GetTasksByLabels(ctx, []string{"A"}, "XOR")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestRemoveLabelFromAllTasks(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	ctx := context.Background()
	t1 := mustCreate(t, svc, "1", "A", "B")
	t2 := mustCreate(t, svc, "2", "B")
	t3 := mustCreate(t, svc, "3", "A")

	changed, err := svc.RemoveLabelFromAllTasks(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	for id, want := range map[string][]string{t1.ID: {"B"}, t2.ID: {"B"}, t3.ID: {}} {
		got, err := svc.GetTask(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got.LabelIDs)
	}

	changed, err = svc.RemoveLabelFromAllTasks(ctx, "A")
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestPruneLabelReferences(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	ctx := context.Background()
	t1 := mustCreate(t, svc, "1", "A", "gone", "B")
	mustCreate(t, svc, "2", "B")

	changed, err := svc.PruneLabelReferences(ctx, []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	got, err := svc.GetTask(ctx, t1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, got.LabelIDs)
}

func TestLabelUsageCounts(t *testing.T) {
	t.Parallel()

	svc := setupService(t)
	ctx := context.Background()
	mustCreate(t, svc, "1", "A", "B")
	mustCreate(t, svc, "2", "B")
	mustCreate(t, svc, "3")

	counts, err := svc.LabelUsageCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 1, "B": 2}, counts)

	n, err := svc.GetLabelUsageCount(ctx, "B")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = svc.GetLabelUsageCount(ctx, "unused")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestLegacyTasksWithoutLabelIDs(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	ctx := context.Background()
	legacy := `{"version":1,"items":[{"id":"1","title":"old"}],"lastUpdated":"2024-01-01T00:00:00Z"}`
	require.NoError(t, store.SetItem(ctx, storage.KeyTasks, []byte(legacy)))

	svc := NewService(store, nil)
	task, err := svc.GetTask(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{}, task.LabelIDs)
	assert.Equal(t, models.KindTodo, task.Kind)

	updated, err := svc.AddLabel(ctx, "1", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, updated.LabelIDs)
}

func TestWriteFailureSurfacesStorageError(t *testing.T) {
	t.Parallel()

	store := &writeFailStore{MemoryStore: storage.NewMemoryStore()}
	svc := NewService(store, nil)
	ctx := context.Background()
	task := mustCreate(t, svc, "t", "A")

	store.failWrites = true
	_, err := svc.RemoveLabelFromAllTasks(ctx, "A")
	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.Equal(t, apperrors.CodeStorageWrite, apperrors.CodeOf(err))

	store.failWrites = false
	got, err := svc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, got.LabelIDs)
}

func TestWritesKeepUnknownFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := storage.NewMemoryStore()
	stored := `{"version":1,"items":[
		{"id":"1","title":"one","labelIds":[],"priority":"high","meta":{"source":"import"}},
		{"id":"2","title":"two","labelIds":["A"]}
	]}`
	require.NoError(t, store.SetItem(ctx, storage.KeyTasks, []byte(stored)))
	svc := NewService(store, nil)

	got, err := svc.GetTask(ctx, "1")
	require.NoError(t, err)
	assert.JSONEq(t, `"high"`, string(got.Extra["priority"]))
	assert.NotContains(t, got.Extra, "title")

	_, err = svc.AddLabel(ctx, "1", "B")
	require.NoError(t, err)

	raw, ok, err := store.GetItem(ctx, storage.KeyTasks)
	require.NoError(t, err)
	require.True(t, ok)

	var env struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Len(t, env.Items, 2)

	first := env.Items[0]
	assert.Equal(t, "high", first["priority"])
	assert.Equal(t, map[string]any{"source": "import"}, first["meta"])
	assert.Equal(t, []any{"B"}, first["labelIds"])
	assert.Equal(t, "one", first["title"])

	second := env.Items[1]
	assert.NotContains(t, second, "priority")
	assert.Equal(t, []any{"A"}, second["labelIds"])
}

func TestRecordKnownFieldsWinOverExtra(t *testing.T) {
	t.Parallel()

	task := &models.Task{
		ID:       "1",
		Title:    "current",
		LabelIDs: []string{},
		Extra:    map[string]json.RawMessage{"title": json.RawMessage(`"stale"`), "x": json.RawMessage(`1`)},
	}
	data, err := json.Marshal((*record)(task))
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "current", out["title"])
	assert.EqualValues(t, 1, out["x"])
}
