package task

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/filter"
	"github.com/thenoetrevino/tally/internal/models"
	"github.com/thenoetrevino/tally/internal/storage"
)

var timeNow = func() time.Time { return time.Now().UTC() }

// Service defines all task-related business operations, including the
// task side of the task/label association.
type Service interface {
	// Read operations
	GetTask(ctx context.Context, id string) (*models.Task, error)
	ListTasks(ctx context.Context, kind models.TaskKind) ([]*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// Label management
	SetLabelIDs(ctx context.Context, taskID string, labelIDs []string) (*models.Task, error)
	AddLabel(ctx context.Context, taskID, labelID string) (*models.Task, error)
	RemoveLabel(ctx context.Context, taskID, labelID string) (*models.Task, error)
	GetTasksByLabels(ctx context.Context, labelIDs []string, op models.Operator) ([]*models.Task, error)
	RemoveLabelFromAllTasks(ctx context.Context, labelID string) (int, error)
	GetLabelUsageCount(ctx context.Context, labelID string) (int, error)
	LabelUsageCounts(ctx context.Context) (map[string]int, error)
	PruneLabelReferences(ctx context.Context, knownLabelIDs []string) (int, error)
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	Title    string
	Kind     models.TaskKind // Optional: empty means todo
	Notes    string
	LabelIDs []string
}

// UpdateTaskRequest encapsulates all data needed to update a task
// Fields with pointers are optional - nil means don't update
type UpdateTaskRequest struct {
	ID        string
	Title     *string
	Kind      *models.TaskKind
	Notes     *string
	Completed *bool
}

// service implements Service interface
type service struct {
	tasks       *storage.Collection[*record]
	eventClient events.EventPublisher
}

// NewService creates a new task service
func NewService(store storage.Store, eventClient events.EventPublisher) Service {
	return &service{
		tasks:       storage.NewCollection[*record](store, storage.KeyTasks, storage.TasksVersion),
		eventClient: eventClient,
	}
}

func newTaskID() string {
	return ulid.MustNew(ulid.Timestamp(timeNow()), ulid.DefaultEntropy()).String()
}

// load reads every task, treating a missing labelIds as empty
func (s *service) load(ctx context.Context) ([]*models.Task, error) {
	records, err := s.tasks.Load(ctx)
	if err != nil {
		return nil, err
	}
	tasks := toTasks(records)
	for _, t := range tasks {
		if t.LabelIDs == nil {
			t.LabelIDs = []string{}
		}
		if t.Kind == "" {
			t.Kind = models.DefaultTaskKind
		}
	}
	return tasks, nil
}

func (s *service) save(ctx context.Context, tasks []*models.Task) error {
	if err := s.tasks.Save(ctx, toRecords(tasks)); err != nil {
		slog.Error("failed to save tasks", "error", err)
		return err
	}
	events.Notify(s.eventClient, events.EventTasksChanged)
	return nil
}

// find loads all tasks and locates id
func (s *service) find(ctx context.Context, id string) ([]*models.Task, int, error) {
	tasks, err := s.load(ctx)
	if err != nil {
		return nil, -1, err
	}
	idx := slices.IndexFunc(tasks, func(t *models.Task) bool { return t.ID == id })
	if idx < 0 {
		return nil, -1, errTaskNotFound(id)
	}
	return tasks, idx, nil
}

// GetTask retrieves a single task
func (s *service) GetTask(ctx context.Context, id string) (*models.Task, error) {
	tasks, idx, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return tasks[idx], nil
}

// ListTasks returns tasks in creation order. An empty kind lists every kind.
func (s *service) ListTasks(ctx context.Context, kind models.TaskKind) ([]*models.Task, error) {
	if err := validateKind(kind); err != nil {
		return nil, err
	}
	tasks, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if kind == "" {
		return tasks, nil
	}
	return slices.DeleteFunc(tasks, func(t *models.Task) bool { return t.Kind != kind }), nil
}

// CreateTask handles task creation with validation
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	// Validate request
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateKind(req.Kind); err != nil {
		return nil, err
	}
	if err := ValidateLabelIDs(req.LabelIDs); err != nil {
		return nil, err
	}

	tasks, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	kind := req.Kind
	if kind == "" {
		kind = models.DefaultTaskKind
	}
	labelIDs := slices.Clone(req.LabelIDs)
	if labelIDs == nil {
		labelIDs = []string{}
	}

	now := timeNow()
	task := &models.Task{
		ID:        newTaskID(),
		Title:     strings.TrimSpace(req.Title),
		Kind:      kind,
		Notes:     req.Notes,
		LabelIDs:  labelIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.save(ctx, append(tasks, task)); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTask handles task updates with validation
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
	}
	if req.Kind != nil {
		if *req.Kind == "" {
			return nil, errInvalidKind(*req.Kind)
		}
		if err := validateKind(*req.Kind); err != nil {
			return nil, err
		}
	}

	tasks, idx, err := s.find(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	task := tasks[idx]

	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Kind != nil {
		task.Kind = *req.Kind
	}
	if req.Notes != nil {
		task.Notes = *req.Notes
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	task.UpdatedAt = timeNow()

	if err := s.save(ctx, tasks); err != nil {
		return nil, err
	}
	return task, nil
}

// DeleteTask removes a task
func (s *service) DeleteTask(ctx context.Context, id string) error {
	tasks, idx, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.save(ctx, slices.Delete(tasks, idx, idx+1))
}

// SetLabelIDs replaces a task's label set. Invalid sets leave the task untouched.
func (s *service) SetLabelIDs(ctx context.Context, taskID string, labelIDs []string) (*models.Task, error) {
	tasks, idx, err := s.find(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if err := ValidateLabelIDs(labelIDs); err != nil {
		return nil, err
	}

	task := tasks[idx]
	task.LabelIDs = slices.Clone(labelIDs)
	if task.LabelIDs == nil {
		task.LabelIDs = []string{}
	}
	task.UpdatedAt = timeNow()

	if err := s.save(ctx, tasks); err != nil {
		return nil, err
	}
	return task, nil
}

// AddLabel attaches labelID to a task. Adding a label the task already
// carries is a no-op.
func (s *service) AddLabel(ctx context.Context, taskID, labelID string) (*models.Task, error) {
	if strings.TrimSpace(labelID) == "" {
		return nil, errEmptyLabelID()
	}
	tasks, idx, err := s.find(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task := tasks[idx]
	if task.HasLabel(labelID) {
		return task, nil
	}
	if len(task.LabelIDs) >= models.MaxLabelsPerTask {
		return nil, errTooManyLabels(len(task.LabelIDs) + 1)
	}

	task.LabelIDs = append(task.LabelIDs, labelID)
	task.UpdatedAt = timeNow()

	if err := s.save(ctx, tasks); err != nil {
		return nil, err
	}
	return task, nil
}

// RemoveLabel detaches labelID from a task. Removing a label the task
// doesn't carry is a no-op.
func (s *service) RemoveLabel(ctx context.Context, taskID, labelID string) (*models.Task, error) {
	tasks, idx, err := s.find(ctx, taskID)
	if err != nil {
		return nil, err
	}

	task := tasks[idx]
	if !task.HasLabel(labelID) {
		return task, nil
	}
	task.LabelIDs = slices.DeleteFunc(task.LabelIDs, func(id string) bool { return id == labelID })
	task.UpdatedAt = timeNow()

	if err := s.save(ctx, tasks); err != nil {
		return nil, err
	}
	return task, nil
}

// GetTasksByLabels returns tasks matching labelIDs under op.
// AND means the task carries every id; OR means at least one.
// An empty id list matches nothing.
func (s *service) GetTasksByLabels(ctx context.Context, labelIDs []string, op models.Operator) ([]*models.Task, error) {
	parsed, err := filter.ParseOperator(string(op))
	if err != nil {
		return nil, err
	}
	tasks, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Select(tasks, labelIDs, parsed, filter.MatchNone), nil
}

// RemoveLabelFromAllTasks strips labelID from every task and returns how
// many tasks changed. Nothing is written when no task carried it.
func (s *service) RemoveLabelFromAllTasks(ctx context.Context, labelID string) (int, error) {
	return s.stripLabels(ctx, func(id string) bool { return id == labelID })
}

// PruneLabelReferences removes every label id that isn't in known.
// It repairs tasks left behind by an interrupted label delete.
func (s *service) PruneLabelReferences(ctx context.Context, knownLabelIDs []string) (int, error) {
	known := make(map[string]struct{}, len(knownLabelIDs))
	for _, id := range knownLabelIDs {
		known[id] = struct{}{}
	}
	return s.stripLabels(ctx, func(id string) bool {
		_, ok := known[id]
		return !ok
	})
}

func (s *service) stripLabels(ctx context.Context, drop func(string) bool) (int, error) {
	tasks, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	now := timeNow()
	changed := 0
	for _, t := range tasks {
		before := len(t.LabelIDs)
		t.LabelIDs = slices.DeleteFunc(t.LabelIDs, drop)
		if len(t.LabelIDs) != before {
			t.UpdatedAt = now
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}

	if err := s.save(ctx, tasks); err != nil {
		return 0, err
	}
	return changed, nil
}

// GetLabelUsageCount returns how many tasks carry labelID
func (s *service) GetLabelUsageCount(ctx context.Context, labelID string) (int, error) {
	counts, err := s.LabelUsageCounts(ctx)
	if err != nil {
		return 0, err
	}
	return counts[labelID], nil
}

// LabelUsageCounts returns the usage count of every label that is in use
func (s *service) LabelUsageCounts(ctx context.Context) (map[string]int, error) {
	tasks, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return filter.CountByLabel(tasks), nil
}
