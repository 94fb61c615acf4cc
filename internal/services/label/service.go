package label

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/thenoetrevino/tally/internal/events"
	"github.com/thenoetrevino/tally/internal/models"
	"github.com/thenoetrevino/tally/internal/storage"
)

var timeNow = func() time.Time { return time.Now().UTC() }

// Service defines all label-related business operations
type Service interface {
	// Read operations
	ListLabels(ctx context.Context) ([]*models.Label, error)
	GetLabelByID(ctx context.Context, id string) (*models.Label, error)
	SearchLabels(ctx context.Context, query string) ([]*models.Label, error)
	LabelExists(ctx context.Context, name string) (bool, error)

	// Write operations
	CreateLabel(ctx context.Context, req CreateLabelRequest) (*models.Label, error)
	UpdateLabel(ctx context.Context, req UpdateLabelRequest) (*models.Label, error)
	DeleteLabel(ctx context.Context, id string) error
}

// TaskUnlinker strips a deleted label from every task.
// The task service implements it.
type TaskUnlinker interface {
	RemoveLabelFromAllTasks(ctx context.Context, labelID string) (int, error)
}

// CreateLabelRequest encapsulates data for creating a label
type CreateLabelRequest struct {
	Name  string
	Color string // Hex color like #FF5733 or #F53
}

// UpdateLabelRequest encapsulates data for updating a label.
// Nil fields are left unchanged.
type UpdateLabelRequest struct {
	ID    string
	Name  *string
	Color *string
}

// service implements Service interface
type service struct {
	labels      *storage.Collection[*models.Label]
	unlinker    TaskUnlinker
	eventClient events.EventPublisher
}

// NewService creates a new label service.
// unlinker and eventClient may be nil.
func NewService(store storage.Store, unlinker TaskUnlinker, eventClient events.EventPublisher) Service {
	return &service{
		labels:      storage.NewCollection[*models.Label](store, storage.KeyLabels, storage.LabelsVersion),
		unlinker:    unlinker,
		eventClient: eventClient,
	}
}

// ListLabels returns every label sorted by name
func (s *service) ListLabels(ctx context.Context) ([]*models.Label, error) {
	labels, err := s.labels.Load(ctx)
	if err != nil {
		return nil, err
	}
	sortByName(labels)
	return labels, nil
}

// GetLabelByID retrieves a single label
func (s *service) GetLabelByID(ctx context.Context, id string) (*models.Label, error) {
	labels, err := s.labels.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(labels, id)
	if idx < 0 {
		return nil, errLabelNotFound(id)
	}
	return labels[idx], nil
}

// SearchLabels matches query case-insensitively against name and color.
// A blank query returns every label.
func (s *service) SearchLabels(ctx context.Context, query string) ([]*models.Label, error) {
	labels, err := s.ListLabels(ctx)
	if err != nil {
		return nil, err
	}
	return MatchLabels(labels, query), nil
}

// MatchLabels keeps the labels whose name or color contains query,
// ignoring case. A blank query keeps all of them.
func MatchLabels(labels []*models.Label, query string) []*models.Label {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return labels
	}

	matches := make([]*models.Label, 0, len(labels))
	for _, l := range labels {
		if strings.Contains(strings.ToLower(l.Name), q) || strings.Contains(strings.ToLower(l.Color), q) {
			matches = append(matches, l)
		}
	}
	return matches
}

// LabelExists reports whether a label with this name exists (case-insensitive, trimmed)
func (s *service) LabelExists(ctx context.Context, name string) (bool, error) {
	labels, err := s.labels.Load(ctx)
	if err != nil {
		return false, err
	}
	return findByName(labels, name) != nil, nil
}

// CreateLabel creates a new label with validation
func (s *service) CreateLabel(ctx context.Context, req CreateLabelRequest) (*models.Label, error) {
	// Validate request before touching storage
	if err := ValidateLabel(req.Name, req.Color).Err(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)

	labels, err := s.labels.Load(ctx)
	if err != nil {
		return nil, err
	}
	if findByName(labels, name) != nil {
		return nil, errDuplicateName(name)
	}
	if len(labels) >= maxLabels {
		return nil, errLabelLimit()
	}

	now := timeNow()
	label := &models.Label{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     strings.TrimSpace(req.Color),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.labels.Save(ctx, append(labels, label)); err != nil {
		slog.Error("failed to save label", "name", name, "error", err)
		return nil, err
	}

	events.Notify(s.eventClient, events.EventLabelsChanged)
	return label, nil
}

// UpdateLabel updates an existing label
func (s *service) UpdateLabel(ctx context.Context, req UpdateLabelRequest) (*models.Label, error) {
	// Validate fields if provided
	var result ValidationResult
	if req.Name != nil {
		validateName(&result, *req.Name)
	}
	if req.Color != nil {
		validateColor(&result, *req.Color)
	}
	if err := result.Err(); err != nil {
		return nil, err
	}

	labels, err := s.labels.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(labels, req.ID)
	if idx < 0 {
		return nil, errLabelNotFound(req.ID)
	}
	existing := labels[idx]

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if other := findByName(labels, name); other != nil && other.ID != existing.ID {
			return nil, errDuplicateName(name)
		}
		existing.Name = name
	}
	if req.Color != nil {
		existing.Color = strings.TrimSpace(*req.Color)
	}
	existing.UpdatedAt = timeNow()

	if err := s.labels.Save(ctx, labels); err != nil {
		slog.Error("failed to save label", "id", req.ID, "error", err)
		return nil, err
	}

	events.Notify(s.eventClient, events.EventLabelsChanged)
	return existing, nil
}

// DeleteLabel deletes a label, then removes it from every task.
// The two writes are not atomic: if the second fails the label is gone but
// tasks may still reference it, and the returned error says so.
func (s *service) DeleteLabel(ctx context.Context, id string) error {
	labels, err := s.labels.Load(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(labels, id)
	if idx < 0 {
		return errLabelNotFound(id)
	}

	if err := s.labels.Save(ctx, slices.Delete(labels, idx, idx+1)); err != nil {
		slog.Error("failed to delete label", "id", id, "error", err)
		return err
	}
	events.Notify(s.eventClient, events.EventLabelsChanged)

	if s.unlinker == nil {
		return nil
	}
	changed, err := s.unlinker.RemoveLabelFromAllTasks(ctx, id)
	if err != nil {
		slog.Error("label deleted but task cleanup failed", "id", id, "error", err)
		return errCleanupIncomplete(id, err)
	}
	slog.Debug("label deleted", "id", id, "tasks_updated", changed)
	return nil
}

func indexOf(labels []*models.Label, id string) int {
	return slices.IndexFunc(labels, func(l *models.Label) bool { return l.ID == id })
}

func findByName(labels []*models.Label, name string) *models.Label {
	key := normalizeName(name)
	for _, l := range labels {
		if normalizeName(l.Name) == key {
			return l
		}
	}
	return nil
}

func sortByName(labels []*models.Label) {
	sort.SliceStable(labels, func(i, j int) bool {
		return strings.ToLower(labels[i].Name) < strings.ToLower(labels[j].Name)
	})
}
