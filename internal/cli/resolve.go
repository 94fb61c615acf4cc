package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/thenoetrevino/tally/internal/apperrors"
	"github.com/thenoetrevino/tally/internal/models"
	labelservice "github.com/thenoetrevino/tally/internal/services/label"
	taskservice "github.com/thenoetrevino/tally/internal/services/task"
)

// ResolveLabel finds a label by id, falling back to a case-insensitive name match
func ResolveLabel(ctx context.Context, svc labelservice.Service, ref string) (*models.Label, error) {
	ref = strings.TrimSpace(ref)
	l, err := svc.GetLabelByID(ctx, ref)
	if err == nil || !errors.Is(err, apperrors.ErrNotFound) {
		return l, err
	}

	labels, err := svc.ListLabels(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range labels {
		if strings.EqualFold(l.Name, ref) {
			return l, nil
		}
	}
	return nil, apperrors.NotFound(apperrors.CodeLabelNotFound, "no label with id or name %q", ref)
}

// ResolveLabelIDs resolves every ref to a label id, keeping order
func ResolveLabelIDs(ctx context.Context, svc labelservice.Service, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		l, err := ResolveLabel(ctx, svc, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, l.ID)
	}
	return ids, nil
}

// ResolveTask finds a task by full id or by a unique id suffix, as shown in lists
func ResolveTask(ctx context.Context, svc taskservice.Service, ref string) (*models.Task, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	t, err := svc.GetTask(ctx, ref)
	if err == nil || !errors.Is(err, apperrors.ErrNotFound) {
		return t, err
	}

	tasks, err := svc.ListTasks(ctx, "")
	if err != nil {
		return nil, err
	}
	var match *models.Task
	for _, t := range tasks {
		if ref != "" && strings.HasSuffix(strings.ToUpper(t.ID), ref) {
			if match != nil {
				return nil, &UsageError{Msg: "task id " + ref + " is ambiguous; use more characters"}
			}
			match = t
		}
	}
	if match == nil {
		return nil, apperrors.NotFound(apperrors.CodeTaskNotFound, "task %s not found", ref)
	}
	return match, nil
}

// LabelIndex maps labels by id
func LabelIndex(labels []*models.Label) map[string]*models.Label {
	idx := make(map[string]*models.Label, len(labels))
	for _, l := range labels {
		idx[l.ID] = l
	}
	return idx
}
