// Package filter computes label-filtered views over in-memory tasks.
// Nothing here performs I/O.
package filter

import (
	"strings"

	"github.com/thenoetrevino/tally/internal/apperrors"
	"github.com/thenoetrevino/tally/internal/models"
)

// EmptyPolicy decides what an empty label selection matches.
type EmptyPolicy int

const (
	// MatchAll treats "no labels selected" as "no filter"
	MatchAll EmptyPolicy = iota
	// MatchNone treats an explicitly empty id set as matching nothing
	MatchNone
)

// ParseOperator parses "and"/"or" case-insensitively
func ParseOperator(s string) (models.Operator, error) {
	op := models.Operator(strings.ToUpper(strings.TrimSpace(s)))
	if !op.Valid() {
		return "", apperrors.Validation(apperrors.CodeFilterOperatorInvalid,
			"invalid filter operator %q (must be AND or OR)", s)
	}
	return op, nil
}

// Matches reports whether a task carrying labelIDs satisfies selected under op.
// selected must be non-empty; empty selections are resolved by the caller's policy.
func Matches(labelIDs, selected []string, op models.Operator) bool {
	have := make(map[string]struct{}, len(labelIDs))
	for _, id := range labelIDs {
		have[id] = struct{}{}
	}

	if op == models.OperatorAnd {
		for _, id := range selected {
			if _, ok := have[id]; !ok {
				return false
			}
		}
		return true
	}

	for _, id := range selected {
		if _, ok := have[id]; ok {
			return true
		}
	}
	return false
}

// Select returns the tasks matching ids under op, preserving input order.
// An empty ids set is resolved by policy.
func Select(tasks []*models.Task, ids []string, op models.Operator, policy EmptyPolicy) []*models.Task {
	if len(ids) == 0 {
		if policy == MatchAll {
			out := make([]*models.Task, len(tasks))
			copy(out, tasks)
			return out
		}
		return []*models.Task{}
	}

	out := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if Matches(t.LabelIDs, ids, op) {
			out = append(out, t)
		}
	}
	return out
}

// Apply is the UI-facing filter: no labels selected shows every task.
func Apply(tasks []*models.Task, state models.FilterState) []*models.Task {
	op := state.Operator
	if !op.Valid() {
		op = models.OperatorOr
	}
	return Select(tasks, state.SelectedLabelIDs, op, MatchAll)
}

// CountByLabel returns how many of tasks carry each label id
func CountByLabel(tasks []*models.Task) map[string]int {
	counts := make(map[string]int)
	for _, t := range tasks {
		for _, id := range t.LabelIDs {
			counts[id]++
		}
	}
	return counts
}
