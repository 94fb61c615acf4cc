package models

import (
	"slices"
	"strings"
)

// Operator combines multiple selected labels in a filter
type Operator string

const (
	// OperatorAnd requires every selected label to be present
	OperatorAnd Operator = "AND"
	// OperatorOr requires at least one selected label to be present
	OperatorOr Operator = "OR"
)

// Valid reports whether op is AND or OR
func (op Operator) Valid() bool {
	return op == OperatorAnd || op == OperatorOr
}

// Toggle returns the other operator
func (op Operator) Toggle() Operator {
	if op == OperatorAnd {
		return OperatorOr
	}
	return OperatorAnd
}

// FilterState is the transient label filter held by the UI layer.
// SelectedLabelIDs behaves as a set; insertion order is kept for display.
type FilterState struct {
	SelectedLabelIDs []string
	Operator         Operator
}

// NewFilterState returns an empty filter using the OR operator
func NewFilterState() *FilterState {
	return &FilterState{Operator: OperatorOr}
}

// IsActive reports whether any label is selected
func (f *FilterState) IsActive() bool {
	return len(f.SelectedLabelIDs) > 0
}

// IsSelected reports whether labelID is part of the selection
func (f *FilterState) IsSelected(labelID string) bool {
	return slices.Contains(f.SelectedLabelIDs, labelID)
}

// Toggle adds labelID to the selection or removes it when already present
func (f *FilterState) Toggle(labelID string) {
	if idx := slices.Index(f.SelectedLabelIDs, labelID); idx >= 0 {
		f.SelectedLabelIDs = slices.Delete(f.SelectedLabelIDs, idx, idx+1)
		return
	}
	f.SelectedLabelIDs = append(f.SelectedLabelIDs, labelID)
}

// Clear drops the selection but keeps the operator
func (f *FilterState) Clear() {
	f.SelectedLabelIDs = nil
}

// String renders the filter for status lines, e.g. "AND(a,b)"
func (f *FilterState) String() string {
	if !f.IsActive() {
		return "none"
	}
	var b strings.Builder
	b.WriteString(string(f.Operator))
	b.WriteString("(")
	b.WriteString(strings.Join(f.SelectedLabelIDs, ","))
	b.WriteString(")")
	return b.String()
}
