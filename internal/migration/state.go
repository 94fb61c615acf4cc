package migration

import (
	"fmt"
)

// State is the outcome of a migration run.
type State string

const (
	StateUnknown        State = ""
	StateNotNeeded      State = "NOT_NEEDED"
	StateNeedsMigration State = "NEEDS_MIGRATION"
	StateMigrating      State = "MIGRATING"
	StateMigrated       State = "MIGRATED"
	StateFailed         State = "FAILED"
)

// IsTerminal reports whether a run in state s has finished.
func IsTerminal(s State) bool {
	switch s {
	case StateNotNeeded, StateMigrated, StateFailed:
		return true
	default:
		return false
	}
}

func isAllowedTransition(from, to State) bool {
	switch from {
	case StateUnknown:
		return to == StateNotNeeded || to == StateNeedsMigration || to == StateFailed
	case StateNotNeeded:
		// forced runs
		return to == StateNeedsMigration
	case StateNeedsMigration:
		return to == StateMigrating
	case StateMigrating:
		return to == StateMigrated || to == StateFailed
	default:
		return false
	}
}

// tracker holds the state of a single run and rejects illegal moves.
type tracker struct {
	state State
}

func (t *tracker) transition(to State) error {
	if !isAllowedTransition(t.state, to) {
		return fmt.Errorf("disallowed migration transition: %q -> %q", t.state, to)
	}
	t.state = to
	return nil
}
