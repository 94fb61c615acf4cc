package testutil

import (
	"context"
	"testing"

	"github.com/thenoetrevino/tally/internal/database"
)

// NewSQLiteStore opens a private in-memory SQLite store with the schema
// applied. It is closed when the test ends.
func NewSQLiteStore(t *testing.T) *database.KVStore {
	t.Helper()

	store, err := database.Open(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})
	return store
}
