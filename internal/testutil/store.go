package testutil

import (
	"context"
	"testing"

	"github.com/thenoetrevino/tally/internal/storage"
)

// SeedBlob writes raw JSON under key, as older versions of the app would have
func SeedBlob(t *testing.T, store storage.Store, key, raw string) {
	t.Helper()

	if err := store.SetItem(context.Background(), key, []byte(raw)); err != nil {
		t.Fatalf("Failed to seed %s: %v", key, err)
	}
}

// ReadBlob returns the raw bytes stored under key, failing when absent
func ReadBlob(t *testing.T, store storage.Store, key string) []byte {
	t.Helper()

	data, ok, err := store.GetItem(context.Background(), key)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", key, err)
	}
	if !ok {
		t.Fatalf("Key %s not found", key)
	}
	return data
}
