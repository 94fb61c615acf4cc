package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/thenoetrevino/tally/internal/apperrors"
)

// Envelope is the on-disk layout of a collection blob.
type Envelope[T any] struct {
	Version     int       `json:"version"`
	Items       []T       `json:"items"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Collection reads and writes a whole collection under one key.
// Every Save replaces the full blob; there is no partial update and no
// locking, so concurrent writers are last-write-wins.
type Collection[T any] struct {
	store   Store
	key     string
	version int
	now     func() time.Time
}

// NewCollection binds a collection of T to key
func NewCollection[T any](store Store, key string, version int) *Collection[T] {
	return &Collection[T]{
		store:   store,
		key:     key,
		version: version,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Key returns the storage key of the collection
func (c *Collection[T]) Key() string {
	return c.key
}

// Load returns every item. A missing blob is an empty collection.
// A bare JSON array is accepted as the pre-envelope layout.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, ok, err := c.store.GetItem(ctx, c.key)
	if err != nil {
		return nil, apperrors.Storage(apperrors.CodeStorageRead, err, "failed to read %s", c.key)
	}
	raw = bytes.TrimSpace(raw)
	if !ok || len(raw) == 0 {
		return []T{}, nil
	}

	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, apperrors.Storage(apperrors.CodeStorageCorrupt, err, "corrupt data in %s", c.key)
		}
		if items == nil {
			items = []T{}
		}
		return items, nil
	}

	var env Envelope[T]
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, apperrors.Storage(apperrors.CodeStorageCorrupt, err, "corrupt data in %s", c.key)
	}
	if env.Items == nil {
		env.Items = []T{}
	}
	return env.Items, nil
}

// Save replaces the whole collection and stamps lastUpdated
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	env := Envelope[T]{
		Version:     c.version,
		Items:       items,
		LastUpdated: c.now(),
	}
	b, err := json.Marshal(env)
	if err != nil {
		return apperrors.Storage(apperrors.CodeStorageWrite, err, "failed to encode %s", c.key)
	}
	if err := c.store.SetItem(ctx, c.key, b); err != nil {
		return apperrors.Storage(apperrors.CodeStorageWrite, err, "failed to write %s", c.key)
	}
	return nil
}
