package domain

import (
	"context"
	"time"
)

// CatalogIndex is the read-only view of the loaded reference catalog.
// Pools are process-lifetime snapshots built once at startup; callers must
// not mutate the returned slices, which makes concurrent reads lock-free.
type CatalogIndex interface {
	// NamePool returns all catalog product names in load order.
	NamePool() []string

	// CompositionPool returns the distinct non-empty derived composition
	// strings in first-seen order.
	CompositionPool() []string

	// Lookup resolves a matched string back to its full catalog record.
	// When multiple records share the same value for the field, the record
	// with the lowest row index wins.
	Lookup(field MatchField, text string) (CatalogRecord, bool)

	// Size returns the number of loaded records.
	Size() int
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	GetOrSet(ctx context.Context, key string, value interface{}, ttl time.Duration) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
