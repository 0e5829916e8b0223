package store

import (
	"context"
	"time"
)

// Bucket identifies one window-aligned counting period.
type Bucket struct {
	Span  time.Duration
	Key   string
	Start time.Time
}

// Store is a backend for usage counters keyed by resource kind.
type Store interface {
	// Increment adds one to the counter for kind in bucket b and returns the
	// new value. A counter left over from an older bucket starts again at one.
	Increment(ctx context.Context, kind string, b Bucket) (int64, error)

	// Get returns the counter for kind in bucket b, zero if it has none.
	Get(ctx context.Context, kind string, b Bucket) (int64, error)

	// Reset drops the counter for kind.
	Reset(ctx context.Context, kind string) error

	// Close releases any resources held by the store.
	Close() error
}
