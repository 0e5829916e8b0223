package store

import (
	"context"
	"sync"
)

type counter struct {
	hits   int64
	bucket string
}

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps counters in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]counter
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[string]counter)}
}

func (m *MemoryStore) Increment(_ context.Context, kind string, b Bucket) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := m.counters[kind]
	if c.bucket != b.Key {
		c = counter{bucket: b.Key}
	}
	c.hits++
	m.counters[kind] = c
	return c.hits, nil
}

func (m *MemoryStore) Get(_ context.Context, kind string, b Bucket) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.counters[kind]
	if !ok || c.bucket != b.Key {
		return 0, nil
	}
	return c.hits, nil
}

// set overwrites a counter; used by TieredStore to backfill.
func (m *MemoryStore) set(kind string, b Bucket, hits int64) {
	m.mu.Lock()
	m.counters[kind] = counter{hits: hits, bucket: b.Key}
	m.mu.Unlock()
}

func (m *MemoryStore) Reset(_ context.Context, kind string) error {
	m.mu.Lock()
	delete(m.counters, kind)
	m.mu.Unlock()
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}
