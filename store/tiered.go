package store

import "context"

var _ Store = (*TieredStore)(nil)

// TieredStore writes through to a persistent Store and serves reads from
// memory when it can. The persistent store is authoritative.
type TieredStore struct {
	memory     *MemoryStore
	persistent Store
}

// NewTieredStore puts a fresh MemoryStore in front of persistent.
func NewTieredStore(persistent Store) *TieredStore {
	return &TieredStore{
		memory:     NewMemoryStore(),
		persistent: persistent,
	}
}

func (t *TieredStore) Increment(ctx context.Context, kind string, b Bucket) (int64, error) {
	hits, err := t.persistent.Increment(ctx, kind, b)
	if err != nil {
		return 0, err
	}
	t.memory.set(kind, b, hits)
	return hits, nil
}

// Get answers from memory and falls back to the persistent store on a miss,
// backfilling memory with what it finds.
func (t *TieredStore) Get(ctx context.Context, kind string, b Bucket) (int64, error) {
	if hits, _ := t.memory.Get(ctx, kind, b); hits > 0 {
		return hits, nil
	}

	hits, err := t.persistent.Get(ctx, kind, b)
	if err != nil {
		return 0, err
	}
	if hits > 0 {
		t.memory.set(kind, b, hits)
	}
	return hits, nil
}

func (t *TieredStore) Reset(ctx context.Context, kind string) error {
	_ = t.memory.Reset(ctx, kind)
	return t.persistent.Reset(ctx, kind)
}

// Close closes the persistent store.
func (t *TieredStore) Close() error {
	return t.persistent.Close()
}
