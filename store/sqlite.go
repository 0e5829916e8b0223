package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

var _ Store = (*SQLiteStore)(nil)

const usageSchema = `
CREATE TABLE IF NOT EXISTS nsapi_usage (
	kind         TEXT PRIMARY KEY,
	bucket       TEXT NOT NULL,
	hits         INTEGER NOT NULL,
	span_seconds INTEGER NOT NULL,
	updated_at   TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// The counter restarts at one whenever the stored bucket differs from the
// incoming one.
const usageIncrement = `
INSERT INTO nsapi_usage (kind, bucket, hits, span_seconds)
VALUES (?, ?, 1, ?)
ON CONFLICT(kind) DO UPDATE SET
	hits = CASE WHEN nsapi_usage.bucket = excluded.bucket THEN nsapi_usage.hits + 1 ELSE 1 END,
	bucket = excluded.bucket,
	span_seconds = excluded.span_seconds,
	updated_at = CURRENT_TIMESTAMP
RETURNING hits`

// SQLiteStore keeps counters in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database at dsn. ":memory:" gives a
// private in-memory database.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("nsapi/store: open sqlite: %w", err)
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(usageSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("nsapi/store: create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Increment(ctx context.Context, kind string, b Bucket) (int64, error) {
	var hits int64
	err := s.db.QueryRowContext(ctx, usageIncrement, kind, b.Key, int64(b.Span.Seconds())).Scan(&hits)
	if err != nil {
		return 0, fmt.Errorf("nsapi/store: increment %s: %w", kind, err)
	}
	return hits, nil
}

func (s *SQLiteStore) Get(ctx context.Context, kind string, b Bucket) (int64, error) {
	var hits int64
	err := s.db.QueryRowContext(ctx,
		`SELECT hits FROM nsapi_usage WHERE kind = ? AND bucket = ?`, kind, b.Key,
	).Scan(&hits)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("nsapi/store: get %s: %w", kind, err)
	}
	return hits, nil
}

func (s *SQLiteStore) Reset(ctx context.Context, kind string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM nsapi_usage WHERE kind = ?`, kind); err != nil {
		return fmt.Errorf("nsapi/store: reset %s: %w", kind, err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
