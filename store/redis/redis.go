// Package redis provides a usage ledger backed by Redis, for deployments
// where several processes want one view of their transmission counts.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ryhazerus/nsapi/store"
)

var _ store.Store = (*RedisStore)(nil)

const keyPrefix = "nsapi:usage:"

// RedisStore keeps one string counter per kind and bucket. Each counter
// expires one span after its latest hit, so stale buckets clean themselves up.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client. Close closes the client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Open parses a redis:// URL and pings the server before returning.
func Open(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("nsapi/store/redis: parse url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("nsapi/store/redis: ping: %w", err)
	}
	return NewRedisStore(client), nil
}

func (r *RedisStore) Increment(ctx context.Context, kind string, b store.Bucket) (int64, error) {
	key := bucketKey(kind, b)

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		incr = p.Incr(ctx, key)
		if b.Span > 0 {
			p.Expire(ctx, key, b.Span)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("nsapi/store/redis: increment %s: %w", kind, err)
	}
	return incr.Val(), nil
}

func (r *RedisStore) Get(ctx context.Context, kind string, b store.Bucket) (int64, error) {
	hits, err := r.client.Get(ctx, bucketKey(kind, b)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("nsapi/store/redis: get %s: %w", kind, err)
	}
	return hits, nil
}

// Reset deletes every bucket recorded for kind.
func (r *RedisStore) Reset(ctx context.Context, kind string) error {
	iter := r.client.Scan(ctx, 0, keyPrefix+kind+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("nsapi/store/redis: scan %s: %w", kind, err)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

// Close closes the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

func bucketKey(kind string, b store.Bucket) string {
	return keyPrefix + kind + ":" + b.Key
}
