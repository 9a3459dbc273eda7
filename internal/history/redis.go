package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the history blob under a single redis key. SET replaces
// the value atomically.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// NewRedisStoreFromURL connects using a redis:// URL.
func NewRedisStoreFromURL(url, key string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return NewRedisStore(redis.NewClient(opts), key), nil
}

// Load reads the history blob. A missing key is an empty history.
func (r *RedisStore) Load(ctx context.Context) ([]Entry, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read history from redis: %w", err)
	}
	return decode(data)
}

// Replace overwrites the history blob.
func (r *RedisStore) Replace(ctx context.Context, entries []Entry) error {
	data, err := encode(entries)
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to write history to redis: %w", err)
	}
	return nil
}

// Ping checks the redis connection.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
