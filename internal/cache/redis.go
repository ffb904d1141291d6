package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the Store used when REDIS_ADDR is configured, so cache
// entries and invalidations are shared across API instances.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis and verifies it is reachable.
func NewRedisStore(ctx context.Context, addr, password string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache.NewRedisStore: ping: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// Get returns the cached bytes for the key. An absent key is a miss, not
// an error.
func (r *RedisStore) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, fullKey(namespace, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache.RedisStore.Get: %w", err)
	}
	return val, true, nil
}

// Set stores value under the key with the given TTL.
func (r *RedisStore) Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, fullKey(namespace, key), value, ttl).Err(); err != nil {
		return fmt.Errorf("cache.RedisStore.Set: %w", err)
	}
	return nil
}

// Delete removes a single key.
func (r *RedisStore) Delete(ctx context.Context, namespace, key string) error {
	if err := r.client.Del(ctx, fullKey(namespace, key)).Err(); err != nil {
		return fmt.Errorf("cache.RedisStore.Delete: %w", err)
	}
	return nil
}

// InvalidatePattern removes every key in the namespace matching the
// pattern, walking the keyspace with SCAN rather than the blocking KEYS.
func (r *RedisStore) InvalidatePattern(ctx context.Context, namespace, pattern string) error {
	iter := r.client.Scan(ctx, 0, fullKey(namespace, pattern), 100).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache.RedisStore.InvalidatePattern: del: %w", err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("cache.RedisStore.InvalidatePattern: scan: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
