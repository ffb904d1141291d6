package cache

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/viccon/sturdyc"
)

// memoryCapacity bounds the in-process cache; sturdyc evicts a
// percentage of each shard when a shard fills.
const (
	memoryCapacity  = 10000
	memoryShards    = 64
	memoryEvictPct  = 10
	memoryClientTTL = time.Hour // eviction backstop; real expiry is per-entry
)

// memEntry carries the cached bytes plus its own deadline. sturdyc's TTL
// is per-client, not per-call, so per-query-type TTLs are enforced here:
// an entry past its deadline reads as a miss.
type memEntry struct {
	Value     []byte
	ExpiresAt time.Time
}

// MemoryStore is the in-process Store used when no Redis address is
// configured. Suitable for a single API instance; multi-instance deploys
// should use the Redis store so invalidations reach every instance.
type MemoryStore struct {
	client *sturdyc.Client[memEntry]
}

// NewMemoryStore builds an in-process store with a fixed capacity.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		client: sturdyc.New[memEntry](memoryCapacity, memoryShards, memoryClientTTL, memoryEvictPct),
	}
}

// Get returns the cached bytes for the key, treating expired entries as
// misses.
func (m *MemoryStore) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	entry, ok := m.client.Get(fullKey(namespace, key))
	if !ok || time.Now().After(entry.ExpiresAt) {
		return nil, false, nil
	}
	return entry.Value, true, nil
}

// Set stores value under the key with its own per-entry deadline.
func (m *MemoryStore) Set(ctx context.Context, namespace, key string, value []byte, ttl time.Duration) error {
	m.client.Set(fullKey(namespace, key), memEntry{Value: value, ExpiresAt: time.Now().Add(ttl)})
	return nil
}

// Delete removes a single key.
func (m *MemoryStore) Delete(ctx context.Context, namespace, key string) error {
	m.client.Delete(fullKey(namespace, key))
	return nil
}

// InvalidatePattern removes every key in the namespace whose unscoped
// part matches the glob pattern.
func (m *MemoryStore) InvalidatePattern(ctx context.Context, namespace, pattern string) error {
	prefix := namespace + ":"
	for _, k := range m.client.ScanKeys() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		matched, err := path.Match(pattern, strings.TrimPrefix(k, prefix))
		if err != nil {
			return err
		}
		if matched {
			m.client.Delete(k)
		}
	}
	return nil
}

// fullKey scopes a key by its namespace.
func fullKey(namespace, key string) string {
	return namespace + ":" + key
}
