// Package cache provides the bounded in-process TTL cache used for expensive
// discovery queries. Entries are encoded payloads replaced wholesale on Set.
// A Get past expiry is a miss. The cache is created at process start and is
// never persisted.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/emzola/shelfwise/internal/metrics"
	"github.com/jellydator/ttlcache/v3"
)

// DefaultCapacity bounds the number of entries when no capacity is configured.
const DefaultCapacity = 1024

// Cache is a bounded key->payload store with per-entry expiry. Once full, the
// least recently used entry is evicted; expired entries are removed by the sweeper
// started in Serve.
type Cache struct {
	items *ttlcache.Cache[string, []byte]
}

// New creates a cache holding at most capacity entries.
func New(capacity uint64) *Cache {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	items := ttlcache.New[string, []byte](
		ttlcache.WithCapacity[string, []byte](capacity),
		ttlcache.WithDisableTouchOnHit[string, []byte](),
	)
	items.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, _ *ttlcache.Item[string, []byte]) {
		metrics.CacheEvictions.WithLabelValues(evictionReason(reason)).Inc()
	})
	return &Cache{items: items}
}

// Get returns the payload stored under key if present and unexpired.
func (c *Cache) Get(key string) ([]byte, bool) {
	item := c.items.Get(key)
	if item == nil || item.IsExpired() {
		metrics.CacheMisses.WithLabelValues(prefix(key)).Inc()
		return nil, false
	}
	metrics.CacheHits.WithLabelValues(prefix(key)).Inc()
	return item.Value(), true
}

// Set stores payload under key, replacing any existing entry. The entry expires
// ttl after the call.
func (c *Cache) Set(key string, payload []byte, ttl time.Duration) {
	c.items.Set(key, payload, ttl)
}

// Len returns the number of entries held, including expired ones not yet swept.
func (c *Cache) Len() int {
	return c.items.Len()
}

// Serve runs the expiry sweeper until ctx is cancelled.
func (c *Cache) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		c.items.Stop()
	}()
	c.items.Start()
	return ctx.Err()
}

func (c *Cache) String() string {
	return "cache-sweeper"
}

func prefix(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i]
	}
	return key
}

func evictionReason(reason ttlcache.EvictionReason) string {
	switch reason {
	case ttlcache.EvictionReasonExpired:
		return "expired"
	case ttlcache.EvictionReasonCapacityReached:
		return "capacity"
	default:
		return "deleted"
	}
}
