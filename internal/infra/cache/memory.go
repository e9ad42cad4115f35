package cache

import (
	"context"
	"sync"
	"time"

	"table-concierge/internal/pkg/clock"
)

type item struct {
	value     []byte
	expiresAt time.Time
}

// MemoryBucketCache is the single-process fallback when Redis is not configured.
type MemoryBucketCache struct {
	mu    sync.Mutex
	items map[string]item
	clock clock.Clock
}

func NewMemoryBucketCache(clk clock.Clock) *MemoryBucketCache {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &MemoryBucketCache{items: make(map[string]item), clock: clk}
}

func (c *MemoryBucketCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	it, ok := c.items[key]
	if !ok {
		return nil, false, nil
	}
	if !c.clock.Now().Before(it.expiresAt) {
		delete(c.items, key)
		return nil, false, nil
	}
	return it.value, true, nil
}

func (c *MemoryBucketCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = item{value: value, expiresAt: c.clock.Now().Add(ttl)}
	return nil
}

func (c *MemoryBucketCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}
