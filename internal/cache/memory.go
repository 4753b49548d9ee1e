package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

const sweepInterval = time.Minute

type memoryEntry struct {
	data     []byte
	expireAt time.Time
}

// memoryCache holds JSON-encoded entries in a map. Expired entries are
// evicted lazily on Get and by a once-a-minute sweep, so keys that are never
// read again do not accumulate.
type memoryCache struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	defaultTTL time.Duration
	now        func() time.Time
	done       chan struct{}
	once       sync.Once
}

func newMemoryCache(defaultTTL time.Duration) *memoryCache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	c := &memoryCache{
		entries:    make(map[string]memoryEntry),
		defaultTTL: defaultTTL,
		now:        time.Now,
		done:       make(chan struct{}),
	}
	go c.sweep()
	return c
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && c.now().After(entry.expireAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return true, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	c.mu.Lock()
	c.entries[key] = memoryEntry{data: data, expireAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *memoryCache) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			c.evictExpired()
		case <-c.done:
			return
		}
	}
}

func (c *memoryCache) evictExpired() {
	now := c.now()
	c.mu.Lock()
	for key, entry := range c.entries {
		if now.After(entry.expireAt) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}
