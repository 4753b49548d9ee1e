// Package cache is a key/value store with per-entry TTL behind one contract,
// backed either by a process-local map or by a remote Redis server. Both
// backends JSON-encode stored values, so a reader always gets an equivalent
// value back, never the writer's reference.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/duallane/go-shop-api/internal/config"
)

// DefaultTTL applies when a caller passes a zero or negative TTL.
const DefaultTTL = 300 * time.Second

type Cache interface {
	// Get unmarshals the entry under key into dest and reports whether a
	// live entry existed. An expired entry behaves as a miss and is evicted.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value under key, unconditionally replacing any existing
	// entry.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New selects the configured backend. An unknown identifier fails fast.
func New(cfg config.CacheConfig, log *slog.Logger) (Cache, error) {
	switch cfg.Backend {
	case config.CacheBackendMemory:
		return newMemoryCache(cfg.DefaultTTL), nil
	case config.CacheBackendRedis:
		return newRedisCache(cfg, log), nil
	default:
		return nil, fmt.Errorf("unsupported CACHE_BACKEND %q", cfg.Backend)
	}
}
