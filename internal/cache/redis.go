package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/duallane/go-shop-api/internal/config"
)

const (
	connectAttempts = 3
	connectBackoff  = 2 * time.Second
)

// redisCache talks to a remote Redis server. The connection is established
// lazily on first use with a bounded number of fixed-backoff attempts; a
// connection that still cannot be made surfaces as an error from the call,
// not as a silent miss.
type redisCache struct {
	cfg config.CacheConfig
	log *slog.Logger

	mu     sync.Mutex
	client *redis.Client
}

func newRedisCache(cfg config.CacheConfig, log *slog.Logger) *redisCache {
	return &redisCache{cfg: cfg, log: log}
}

func (c *redisCache) connect(ctx context.Context) (*redis.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     c.cfg.RedisAddr,
		Password: c.cfg.RedisPassword,
		DB:       c.cfg.RedisDB,
	})

	var err error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		if err = client.Ping(ctx).Err(); err == nil {
			c.log.Info("connected to redis", "addr", c.cfg.RedisAddr)
			c.client = client
			return client, nil
		}
		c.log.Warn("redis connection failed", "attempt", attempt, "error", err)
		if attempt < connectAttempts {
			select {
			case <-time.After(connectBackoff):
			case <-ctx.Done():
				client.Close()
				return nil, ctx.Err()
			}
		}
	}
	client.Close()
	return nil, fmt.Errorf("connect to redis: %w", err)
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return false, err
	}

	data, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get: %w", err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.cfg.DefaultTTL
		if ttl <= 0 {
			ttl = DefaultTTL
		}
	}
	client, err := c.connect(ctx)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	if err := client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	client, err := c.connect(ctx)
	if err != nil {
		return err
	}
	if err := client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (c *redisCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
