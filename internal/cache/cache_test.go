package cache

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duallane/go-shop-api/internal/config"
)

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(config.CacheConfig{Backend: "memcached"}, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "memcached")
}

func TestNew_MemoryBackend(t *testing.T) {
	c, err := New(config.CacheConfig{Backend: config.CacheBackendMemory}, slog.Default())
	require.NoError(t, err)
	require.NotNil(t, c)
	_ = c.Close()
}
