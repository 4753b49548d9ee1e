package reviewstore

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duallane/go-shop-api/internal/config"
	"github.com/duallane/go-shop-api/internal/database"
)

func newTestLocalStore(t *testing.T) *localStore {
	t.Helper()
	db, err := database.New(context.Background(), config.DBConfig{
		Backend:    config.DBBackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "reviews.db"),
	}, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return newLocalStore(db)
}

func TestLocalStore_CreateAndList(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, Input{
		ProductID: 1,
		UserID:    10,
		UserName:  "Ann",
		Rating:    5,
		Content:   "great keyboard",
		ImageURLs: []string{"/uploads/a.png", "/uploads/b.png"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	reviews, err := store.ListByProduct(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reviews, 1)

	got := reviews[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, int64(10), got.UserID)
	assert.Equal(t, "Ann", got.UserName)
	assert.Equal(t, 5, got.Rating)
	assert.Equal(t, []string{"/uploads/a.png", "/uploads/b.png"}, got.ImageURLs)
}

func TestLocalStore_ListNewestFirst(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, content := range []string{"oldest", "middle", "newest"} {
		offset := time.Duration(i) * time.Minute
		store.now = func() time.Time { return base.Add(offset) }
		_, err := store.Create(ctx, Input{
			ProductID: 1, UserID: int64(i + 1), UserName: "U", Rating: 4, Content: content,
		})
		require.NoError(t, err)
	}

	reviews, err := store.ListByProduct(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reviews, 3)

	assert.Equal(t, "newest", reviews[0].Content)
	assert.Equal(t, "middle", reviews[1].Content)
	assert.Equal(t, "oldest", reviews[2].Content)
	assert.False(t, reviews[0].CreatedAt.Before(reviews[1].CreatedAt))
	assert.False(t, reviews[1].CreatedAt.Before(reviews[2].CreatedAt))
}

func TestLocalStore_SameSecondTieBreaksNewestFirst(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	// Timestamps truncate to seconds, so reviews written within one second
	// share a created_at; the later insert must still list first.
	store.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	for _, content := range []string{"first", "second", "third"} {
		_, err := store.Create(ctx, Input{
			ProductID: 1, UserID: 1, UserName: "U", Rating: 4, Content: content,
		})
		require.NoError(t, err)
	}

	reviews, err := store.ListByProduct(ctx, 1)
	require.NoError(t, err)
	require.Len(t, reviews, 3)
	assert.Equal(t, "third", reviews[0].Content)
	assert.Equal(t, "second", reviews[1].Content)
	assert.Equal(t, "first", reviews[2].Content)
}

func TestLocalStore_NilImageURLsReadBackEmpty(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, Input{
		ProductID: 2, UserID: 1, UserName: "Ann", Rating: 3, Content: "fine",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{}, created.ImageURLs)

	reviews, err := store.ListByProduct(ctx, 2)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, []string{}, reviews[0].ImageURLs)
}

func TestLocalStore_ListScopedToProduct(t *testing.T) {
	store := newTestLocalStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, Input{ProductID: 1, UserID: 1, UserName: "A", Rating: 5, Content: "for one"})
	require.NoError(t, err)
	_, err = store.Create(ctx, Input{ProductID: 2, UserID: 1, UserName: "A", Rating: 2, Content: "for two"})
	require.NoError(t, err)

	reviews, err := store.ListByProduct(ctx, 2)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "for two", reviews[0].Content)
}
