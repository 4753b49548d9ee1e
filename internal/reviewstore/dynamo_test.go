package reviewstore

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duallane/go-shop-api/internal/config"
)

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(context.Background(), config.ReviewConfig{Backend: "mongodb"}, nil, slog.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongodb")
}

// The sort key layout is fixed-width so that lexicographic order matches
// chronological order; RFC3339Nano trims trailing zeros and would not.
func TestDynamoTimeLayoutSortsLexicographically(t *testing.T) {
	times := []time.Time{
		time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC),
		time.Date(2025, 6, 1, 9, 30, 0, 100_000_000, time.UTC),
		time.Date(2025, 6, 1, 9, 30, 1, 0, time.UTC),
		time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 23, 59, 59, 999_000_000, time.UTC),
	}

	var prev string
	for _, ts := range times {
		stamp := ts.Format(dynamoTimeLayout)
		assert.Len(t, stamp, len("2006-01-02T15:04:05.000Z"))
		assert.Greater(t, stamp, prev)
		prev = stamp
	}
}

func TestDynamoReviewToModel(t *testing.T) {
	item := dynamoReview{
		ProductID: "7",
		SortKey:   "2025-06-01T09:30:00.000Z#3",
		ReviewID:  "ab3f9c2e",
		UserID:    3,
		UserName:  "Ann",
		Rating:    5,
		Content:   "great",
		CreatedAt: "2025-06-01T09:30:00.000Z",
	}

	review, err := item.toModel()
	require.NoError(t, err)
	assert.Equal(t, int64(7), review.ProductID)
	assert.Equal(t, "ab3f9c2e", review.ID)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC), review.CreatedAt)
	assert.Equal(t, []string{}, review.ImageURLs, "missing image list reads back empty")
}

func TestDynamoReviewToModelBadTimestamp(t *testing.T) {
	item := dynamoReview{ProductID: "1", CreatedAt: "not-a-time"}

	_, err := item.toModel()
	require.Error(t, err)
}
