package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/duallane/go-shop-api/internal/cache"
	"github.com/duallane/go-shop-api/internal/model"
	"github.com/duallane/go-shop-api/internal/reviewstore"
)

const reviewListTTL = 60 * time.Second

// ReviewService validates review input, reads through the cache, and
// invalidates exactly the written product's list key on create.
type ReviewService struct {
	store reviewstore.Store
	cache cache.Cache
	log   *slog.Logger
}

func NewReviewService(store reviewstore.Store, c cache.Cache, log *slog.Logger) *ReviewService {
	return &ReviewService{store: store, cache: c, log: log}
}

func reviewCacheKey(productID int64) string {
	return fmt.Sprintf("reviews:%d", productID)
}

func (s *ReviewService) ListByProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	key := reviewCacheKey(productID)

	var cached []model.Review
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.log.Warn("review cache read failed", "key", key, "error", err)
	} else if hit {
		return cached, nil
	}

	reviews, err := s.store.ListByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	if err := s.cache.Set(ctx, key, reviews, reviewListTTL); err != nil {
		s.log.Warn("review cache write failed", "key", key, "error", err)
	}
	return reviews, nil
}

func (s *ReviewService) Create(ctx context.Context, in reviewstore.Input) (*model.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrInvalidRating
	}
	in.Content = strings.TrimSpace(in.Content)
	if in.Content == "" {
		return nil, ErrEmptyContent
	}
	if in.ImageURLs == nil {
		in.ImageURLs = []string{}
	}

	review, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := s.cache.Delete(ctx, reviewCacheKey(in.ProductID)); err != nil {
		s.log.Warn("review cache invalidation failed", "product_id", in.ProductID, "error", err)
	}
	return review, nil
}
