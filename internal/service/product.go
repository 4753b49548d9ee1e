package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/duallane/go-shop-api/internal/cache"
	"github.com/duallane/go-shop-api/internal/model"
	"github.com/duallane/go-shop-api/internal/repository"
)

const (
	productListTTL   = 60 * time.Second
	productDetailTTL = 120 * time.Second
)

// ProductService serves the catalog through a read-through cache. List keys
// vary by category and search term, detail keys by id; a cache failure falls
// back to the database rather than failing the read.
type ProductService struct {
	productRepo repository.ProductRepository
	cache       cache.Cache
	log         *slog.Logger
}

func NewProductService(productRepo repository.ProductRepository, c cache.Cache, log *slog.Logger) *ProductService {
	return &ProductService{productRepo: productRepo, cache: c, log: log}
}

func listCacheKey(category, search string) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("products:%s:%s", category, search)
}

func detailCacheKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

func (s *ProductService) List(ctx context.Context, category, search string) ([]model.Product, error) {
	key := listCacheKey(category, search)

	var cached []model.Product
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.log.Warn("product list cache read failed", "key", key, "error", err)
	} else if hit {
		return cached, nil
	}

	products, err := s.productRepo.List(ctx, category, search)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if err := s.cache.Set(ctx, key, products, productListTTL); err != nil {
		s.log.Warn("product list cache write failed", "key", key, "error", err)
	}
	return products, nil
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	key := detailCacheKey(id)

	var cached model.Product
	if hit, err := s.cache.Get(ctx, key, &cached); err != nil {
		s.log.Warn("product cache read failed", "key", key, "error", err)
	} else if hit {
		return &cached, nil
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	if err := s.cache.Set(ctx, key, product, productDetailTTL); err != nil {
		s.log.Warn("product cache write failed", "key", key, "error", err)
	}
	return product, nil
}
