package service

import (
	"context"
	"fmt"

	"github.com/duallane/go-shop-api/internal/model"
	"github.com/duallane/go-shop-api/internal/repository"
)

type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *CartService) ListLines(ctx context.Context, userID int64) ([]model.CartLine, error) {
	return s.cartRepo.ListLines(ctx, userID)
}

// AddItem merges the quantity into an existing (user, product) row or
// creates one. The read-before-write keeps one row per pair.
func (s *CartService) AddItem(ctx context.Context, userID, productID, quantity int64) (*model.CartItem, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.Stock < quantity {
		return nil, &InsufficientStockError{
			ProductName: product.Name,
			Available:   product.Stock,
			Requested:   quantity,
		}
	}

	existing, err := s.cartRepo.FindItem(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	if existing != nil {
		existing.Quantity += quantity
		if err := s.cartRepo.UpdateQuantity(ctx, existing.ID, existing.Quantity); err != nil {
			return nil, fmt.Errorf("update cart item: %w", err)
		}
		return existing, nil
	}

	item := &model.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := s.cartRepo.AddItem(ctx, item); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}
	return item, nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID, quantity int64) (*model.CartItem, error) {
	item, err := s.cartRepo.GetItem(ctx, itemID, userID)
	if err != nil {
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	product, err := s.productRepo.GetByID(ctx, item.ProductID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.Stock < quantity {
		return nil, &InsufficientStockError{
			ProductName: product.Name,
			Available:   product.Stock,
			Requested:   quantity,
		}
	}

	if err := s.cartRepo.UpdateQuantity(ctx, itemID, quantity); err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	item.Quantity = quantity
	return item, nil
}

func (s *CartService) DeleteItem(ctx context.Context, userID, itemID int64) error {
	deleted, err := s.cartRepo.DeleteItem(ctx, itemID, userID)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if !deleted {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return s.cartRepo.Clear(ctx, userID)
}
