package repository

import (
	"context"
	"fmt"

	"github.com/duallane/go-shop-api/internal/database"
	"github.com/duallane/go-shop-api/internal/model"
)

type CartRepository interface {
	// ListLines returns the user's cart items joined with the current
	// product snapshot (name, price, stock).
	ListLines(ctx context.Context, userID int64) ([]model.CartLine, error)
	GetItem(ctx context.Context, itemID, userID int64) (*model.CartItem, error)
	FindItem(ctx context.Context, userID, productID int64) (*model.CartItem, error)
	AddItem(ctx context.Context, item *model.CartItem) error
	UpdateQuantity(ctx context.Context, itemID, quantity int64) error
	DeleteItem(ctx context.Context, itemID, userID int64) (bool, error)
	Clear(ctx context.Context, userID int64) error
}

type cartRepo struct{ db database.Store }

func NewCartRepository(db database.Store) CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) ListLines(ctx context.Context, userID int64) ([]model.CartLine, error) {
	res, err := r.db.Execute(ctx,
		`SELECT ci.id, ci.product_id, ci.quantity,
		        p.name, p.price, p.image_url, p.stock
		 FROM cart_items ci
		 JOIN products p ON ci.product_id = p.id
		 WHERE ci.user_id = ?`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}

	lines := make([]model.CartLine, 0, len(res.Rows))
	for _, row := range res.Rows {
		lines = append(lines, model.CartLine{
			ItemID:          row.Int64("id"),
			ProductID:       row.Int64("product_id"),
			Quantity:        row.Int64("quantity"),
			ProductName:     row.String("name"),
			ProductPrice:    row.Int64("price"),
			ProductImageURL: row.String("image_url"),
			Stock:           row.Int64("stock"),
		})
	}
	return lines, nil
}

func (r *cartRepo) GetItem(ctx context.Context, itemID, userID int64) (*model.CartItem, error) {
	res, err := r.db.Execute(ctx,
		`SELECT id, user_id, product_id, quantity FROM cart_items WHERE id = ? AND user_id = ?`,
		itemID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get cart item: %w", err)
	}
	if len(res.Rows) == 0 {
		return nil, nil
	}
	return rowToCartItem(res.Rows[0]), nil
}

// FindItem looks up the (user, product) row; this read-before-write is what
// keeps the pair unique, there is no storage constraint behind it.
func (r *cartRepo) FindItem(ctx context.Context, userID, productID int64) (*model.CartItem, error) {
	res, err := r.db.Execute(ctx,
		`SELECT id, user_id, product_id, quantity FROM cart_items WHERE user_id = ? AND product_id = ?`,
		userID, productID,
	)
	if err != nil {
		return nil, fmt.Errorf("find cart item: %w", err)
	}
	if len(res.Rows) == 0 {
		return nil, nil
	}
	return rowToCartItem(res.Rows[0]), nil
}

func (r *cartRepo) AddItem(ctx context.Context, item *model.CartItem) error {
	res, err := r.db.Execute(ctx,
		`INSERT INTO cart_items (user_id, product_id, quantity) VALUES (?, ?, ?)`,
		item.UserID, item.ProductID, item.Quantity,
	)
	if err != nil {
		return fmt.Errorf("add cart item: %w", err)
	}
	item.ID = res.InsertID
	return nil
}

func (r *cartRepo) UpdateQuantity(ctx context.Context, itemID, quantity int64) error {
	_, err := r.db.Execute(ctx,
		`UPDATE cart_items SET quantity = ? WHERE id = ?`, quantity, itemID,
	)
	if err != nil {
		return fmt.Errorf("update cart item: %w", err)
	}
	return nil
}

func (r *cartRepo) DeleteItem(ctx context.Context, itemID, userID int64) (bool, error) {
	res, err := r.db.Execute(ctx,
		`DELETE FROM cart_items WHERE id = ? AND user_id = ?`, itemID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("delete cart item: %w", err)
	}
	return res.Changes > 0, nil
}

func (r *cartRepo) Clear(ctx context.Context, userID int64) error {
	_, err := r.db.Execute(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func rowToCartItem(row database.Row) *model.CartItem {
	return &model.CartItem{
		ID:        row.Int64("id"),
		UserID:    row.Int64("user_id"),
		ProductID: row.Int64("product_id"),
		Quantity:  row.Int64("quantity"),
	}
}
