package repository

import (
	"context"
	"fmt"

	"github.com/duallane/go-shop-api/internal/database"
	"github.com/duallane/go-shop-api/internal/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	CreateItem(ctx context.Context, item *model.OrderItem) error
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	ListItems(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}

type orderRepo struct{ db database.Store }

func NewOrderRepository(db database.Store) OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *model.Order) error {
	res, err := r.db.Execute(ctx,
		`INSERT INTO orders (user_id, total_amount, status) VALUES (?, ?, ?)`,
		order.UserID, order.TotalAmount, order.Status,
	)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	order.ID = res.InsertID
	return nil
}

func (r *orderRepo) CreateItem(ctx context.Context, item *model.OrderItem) error {
	res, err := r.db.Execute(ctx,
		`INSERT INTO order_items (order_id, product_id, product_name, quantity, price)
		 VALUES (?, ?, ?, ?, ?)`,
		item.OrderID, item.ProductID, item.ProductName, item.Quantity, item.Price,
	)
	if err != nil {
		return fmt.Errorf("create order item: %w", err)
	}
	item.ID = res.InsertID
	return nil
}

func (r *orderRepo) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	res, err := r.db.Execute(ctx,
		`SELECT id, user_id, total_amount, status, created_at
		 FROM orders WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders := make([]model.Order, 0, len(res.Rows))
	for _, row := range res.Rows {
		orders = append(orders, model.Order{
			ID:          row.Int64("id"),
			UserID:      row.Int64("user_id"),
			TotalAmount: row.Int64("total_amount"),
			Status:      row.String("status"),
			CreatedAt:   row.Time("created_at"),
		})
	}
	return orders, nil
}

func (r *orderRepo) ListItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	res, err := r.db.Execute(ctx,
		`SELECT id, order_id, product_id, product_name, quantity, price
		 FROM order_items WHERE order_id = ?`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}

	items := make([]model.OrderItem, 0, len(res.Rows))
	for _, row := range res.Rows {
		items = append(items, model.OrderItem{
			ID:          row.Int64("id"),
			OrderID:     row.Int64("order_id"),
			ProductID:   row.Int64("product_id"),
			ProductName: row.String("product_name"),
			Quantity:    row.Int64("quantity"),
			Price:       row.Int64("price"),
		})
	}
	return items, nil
}
