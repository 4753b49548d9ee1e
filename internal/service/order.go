package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/duallane/go-shop-api/internal/model"
	"github.com/duallane/go-shop-api/internal/queue"
	"github.com/duallane/go-shop-api/internal/repository"
)

// OrderService runs the checkout workflow: cart snapshot, stock validation,
// order and line persistence, stock decrement, cart clearing, and an
// optional best-effort queue notification once everything is committed.
//
// The persistence steps are independent statements with no surrounding
// transaction; a failure partway leaves partial state behind, and two
// concurrent checkouts of the same product can both pass the stock check.
// Both limitations are deliberate, see DESIGN.md.
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	notifier    queue.Notifier
	log         *slog.Logger
	now         func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	notifier queue.Notifier,
	log *slog.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		notifier:    notifier,
		log:         log,
		now:         time.Now,
	}
}

func (s *OrderService) Create(ctx context.Context, user model.User) (*model.Order, error) {
	lines, err := s.cartRepo.ListLines(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// All lines must pass before anything is written.
	for _, line := range lines {
		if line.Stock < line.Quantity {
			return nil, &InsufficientStockError{
				ProductName: line.ProductName,
				Available:   line.Stock,
				Requested:   line.Quantity,
			}
		}
	}

	// The total uses the same snapshot the stock check saw, not a second
	// price fetch.
	var total int64
	for _, line := range lines {
		total += line.ProductPrice * line.Quantity
	}

	order := &model.Order{
		UserID:      user.ID,
		TotalAmount: total,
		Status:      model.OrderStatusPending,
		CreatedAt:   s.now(),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	for _, line := range lines {
		item := &model.OrderItem{
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			Price:       line.ProductPrice,
		}
		if err := s.orderRepo.CreateItem(ctx, item); err != nil {
			return nil, fmt.Errorf("create order item: %w", err)
		}
		order.Items = append(order.Items, *item)

		if err := s.productRepo.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			return nil, fmt.Errorf("decrement stock: %w", err)
		}
	}

	if err := s.cartRepo.Clear(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	s.notify(ctx, user, order)
	return order, nil
}

// notify publishes the order summary after the order has committed. The
// result only feeds logging; it never affects the workflow outcome.
func (s *OrderService) notify(ctx context.Context, user model.User, order *model.Order) {
	if s.notifier == nil {
		return
	}

	msg := queue.OrderMessage{
		OrderID:     order.ID,
		UserID:      user.ID,
		UserEmail:   user.Email,
		UserName:    user.Name,
		TotalAmount: order.TotalAmount,
		CreatedAt:   order.CreatedAt,
	}
	for _, item := range order.Items {
		msg.Items = append(msg.Items, queue.OrderItemMessage{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	if err := s.notifier.OrderCreated(ctx, msg); err != nil {
		s.log.Error("order notification failed", "order_id", order.ID, "error", err)
		return
	}
	s.log.Info("order notification published", "order_id", order.ID)
}

func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	for i := range orders {
		items, err := s.orderRepo.ListItems(ctx, orders[i].ID)
		if err != nil {
			return nil, fmt.Errorf("list order items: %w", err)
		}
		orders[i].Items = items
	}
	return orders, nil
}
