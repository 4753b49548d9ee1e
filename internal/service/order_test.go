package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duallane/go-shop-api/internal/model"
)

func TestOrderService_Create(t *testing.T) {
	products := newMockProductRepo()
	keyboard := products.add(model.Product{Name: "Keyboard", Price: 1000, Stock: 5})
	mouse := products.add(model.Product{Name: "Mouse", Price: 500, Stock: 1})

	carts := newMockCartRepo(products)
	orders := newMockOrderRepo()
	notifier := &fakeNotifier{}

	user := model.User{ID: 1, Email: "ann@example.com", Name: "Ann"}
	require.NoError(t, carts.AddItem(context.Background(), &model.CartItem{UserID: 1, ProductID: keyboard.ID, Quantity: 2}))
	require.NoError(t, carts.AddItem(context.Background(), &model.CartItem{UserID: 1, ProductID: mouse.ID, Quantity: 1}))

	svc := NewOrderService(orders, carts, products, notifier, testLogger())
	createdAt := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return createdAt }

	order, err := svc.Create(context.Background(), user)
	require.NoError(t, err)

	assert.Equal(t, int64(2500), order.TotalAmount)
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Equal(t, createdAt, order.CreatedAt)
	require.Len(t, order.Items, 2)

	// Line items carry the price snapshot, not a reference back to products.
	byName := map[string]model.OrderItem{}
	for _, item := range order.Items {
		byName[item.ProductName] = item
	}
	assert.Equal(t, int64(1000), byName["Keyboard"].Price)
	assert.Equal(t, int64(2), byName["Keyboard"].Quantity)
	assert.Equal(t, int64(500), byName["Mouse"].Price)

	assert.Equal(t, int64(3), products.products[keyboard.ID].Stock)
	assert.Equal(t, int64(0), products.products[mouse.ID].Stock)

	lines, err := carts.ListLines(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, lines, "cart should be cleared after checkout")

	require.Len(t, notifier.messages, 1)
	msg := notifier.messages[0]
	assert.Equal(t, order.ID, msg.OrderID)
	assert.Equal(t, "ann@example.com", msg.UserEmail)
	assert.Equal(t, int64(2500), msg.TotalAmount)
	assert.Len(t, msg.Items, 2)
}

func TestOrderService_CreateEmptyCart(t *testing.T) {
	products := newMockProductRepo()
	carts := newMockCartRepo(products)
	orders := newMockOrderRepo()

	svc := NewOrderService(orders, carts, products, nil, testLogger())

	_, err := svc.Create(context.Background(), model.User{ID: 1})
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, orders.orders)
}

func TestOrderService_CreateInsufficientStock(t *testing.T) {
	products := newMockProductRepo()
	keyboard := products.add(model.Product{Name: "Keyboard", Price: 1000, Stock: 1})

	carts := newMockCartRepo(products)
	orders := newMockOrderRepo()
	require.NoError(t, carts.AddItem(context.Background(), &model.CartItem{UserID: 1, ProductID: keyboard.ID, Quantity: 2}))

	svc := NewOrderService(orders, carts, products, nil, testLogger())

	_, err := svc.Create(context.Background(), model.User{ID: 1})
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Keyboard", stockErr.ProductName)
	assert.Equal(t, int64(1), stockErr.Available)
	assert.Equal(t, int64(2), stockErr.Requested)

	// Nothing may be written when validation fails.
	assert.Empty(t, orders.orders)
	assert.Empty(t, products.decrements)
	assert.Empty(t, carts.cleared)
	lines, err := carts.ListLines(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}

func TestOrderService_CreateNotifierFailureDoesNotFailOrder(t *testing.T) {
	products := newMockProductRepo()
	keyboard := products.add(model.Product{Name: "Keyboard", Price: 1000, Stock: 5})

	carts := newMockCartRepo(products)
	orders := newMockOrderRepo()
	require.NoError(t, carts.AddItem(context.Background(), &model.CartItem{UserID: 1, ProductID: keyboard.ID, Quantity: 1}))

	notifier := &fakeNotifier{err: errors.New("broker down")}
	svc := NewOrderService(orders, carts, products, notifier, testLogger())

	order, err := svc.Create(context.Background(), model.User{ID: 1})
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Len(t, orders.orders, 1)
}

func TestOrderService_CreateWithoutNotifier(t *testing.T) {
	products := newMockProductRepo()
	keyboard := products.add(model.Product{Name: "Keyboard", Price: 1000, Stock: 5})

	carts := newMockCartRepo(products)
	orders := newMockOrderRepo()
	require.NoError(t, carts.AddItem(context.Background(), &model.CartItem{UserID: 1, ProductID: keyboard.ID, Quantity: 1}))

	svc := NewOrderService(orders, carts, products, nil, testLogger())

	_, err := svc.Create(context.Background(), model.User{ID: 1})
	require.NoError(t, err)
}

func TestOrderService_ListByUser(t *testing.T) {
	products := newMockProductRepo()
	orders := newMockOrderRepo()
	carts := newMockCartRepo(products)

	order := &model.Order{UserID: 1, TotalAmount: 700, Status: model.OrderStatusPending}
	require.NoError(t, orders.Create(context.Background(), order))
	require.NoError(t, orders.CreateItem(context.Background(), &model.OrderItem{
		OrderID: order.ID, ProductID: 1, ProductName: "Mug", Quantity: 1, Price: 700,
	}))
	other := &model.Order{UserID: 2, TotalAmount: 100, Status: model.OrderStatusPending}
	require.NoError(t, orders.Create(context.Background(), other))

	svc := NewOrderService(orders, carts, products, nil, testLogger())

	got, err := svc.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Items, 1)
	assert.Equal(t, "Mug", got[0].Items[0].ProductName)
}
