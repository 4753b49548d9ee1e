package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/duallane/go-shop-api/internal/model"
	"github.com/duallane/go-shop-api/internal/queue"
	"github.com/duallane/go-shop-api/internal/reviewstore"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type mockProductRepo struct {
	products   map[int64]*model.Product
	nextID     int64
	getCalls   int
	listCalls  int
	decrements map[int64]int64
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[int64]*model.Product), decrements: make(map[int64]int64)}
}

func (m *mockProductRepo) add(p model.Product) *model.Product {
	if p.ID == 0 {
		m.nextID++
		p.ID = m.nextID
	}
	m.products[p.ID] = &p
	return &p
}

func (m *mockProductRepo) Create(_ context.Context, product *model.Product) error {
	m.nextID++
	product.ID = m.nextID
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id int64) (*model.Product, error) {
	m.getCalls++
	p, ok := m.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *mockProductRepo) List(context.Context, string, string) ([]model.Product, error) {
	m.listCalls++
	out := make([]model.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockProductRepo) Count(context.Context) (int64, error) {
	return int64(len(m.products)), nil
}

func (m *mockProductRepo) DecrementStock(_ context.Context, productID, quantity int64) error {
	p, ok := m.products[productID]
	if !ok {
		return errors.New("no such product")
	}
	p.Stock -= quantity
	m.decrements[productID] += quantity
	return nil
}

// mockCartRepo joins cart items against the product repo the same way the
// SQL implementation does, so ListLines reflects live stock.
type mockCartRepo struct {
	products *mockProductRepo
	items    map[int64]*model.CartItem
	nextID   int64
	cleared  []int64
}

func newMockCartRepo(products *mockProductRepo) *mockCartRepo {
	return &mockCartRepo{products: products, items: make(map[int64]*model.CartItem)}
}

func (m *mockCartRepo) ListLines(_ context.Context, userID int64) ([]model.CartLine, error) {
	var lines []model.CartLine
	for _, item := range m.items {
		if item.UserID != userID {
			continue
		}
		p := m.products.products[item.ProductID]
		lines = append(lines, model.CartLine{
			ItemID:          item.ID,
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			ProductName:     p.Name,
			ProductPrice:    p.Price,
			ProductImageURL: p.ImageURL,
			Stock:           p.Stock,
		})
	}
	return lines, nil
}

func (m *mockCartRepo) GetItem(_ context.Context, itemID, userID int64) (*model.CartItem, error) {
	item, ok := m.items[itemID]
	if !ok || item.UserID != userID {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (m *mockCartRepo) FindItem(_ context.Context, userID, productID int64) (*model.CartItem, error) {
	for _, item := range m.items {
		if item.UserID == userID && item.ProductID == productID {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockCartRepo) AddItem(_ context.Context, item *model.CartItem) error {
	m.nextID++
	item.ID = m.nextID
	cp := *item
	m.items[item.ID] = &cp
	return nil
}

func (m *mockCartRepo) UpdateQuantity(_ context.Context, itemID, quantity int64) error {
	item, ok := m.items[itemID]
	if !ok {
		return errors.New("no such cart item")
	}
	item.Quantity = quantity
	return nil
}

func (m *mockCartRepo) DeleteItem(_ context.Context, itemID, userID int64) (bool, error) {
	item, ok := m.items[itemID]
	if !ok || item.UserID != userID {
		return false, nil
	}
	delete(m.items, itemID)
	return true, nil
}

func (m *mockCartRepo) Clear(_ context.Context, userID int64) error {
	for id, item := range m.items {
		if item.UserID == userID {
			delete(m.items, id)
		}
	}
	m.cleared = append(m.cleared, userID)
	return nil
}

type mockOrderRepo struct {
	orders     map[int64]*model.Order
	orderItems map[int64][]model.OrderItem
	nextID     int64
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[int64]*model.Order), orderItems: make(map[int64][]model.OrderItem)}
}

func (m *mockOrderRepo) Create(_ context.Context, order *model.Order) error {
	m.nextID++
	order.ID = m.nextID
	cp := *order
	m.orders[order.ID] = &cp
	return nil
}

func (m *mockOrderRepo) CreateItem(_ context.Context, item *model.OrderItem) error {
	m.orderItems[item.OrderID] = append(m.orderItems[item.OrderID], *item)
	return nil
}

func (m *mockOrderRepo) ListByUser(_ context.Context, userID int64) ([]model.Order, error) {
	var out []model.Order
	for _, order := range m.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (m *mockOrderRepo) ListItems(_ context.Context, orderID int64) ([]model.OrderItem, error) {
	return m.orderItems[orderID], nil
}

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	m.nextID++
	user.ID = m.nextID
	user.CreatedAt = time.Now()
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// fakeCache stores JSON-encoded values, matching both real backends.
type fakeCache struct {
	entries map[string][]byte
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string, dest any) (bool, error) {
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.entries, key)
	c.deleted = append(c.deleted, key)
	return nil
}

func (c *fakeCache) Close() error { return nil }

// brokenCache fails every operation; services must treat that as a miss.
type brokenCache struct{}

func (brokenCache) Get(context.Context, string, any) (bool, error) {
	return false, errors.New("cache unavailable")
}
func (brokenCache) Set(context.Context, string, any, time.Duration) error {
	return errors.New("cache unavailable")
}
func (brokenCache) Delete(context.Context, string) error { return errors.New("cache unavailable") }
func (brokenCache) Close() error                         { return nil }

type fakeNotifier struct {
	messages []queue.OrderMessage
	err      error
}

func (n *fakeNotifier) OrderCreated(_ context.Context, msg queue.OrderMessage) error {
	if n.err != nil {
		return n.err
	}
	n.messages = append(n.messages, msg)
	return nil
}

func (n *fakeNotifier) Close() error { return nil }

type mockReviewStore struct {
	reviews map[int64][]model.Review
	nextID  int
	created []reviewstore.Input
}

func newMockReviewStore() *mockReviewStore {
	return &mockReviewStore{reviews: make(map[int64][]model.Review)}
}

func (m *mockReviewStore) ListByProduct(_ context.Context, productID int64) ([]model.Review, error) {
	return m.reviews[productID], nil
}

func (m *mockReviewStore) Create(_ context.Context, in reviewstore.Input) (*model.Review, error) {
	m.nextID++
	m.created = append(m.created, in)
	review := model.Review{
		ID:        "r-" + strconv.Itoa(m.nextID),
		ProductID: in.ProductID,
		UserID:    in.UserID,
		UserName:  in.UserName,
		Rating:    in.Rating,
		Content:   in.Content,
		ImageURLs: in.ImageURLs,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	m.reviews[in.ProductID] = append(m.reviews[in.ProductID], review)
	return &review, nil
}
