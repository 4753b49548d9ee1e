package model

import "time"

// Prices are stored in the smallest currency unit, so integers throughout.

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
}

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       int64
	ImageURL    string
	Category    string
	Stock       int64
	CreatedAt   time.Time
}

// CartItem is one (user, product) row. Uniqueness of the pair is enforced by
// read-before-write in the cart service, not by a storage constraint.
type CartItem struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int64
}

// CartLine is a cart item joined with the current product snapshot. The order
// workflow prices and validates against this snapshot, never a re-fetch.
type CartLine struct {
	ItemID          int64
	ProductID       int64
	Quantity        int64
	ProductName     string
	ProductPrice    int64
	ProductImageURL string
	Stock           int64
}

const OrderStatusPending = "pending"

type Order struct {
	ID          int64
	UserID      int64
	TotalAmount int64
	Status      string
	CreatedAt   time.Time
	Items       []OrderItem
}

// OrderItem denormalizes product name and unit price at order time so
// historical orders stay stable if the product record later changes.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int64
	Price       int64
}

// Review identifiers are backend-specific (sequential integer vs generated
// token) and must be treated as opaque by callers.
type Review struct {
	ID        string
	ProductID int64
	UserID    int64
	UserName  string
	Rating    int
	Content   string
	ImageURLs []string
	CreatedAt time.Time
}
