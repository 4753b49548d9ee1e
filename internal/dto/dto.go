package dto

import (
	"time"

	"github.com/duallane/go-shop-api/internal/model"
)

// --- Auth ---

type SignupRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// --- Products ---

type ProductResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	Category    string    `json:"category"`
	Stock       int64     `json:"stock"`
	CreatedAt   time.Time `json:"createdAt"`
}

func ToProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
	}
}

// --- Cart ---

type AddCartItemRequest struct {
	ProductID int64 `json:"productId" binding:"required"`
	Quantity  int64 `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

type CartItemResponse struct {
	ID        int64 `json:"id"`
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}

type CartLineResponse struct {
	ID              int64  `json:"id"`
	ProductID       int64  `json:"productId"`
	Quantity        int64  `json:"quantity"`
	ProductName     string `json:"productName"`
	ProductPrice    int64  `json:"productPrice"`
	ProductImageURL string `json:"productImageUrl"`
	Stock           int64  `json:"stock"`
}

func ToCartLineResponse(l model.CartLine) CartLineResponse {
	return CartLineResponse{
		ID:              l.ItemID,
		ProductID:       l.ProductID,
		Quantity:        l.Quantity,
		ProductName:     l.ProductName,
		ProductPrice:    l.ProductPrice,
		ProductImageURL: l.ProductImageURL,
		Stock:           l.Stock,
	}
}

// --- Orders ---

type OrderItemResponse struct {
	ID          int64  `json:"id"`
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int64  `json:"quantity"`
	Price       int64  `json:"price"`
}

type OrderResponse struct {
	ID          int64               `json:"id"`
	UserID      int64               `json:"userId"`
	TotalAmount int64               `json:"totalAmount"`
	Status      string              `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
	Items       []OrderItemResponse `json:"items"`
}

func ToOrderResponse(o model.Order) OrderResponse {
	resp := OrderResponse{
		ID:          o.ID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		Items:       make([]OrderItemResponse, 0, len(o.Items)),
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}
	return resp
}

// --- Reviews ---

type CreateReviewRequest struct {
	Rating    int      `json:"rating" binding:"required"`
	Content   string   `json:"content" binding:"required"`
	ImageURLs []string `json:"imageUrls"`
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	ProductID int64     `json:"productId"`
	UserID    int64     `json:"userId"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	ImageURLs []string  `json:"imageUrls"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToReviewResponse(r model.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID,
		ProductID: r.ProductID,
		UserID:    r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Content:   r.Content,
		ImageURLs: r.ImageURLs,
		CreatedAt: r.CreatedAt,
	}
}

// --- Upload ---

type PresignedRequest struct {
	FileName string `json:"fileName" binding:"required"`
	FileType string `json:"fileType" binding:"required"`
}
