package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duallane/go-shop-api/internal/dto"
	"github.com/duallane/go-shop-api/internal/middleware"
	"github.com/duallane/go-shop-api/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	order, err := h.orderService.Create(c.Request.Context(), user)
	if err != nil {
		var stockErr *service.InsufficientStockError
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
		case errors.As(err, &stockErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": stockErr.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": dto.ToOrderResponse(*order)})
}

func (h *OrderHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	orders, err := h.orderService.ListByUser(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, dto.ToOrderResponse(o))
	}
	c.JSON(http.StatusOK, gin.H{"orders": resp})
}
