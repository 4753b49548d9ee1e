package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/duallane/go-shop-api/internal/dto"
	"github.com/duallane/go-shop-api/internal/middleware"
	"github.com/duallane/go-shop-api/internal/service"
)

type CartHandler struct {
	cartService *service.CartService
}

func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

func (h *CartHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	lines, err := h.cartService.ListLines(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	resp := make([]dto.CartLineResponse, 0, len(lines))
	for _, line := range lines {
		resp = append(resp, dto.ToCartLineResponse(line))
	}
	c.JSON(http.StatusOK, gin.H{"items": resp})
}

func (h *CartHandler) AddItem(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.cartService.AddItem(c.Request.Context(), user.ID, req.ProductID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": dto.CartItemResponse{
		ID: item.ID, ProductID: item.ProductID, Quantity: item.Quantity,
	}})
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	user := middleware.CurrentUser(c)

	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item ID"})
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.cartService.UpdateItem(c.Request.Context(), user.ID, itemID, req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": dto.CartItemResponse{
		ID: item.ID, ProductID: item.ProductID, Quantity: item.Quantity,
	}})
}

func (h *CartHandler) DeleteItem(c *gin.Context) {
	user := middleware.CurrentUser(c)

	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item ID"})
		return
	}

	if err := h.cartService.DeleteItem(c.Request.Context(), user.ID, itemID); err != nil {
		respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CartHandler) Clear(c *gin.Context) {
	user := middleware.CurrentUser(c)

	if err := h.cartService.Clear(c.Request.Context(), user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func respondCartError(c *gin.Context, err error) {
	var stockErr *service.InsufficientStockError
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, service.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
	case errors.As(err, &stockErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": stockErr.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
