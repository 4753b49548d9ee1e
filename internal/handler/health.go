package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/duallane/go-shop-api/internal/database"
)

type HealthHandler struct {
	db database.Store
}

func NewHealthHandler(db database.Store) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz checks that the relational store answers a trivial query.
func (h *HealthHandler) Readyz(c *gin.Context) {
	if _, err := h.db.Execute(c.Request.Context(), `SELECT 1 AS ok`); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
