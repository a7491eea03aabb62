// internal/api/handlers/inventory_handler.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/fermaeda/procurement-backend/internal/cache"
	"github.com/fermaeda/procurement-backend/internal/domain"
	"github.com/fermaeda/procurement-backend/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// InventoryHandler covers the write side of the history store (sales,
// write-offs, stock counts) and the product listing.
type InventoryHandler struct {
	products  repository.ProductRepository
	history   repository.HistoryRepository
	forecasts cache.ForecastCache
}

func NewInventoryHandler(products repository.ProductRepository, history repository.HistoryRepository, forecasts cache.ForecastCache) *InventoryHandler {
	if forecasts == nil {
		forecasts = cache.NewNoopForecastCache()
	}
	return &InventoryHandler{products: products, history: history, forecasts: forecasts}
}

type quantityRequest struct {
	Product  string  `json:"product" binding:"required"`
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
	Reason   string  `json:"reason"`
}

func (r quantityRequest) date() (time.Time, error) {
	if r.Date == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", r.Date)
}

func (h *InventoryHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	log.Error().Err(err).Msg("history write failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
}

// invalidate drops cached forecasts for a product after a history write.
func (h *InventoryHandler) invalidate(c *gin.Context, product string) {
	if err := h.forecasts.InvalidateProduct(c.Request.Context(), product); err != nil {
		log.Warn().Err(err).Str("product", product).Msg("forecast cache invalidation failed")
	}
}

// RecordSale upserts the sold quantity for a (product, date).
func (h *InventoryHandler) RecordSale(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product and quantity are required"})
		return
	}
	if req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must not be negative"})
		return
	}
	date, err := req.date()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	sale := &domain.Sale{ProductName: req.Product, Date: date, Quantity: req.Quantity}
	if err := h.history.RecordSale(c.Request.Context(), sale); err != nil {
		h.writeError(c, err)
		return
	}

	h.invalidate(c, req.Product)
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// RecordWriteOff appends a write-off event.
func (h *InventoryHandler) RecordWriteOff(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product and quantity are required"})
		return
	}
	if req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must not be negative"})
		return
	}
	date, err := req.date()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	wo := &domain.WriteOff{ProductName: req.Product, Date: date, Quantity: req.Quantity, Reason: req.Reason}
	if err := h.history.RecordWriteOff(c.Request.Context(), wo); err != nil {
		h.writeError(c, err)
		return
	}

	h.invalidate(c, req.Product)
	c.JSON(http.StatusCreated, gin.H{"status": "recorded"})
}

// UpdateStock upserts the counted stock for a (product, date).
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product and quantity are required"})
		return
	}
	if req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must not be negative"})
		return
	}
	date, err := req.date()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return
	}

	snap := &domain.StockSnapshot{ProductName: req.Product, Date: date, Quantity: req.Quantity}
	if err := h.history.UpdateStock(c.Request.Context(), snap); err != nil {
		h.writeError(c, err)
		return
	}

	h.invalidate(c, req.Product)
	c.JSON(http.StatusOK, gin.H{"status": "recorded"})
}

// GetProducts lists active products, optionally filtered by supplier.
func (h *InventoryHandler) GetProducts(c *gin.Context) {
	products, err := h.products.GetAllProducts(c.Request.Context(), c.Query("supplier"))
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}
