// internal/api/handlers/catalog_handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/fermaeda/procurement-backend/internal/domain"
	"github.com/fermaeda/procurement-backend/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// CatalogHandler manages the product catalog and supplier policies.
type CatalogHandler struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
}

func NewCatalogHandler(products repository.ProductRepository, suppliers repository.SupplierRepository) *CatalogHandler {
	return &CatalogHandler{products: products, suppliers: suppliers}
}

type createProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	Category string          `json:"category"`
	Supplier string          `json:"supplier" binding:"required"`
	MinStock int             `json:"min_stock"`
	ParLevel int             `json:"par_level"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
}

// CreateProduct adds a catalog entry. Posting an existing name is a
// no-op, never an overwrite.
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and supplier are required"})
		return
	}
	if req.MinStock < 0 || req.ParLevel < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock levels must not be negative"})
		return
	}

	product := &domain.Product{
		Name:     req.Name,
		Category: req.Category,
		Supplier: req.Supplier,
		MinStock: req.MinStock,
		ParLevel: req.ParLevel,
		Unit:     req.Unit,
		Price:    req.Price,
		Active:   true,
	}
	if err := h.products.CreateProduct(c.Request.Context(), product); err != nil {
		log.Error().Err(err).Str("product", req.Name).Msg("failed to create product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// SetProductActive activates or deactivates a product. Deactivated
// products keep their history but drop out of recommendation runs.
func (h *CatalogHandler) SetProductActive(c *gin.Context) {
	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "active is required"})
		return
	}

	name := c.Param("name")
	if err := h.products.SetActive(c.Request.Context(), name, *req.Active); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Str("product", name).Msg("failed to update product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": name, "active": *req.Active})
}

// GetSuppliers lists supplier policies.
func (h *CatalogHandler) GetSuppliers(c *gin.Context) {
	policies, err := h.suppliers.GetPolicies(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list supplier policies")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list supplier policies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suppliers": policies})
}

type upsertPolicyRequest struct {
	Phone          string             `json:"phone"`
	ContactPerson  string             `json:"contact_person"`
	Deadline       domain.DayTime     `json:"deadline"`
	MinOrderAmount decimal.Decimal    `json:"min_order_amount"`
	MinOrderItems  int                `json:"min_order_items"`
	DeliveryDays   *domain.WeekdaySet `json:"delivery_days"`
	Notes          string             `json:"notes"`
}

// UpsertSupplier creates or replaces a supplier policy. Omitted delivery
// days default to every day.
func (h *CatalogHandler) UpsertSupplier(c *gin.Context) {
	var req upsertPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid supplier policy"})
		return
	}

	days := domain.EveryDay()
	if req.DeliveryDays != nil {
		days = *req.DeliveryDays
	}

	policy := &domain.SupplierPolicy{
		Name:           c.Param("name"),
		Phone:          req.Phone,
		ContactPerson:  req.ContactPerson,
		Deadline:       req.Deadline,
		MinOrderAmount: req.MinOrderAmount,
		MinOrderItems:  req.MinOrderItems,
		DeliveryDays:   days,
		Notes:          req.Notes,
	}
	if err := h.suppliers.UpsertPolicy(c.Request.Context(), policy); err != nil {
		log.Error().Err(err).Str("supplier", policy.Name).Msg("failed to upsert supplier policy")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save supplier policy"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"supplier": policy})
}
