// internal/api/handlers/recommendation_handler.go
package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/fermaeda/procurement-backend/internal/domain"
	"github.com/fermaeda/procurement-backend/internal/message"
	"github.com/fermaeda/procurement-backend/internal/repository"
	"github.com/fermaeda/procurement-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type RecommendationHandler struct {
	orders    *service.OrderService
	forecast  *service.ForecastService
	sessions  *service.SessionManager
	formatter *message.Formatter
	suppliers repository.SupplierRepository
}

func NewRecommendationHandler(
	orders *service.OrderService,
	forecast *service.ForecastService,
	sessions *service.SessionManager,
	formatter *message.Formatter,
	suppliers repository.SupplierRepository,
) *RecommendationHandler {
	return &RecommendationHandler{
		orders:    orders,
		forecast:  forecast,
		sessions:  sessions,
		formatter: formatter,
		suppliers: suppliers,
	}
}

// parseDate reads the optional date query parameter, defaulting to today.
func parseDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return date, true
}

// GetRecommendations computes and validates a fresh recommendation for
// the target date.
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}

	rec, err := h.orders.Recommend(c.Request.Context(), date)
	if err != nil {
		log.Error().Err(err).Msg("failed to compute recommendations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute recommendations"})
		return
	}

	result, err := h.orders.ApplyMinOrderConstraints(c.Request.Context(), rec)
	if err != nil {
		log.Error().Err(err).Msg("failed to validate recommendations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to validate recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":            date.Format("2006-01-02"),
		"recommendations": result.Recommendation,
		"warnings":        result.Warnings,
	})
}

// GetForecast returns the demand estimate for one product.
func (h *RecommendationHandler) GetForecast(c *gin.Context) {
	product := c.Query("product")
	if product == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product is required"})
		return
	}
	date, ok := parseDate(c)
	if !ok {
		return
	}

	value, err := h.forecast.Forecast(c.Request.Context(), product, date)
	if err != nil {
		log.Error().Err(err).Str("product", product).Msg("forecast failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "forecast failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":  product,
		"date":     date.Format("2006-01-02"),
		"forecast": value,
	})
}

// GetSchedule lists supplier ordering windows for the date.
func (h *RecommendationHandler) GetSchedule(c *gin.Context) {
	date, ok := parseDate(c)
	if !ok {
		return
	}

	entries, err := h.orders.Schedule(c.Request.Context(), date)
	if err != nil {
		log.Error().Err(err).Msg("failed to load schedule")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load schedule"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     date.Format("2006-01-02"),
		"schedule": entries,
	})
}

// BeginSession opens an edit session over a recommendation. The body may
// carry a recommendation to edit; when absent a fresh one is computed.
func (h *RecommendationHandler) BeginSession(c *gin.Context) {
	operator := c.Param("operator")

	var body struct {
		Recommendation domain.Recommendation `json:"recommendation"`
		Date           string                `json:"date"`
	}
	// An absent body is fine: a fresh recommendation is computed below.
	// A body that fails to decode is not.
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	rec := body.Recommendation
	if rec == nil {
		date := time.Now()
		if body.Date != "" {
			parsed, err := time.Parse("2006-01-02", body.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
				return
			}
			date = parsed
		}
		computed, err := h.orders.Recommend(c.Request.Context(), date)
		if err != nil {
			log.Error().Err(err).Msg("failed to compute recommendations")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute recommendations"})
			return
		}
		rec = computed
	}

	working := h.sessions.Begin(operator, rec)
	c.JSON(http.StatusOK, gin.H{"operator": operator, "recommendation": working})
}

// ApplyEdit applies a single edit to the operator's working copy. Accepts
// either the structured form or the line form "Supplier: Product = qty".
func (h *RecommendationHandler) ApplyEdit(c *gin.Context) {
	operator := c.Param("operator")

	var body struct {
		Line     string `json:"line"`
		Supplier string `json:"supplier"`
		Product  string `json:"product"`
		Quantity *int   `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMalformedEdit.Error()})
		return
	}

	var cmd service.EditCommand
	if body.Line != "" {
		parsed, err := service.ParseEditLine(body.Line)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		cmd = parsed
	} else {
		if body.Supplier == "" || body.Product == "" || body.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrMalformedEdit.Error()})
			return
		}
		cmd = service.EditCommand{Supplier: body.Supplier, Product: body.Product, Quantity: *body.Quantity}
	}

	updated, err := h.sessions.Apply(operator, cmd)
	if err != nil {
		status := http.StatusNotFound
		if errors.Is(err, domain.ErrNoActiveSession) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"operator": operator, "recommendation": updated})
}

// EndSession closes the edit session and returns the final state.
func (h *RecommendationHandler) EndSession(c *gin.Context) {
	operator := c.Param("operator")

	final, err := h.sessions.Done(operator)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"operator": operator, "recommendation": final})
}

// CreateOrders finalizes a recommendation into persisted orders and
// returns the formatted order sheets.
func (h *RecommendationHandler) CreateOrders(c *gin.Context) {
	var body struct {
		Recommendation domain.Recommendation `json:"recommendation"`
		Date           string                `json:"date"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Recommendation == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recommendation is required"})
		return
	}

	date := time.Now()
	if body.Date != "" {
		parsed, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	orders, err := h.orders.Finalize(c.Request.Context(), body.Recommendation, date)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Error().Err(err).Msg("failed to finalize orders")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to finalize orders"})
		return
	}

	sheets := make(map[string]string, len(orders))
	for _, order := range orders {
		policy, err := h.suppliers.GetPolicy(c.Request.Context(), order.Supplier)
		if err != nil {
			policy = nil
		}
		sheets[order.Supplier] = h.formatter.OrderSheet(order.Supplier, order.Items, date, policy)
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "messages": sheets})
}
