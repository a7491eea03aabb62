// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/fermaeda/procurement-backend/internal/api/handlers"
	"github.com/fermaeda/procurement-backend/internal/api/middleware"
	"github.com/fermaeda/procurement-backend/internal/cache"
	"github.com/fermaeda/procurement-backend/internal/message"
	"github.com/fermaeda/procurement-backend/internal/repository"
	"github.com/fermaeda/procurement-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	OrderService    *service.OrderService
	ForecastService *service.ForecastService
	Sessions        *service.SessionManager
	Formatter       *message.Formatter
	Products        repository.ProductRepository
	History         repository.HistoryRepository
	Suppliers       repository.SupplierRepository
	ForecastCache   cache.ForecastCache
}

func NewRouter(deps *Deps, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	recHandler := handlers.NewRecommendationHandler(
		deps.OrderService, deps.ForecastService, deps.Sessions, deps.Formatter, deps.Suppliers)
	invHandler := handlers.NewInventoryHandler(deps.Products, deps.History, deps.ForecastCache)
	catHandler := handlers.NewCatalogHandler(deps.Products, deps.Suppliers)

	{
		apiGroup.GET("/recommendations", recHandler.GetRecommendations)
		apiGroup.GET("/forecast", recHandler.GetForecast)
		apiGroup.GET("/schedule", recHandler.GetSchedule)
		apiGroup.POST("/orders", recHandler.CreateOrders)

		operatorGroup := apiGroup.Group("/operators/:operator")
		{
			operatorGroup.POST("/session", recHandler.BeginSession)
			operatorGroup.POST("/edits", recHandler.ApplyEdit)
			operatorGroup.DELETE("/session", recHandler.EndSession)
		}

		apiGroup.GET("/products", invHandler.GetProducts)
		apiGroup.POST("/products", catHandler.CreateProduct)
		apiGroup.PUT("/products/:name/active", catHandler.SetProductActive)
		apiGroup.GET("/suppliers", catHandler.GetSuppliers)
		apiGroup.PUT("/suppliers/:name", catHandler.UpsertSupplier)
		apiGroup.POST("/sales", invHandler.RecordSale)
		apiGroup.POST("/writeoffs", invHandler.RecordWriteOff)
		apiGroup.POST("/stock", invHandler.UpdateStock)
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
