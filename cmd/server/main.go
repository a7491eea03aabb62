// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fermaeda/procurement-backend/internal/api"
	"github.com/fermaeda/procurement-backend/internal/cache"
	"github.com/fermaeda/procurement-backend/internal/calendar"
	"github.com/fermaeda/procurement-backend/internal/config"
	"github.com/fermaeda/procurement-backend/internal/message"
	"github.com/fermaeda/procurement-backend/internal/notify"
	"github.com/fermaeda/procurement-backend/internal/repository/postgres"
	"github.com/fermaeda/procurement-backend/internal/service"
	"github.com/fermaeda/procurement-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	productRepo := postgres.NewProductRepository(db)
	historyRepo := postgres.NewHistoryRepository(db)
	supplierRepo := postgres.NewSupplierRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	// Forecast cache (noop when disabled)
	forecastCache, err := cache.NewForecastCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("forecast cache unavailable, running without it")
		forecastCache = cache.NewNoopForecastCache()
	}

	// Initialize services
	holidays := calendar.New(cfg.Store.ExtraHolidays)
	forecastService := service.NewForecastService(historyRepo, holidays, forecastCache)
	orderService := service.NewOrderService(productRepo, historyRepo, supplierRepo, orderRepo, forecastService)
	sessions := service.NewSessionManager()
	formatter := message.NewFormatter(cfg.Store)

	// Deadline reminder loop
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if cfg.Reminder.Enabled {
		loc, err := time.LoadLocation(cfg.Store.Timezone)
		if err != nil {
			logger.Log.Warn().Err(err).Str("tz", cfg.Store.Timezone).Msg("invalid timezone, using local")
			loc = time.Local
		}
		reminder := notify.NewDeadlineReminder(
			supplierRepo,
			notify.LogNotifier{},
			loc,
			time.Duration(cfg.Reminder.LeadMinutes)*time.Minute,
			time.Duration(cfg.Reminder.IntervalSeconds)*time.Second,
		)
		go reminder.Run(ctx)
	}

	// Initialize HTTP server
	router := api.NewRouter(&api.Deps{
		OrderService:    orderService,
		ForecastService: forecastService,
		Sessions:        sessions,
		Formatter:       formatter,
		Products:        productRepo,
		History:         historyRepo,
		Suppliers:       supplierRepo,
		ForecastCache:   forecastCache,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
