package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pricingxol/claimlens/config"
	"github.com/pricingxol/claimlens/handler"
	"github.com/pricingxol/claimlens/middleware"
	"github.com/pricingxol/claimlens/pkg/logger"
	"github.com/pricingxol/claimlens/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Initialize dataset store with config
	service.InitDatasetStore(&cfg.Store)

	// Initialize handlers with the configured pipeline variant
	datasetHandler := handler.NewDatasetHandler(cfg.PipelineVariant())

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                // Request ID for tracing
	router.Use(middleware.Recovery())                 // Panic recovery
	router.Use(middleware.RequestLogger())            // Access logging
	router.Use(corsMiddleware())                      // CORS for the dashboard frontend
	router.Use(middleware.RateLimit(60, time.Minute)) // Rate limiting: 60 requests per minute

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	api := router.Group("/api")
	{
		api.POST("/datasets/upload", datasetHandler.Upload)
		api.GET("/datasets", datasetHandler.List)
		api.GET("/datasets/:id", datasetHandler.Get)
		api.GET("/datasets/:id/status", datasetHandler.GetStatus)
		api.GET("/datasets/:id/claims", datasetHandler.Claims)
		api.GET("/datasets/:id/aggregates", datasetHandler.Aggregates)
		api.GET("/datasets/:id/filters", datasetHandler.Filters)
		api.GET("/datasets/:id/export", datasetHandler.Export)
		api.DELETE("/datasets/:id", datasetHandler.Delete)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers for the external dashboard frontend
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
