package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amanabooks/bookstore-backend/config"
	"github.com/amanabooks/bookstore-backend/internal/app/controller"
	"github.com/amanabooks/bookstore-backend/internal/app/repository"
	"github.com/amanabooks/bookstore-backend/internal/app/service"
	"github.com/amanabooks/bookstore-backend/internal/db"
	"github.com/amanabooks/bookstore-backend/internal/router"
	"github.com/amanabooks/bookstore-backend/internal/scheduler"
	"github.com/amanabooks/bookstore-backend/internal/storage"
	ws "github.com/amanabooks/bookstore-backend/internal/websocket"
	"github.com/amanabooks/bookstore-backend/pkg/cache"
	"github.com/amanabooks/bookstore-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Amana Bookstore Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Connect to the database
	gdb, err := db.Connect(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", err)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(gdb); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed the starter catalog (no-op when books already exist)
	if err := db.Seed(gdb); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis is optional: the catalog cache degrades to direct reads.
	if err := cache.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, catalog caching disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := cache.Close(); err != nil {
			logger.Error("Failed to close redis connection", err)
		}
	}()

	// Initialize repositories
	bookRepo := repository.NewBookRepository(gdb)
	reviewRepo := repository.NewReviewRepository(gdb)
	cartRepo := repository.NewCartRepository(gdb)

	// WebSocket hub for live cart badge updates
	hub := ws.NewHub()
	go hub.Run()

	// Initialize services
	bookService := service.NewBookService(bookRepo, cfg.Redis.CatalogTTL)
	reviewService := service.NewReviewService(reviewRepo, bookRepo)
	cartService := service.NewCartService(cartRepo, bookRepo, hub)

	// S3 storage for cover image uploads
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	bookController := controller.NewBookController(bookService)
	reviewController := controller.NewReviewController(reviewService)
	cartController := controller.NewCartController(cartService)
	cartSocketController := controller.NewCartSocketController(hub, cfg.CORS.AllowedOrigins)
	uploadController := controller.NewUploadController(s3Storage)

	// Start the idle-cart cleanup scheduler
	cleanupScheduler := scheduler.NewCartCleanupScheduler(
		cartService,
		cfg.Cart.CleanupSchedule,
		cfg.Cart.IdleTTL,
	)
	if err := cleanupScheduler.Start(); err != nil {
		logger.Fatal("Failed to start cart cleanup scheduler", err)
	}
	defer cleanupScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		bookController,
		reviewController,
		cartController,
		cartSocketController,
		uploadController,
		gdb,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	// Let in-flight requests finish before closing the process.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
