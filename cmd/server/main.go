package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/velmora/storefront-backend/config"
	"github.com/velmora/storefront-backend/internal/app/controller"
	"github.com/velmora/storefront-backend/internal/app/repository"
	"github.com/velmora/storefront-backend/internal/app/service"
	"github.com/velmora/storefront-backend/internal/db"
	"github.com/velmora/storefront-backend/internal/middleware"
	"github.com/velmora/storefront-backend/internal/router"
	"github.com/velmora/storefront-backend/internal/scheduler"
	"github.com/velmora/storefront-backend/internal/storage"
	"github.com/velmora/storefront-backend/pkg/logger"
	"github.com/velmora/storefront-backend/pkg/redis"
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

	logger.Info("Starting VELMORA Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed database (optional)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Initialize Redis. The server degrades gracefully without it: token
	// revocation and the color payload cache are skipped.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Failed to connect to Redis, running without cache", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	colorRepo := repository.NewColorRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	couponRepo := repository.NewCouponRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	catalogService := service.NewCatalogService(productRepo, colorRepo, cfg.S3.BaseURL)
	cartService := service.NewCartService(cartRepo, productRepo, couponRepo, cfg.Pricing)
	couponService := service.NewCouponService(couponRepo, cartRepo, cfg.Pricing)
	orderService := service.NewOrderService(orderRepo, cartRepo, couponRepo, cfg.Pricing, db.GetDB())

	// Initialize storage
	s3Storage := storage.NewS3Storage(cfg.S3)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	productController := controller.NewProductController(catalogService)
	cartController := controller.NewCartController(cartService, couponService, cfg.Pricing.MaxQuantity)
	couponController := controller.NewCouponController(couponService)
	orderController := controller.NewOrderController(orderService)
	uploadController := controller.NewUploadController(s3Storage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		cartController,
		couponController,
		orderController,
		uploadController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start coupon expiry scheduler
	couponScheduler := scheduler.NewCouponScheduler(couponService)
	if err := couponScheduler.Start(); err != nil {
		logger.Warn("Failed to start coupon scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer couponScheduler.Stop()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
