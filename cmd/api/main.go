package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/duallane/go-shop-api/internal/cache"
	"github.com/duallane/go-shop-api/internal/config"
	"github.com/duallane/go-shop-api/internal/database"
	"github.com/duallane/go-shop-api/internal/handler"
	"github.com/duallane/go-shop-api/internal/middleware"
	"github.com/duallane/go-shop-api/internal/queue"
	"github.com/duallane/go-shop-api/internal/repository"
	"github.com/duallane/go-shop-api/internal/reviewstore"
	"github.com/duallane/go-shop-api/internal/service"
	"github.com/duallane/go-shop-api/internal/storage"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Backends are selected once here and fixed for the process lifetime.
	db, err := database.New(ctx, cfg.DB, log)
	if err != nil {
		log.Error("init database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	appCache, err := cache.New(cfg.Cache, log)
	if err != nil {
		log.Error("init cache", "error", err)
		os.Exit(1)
	}
	defer appCache.Close()

	reviews, err := reviewstore.New(ctx, cfg.Reviews, db, log)
	if err != nil {
		log.Error("init review store", "error", err)
		os.Exit(1)
	}

	blobs, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		log.Error("init blob storage", "error", err)
		os.Exit(1)
	}

	var notifier queue.Notifier
	if cfg.Queue.Enabled {
		notifier, err = queue.New(ctx, cfg.Queue, log)
		if err != nil {
			log.Error("init queue", "error", err)
			os.Exit(1)
		}
		defer notifier.Close()
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Services
	authSvc := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	productSvc := service.NewProductService(productRepo, appCache, log)
	cartSvc := service.NewCartService(cartRepo, productRepo)
	orderSvc := service.NewOrderService(orderRepo, cartRepo, productRepo, notifier, log)
	reviewSvc := service.NewReviewService(reviews, appCache, log)

	// Handlers
	authH := handler.NewAuthHandler(authSvc)
	productH := handler.NewProductHandler(productSvc)
	cartH := handler.NewCartHandler(cartSvc)
	orderH := handler.NewOrderHandler(orderSvc)
	reviewH := handler.NewReviewHandler(reviewSvc)
	uploadH := handler.NewUploadHandler(blobs)
	healthH := handler.NewHealthHandler(db)

	// Router
	router := gin.Default()
	router.GET("/healthz", healthH.Healthz)
	router.GET("/readyz", healthH.Readyz)
	if cfg.Storage.Backend == config.StorageBackendLocal {
		router.Static("/uploads", cfg.Storage.UploadsDir)
	}

	authRequired := middleware.AuthRequired(cfg.JWT.Secret)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/signup", authH.Signup)
		auth.POST("/login", authH.Login)
		auth.GET("/me", authRequired, authH.Me)

		products := api.Group("/products")
		products.GET("", productH.List)
		products.GET("/:id", productH.GetByID)
		products.GET("/:id/reviews", reviewH.List)
		products.POST("/:id/reviews", authRequired, reviewH.Create)

		cart := api.Group("/cart", authRequired)
		cart.GET("", cartH.List)
		cart.POST("", cartH.AddItem)
		cart.PUT("/:itemId", cartH.UpdateItem)
		cart.DELETE("/:itemId", cartH.DeleteItem)
		cart.DELETE("", cartH.Clear)

		orders := api.Group("/orders", authRequired)
		orders.POST("", orderH.Create)
		orders.GET("", orderH.List)

		upload := api.Group("/upload", authRequired)
		upload.POST("", uploadH.Upload)
		upload.POST("/presigned", uploadH.Presigned)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting HTTP server", "port", cfg.Server.Port,
			"db", cfg.DB.Backend, "cache", cfg.Cache.Backend,
			"reviews", cfg.Reviews.Backend, "storage", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}
	log.Info("server stopped")
}
