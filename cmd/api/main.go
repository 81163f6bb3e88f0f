package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/octobees/roomshare/api/internal/auth"
	"github.com/octobees/roomshare/api/internal/cache"
	"github.com/octobees/roomshare/api/internal/config"
	"github.com/octobees/roomshare/api/internal/database"
	"github.com/octobees/roomshare/api/internal/handler"
	"github.com/octobees/roomshare/api/internal/imagehost"
	"github.com/octobees/roomshare/api/internal/logger"
	middlewarepkg "github.com/octobees/roomshare/api/internal/middleware"
	"github.com/octobees/roomshare/api/internal/repository"
	"github.com/octobees/roomshare/api/internal/router"
	"github.com/octobees/roomshare/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		zl.Fatal("failed to connect database", zap.Error(err))
	}
	defer pool.Close()

	applied, err := database.Migrate(ctx, pool)
	if err != nil {
		zl.Fatal("failed to apply migrations", zap.Error(err))
	}
	zl.Info("migrations applied", zap.Strings("files", applied))

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		zl.Fatal("failed to connect redis", zap.Error(err))
	}
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		zl.Info("search cache disabled, REDIS_ADDR not set")
	}
	searchCache := cache.NewSearchCache(redisClient, cfg.Search.CacheTTL, zl)

	images, uploadsDir, err := buildImageHost(cfg)
	if err != nil {
		zl.Fatal("failed to configure image host", zap.Error(err))
	}

	metrics := service.NewMetricsService()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	listingsRepo := repository.NewPGXListingsRepository(pool)
	requestsRepo := repository.NewPGXRoomRequestsRepository(pool)
	plansRepo := repository.NewPGXSubscriptionPlansRepository(pool)

	authService := service.NewAuthService(usersRepo, jwtManager, cfg.PhoneRegion)
	userService := service.NewUserService(usersRepo, cfg.PhoneRegion)
	listingsService := service.NewListingsService(listingsRepo, images, service.ListingsOptions{
		PreviewLimit: cfg.Search.PreviewLimit,
		MaxImages:    cfg.Images.MaxFiles,
		Cache:        searchCache,
		Metrics:      metrics,
		Logger:       zl.Named("listings"),
	})
	requestsService := service.NewRoomRequestsService(requestsRepo, usersRepo, service.RoomRequestsOptions{
		PreviewLimit: cfg.Search.PreviewLimit,
		PhoneRegion:  cfg.PhoneRegion,
		Cache:        searchCache,
		Metrics:      metrics,
		Logger:       zl.Named("room_requests"),
	})
	plansService := service.NewSubscriptionsService(plansRepo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(zl))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{AllowOrigins: cfg.CORSOrigins}))
	e.Use(echoMiddleware.BodyLimit(cfg.BodyLimit))
	e.Use(middlewarepkg.Metrics(metrics))

	router.Register(e, cfg, jwtManager, router.Handlers{
		Auth:          handler.NewAuthHandler(authService, userService),
		Users:         handler.NewUserAdminHandler(userService),
		Listings:      handler.NewListingsHandler(listingsService),
		RoomRequests:  handler.NewRoomRequestsHandler(requestsService),
		Subscriptions: handler.NewSubscriptionsHandler(plansService),
		AdminUpload:   handler.NewAdminUploadHandler(listingsService),
	}, router.Options{
		Metrics:       metrics,
		UploadsDir:    uploadsDir,
		UploadsPrefix: cfg.Images.PublicURL,
	})

	serverErr := make(chan error, 1)
	go func() {
		zl.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		zl.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server error", zap.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}

// buildImageHost returns the configured image backend and, for the local
// backend, the directory to serve statically.
func buildImageHost(cfg *config.Config) (imagehost.Host, string, error) {
	if cfg.Images.Backend == "http" {
		host, err := imagehost.NewHTTPHost(nil, cfg.Images.ServiceURL)
		return host, "", err
	}
	host, err := imagehost.NewLocalHost(cfg.Images.StorageDir, cfg.Images.PublicURL)
	if err != nil {
		return nil, "", err
	}
	return host, host.Dir(), nil
}
