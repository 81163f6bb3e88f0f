package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/roomshare/api/internal/auth"
	"github.com/octobees/roomshare/api/internal/config"
	"github.com/octobees/roomshare/api/internal/handler"
	middlewarepkg "github.com/octobees/roomshare/api/internal/middleware"
	"github.com/octobees/roomshare/api/internal/service"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserAdminHandler
	Listings      *handler.ListingsHandler
	RoomRequests  *handler.RoomRequestsHandler
	Subscriptions *handler.SubscriptionsHandler
	AdminUpload   *handler.AdminUploadHandler
}

// Options carries the optional pieces of the route table.
type Options struct {
	Metrics *service.MetricsService
	// UploadsDir, when set, is served under UploadsPrefix for the local image backend.
	UploadsDir    string
	UploadsPrefix string
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers, opts Options) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	if opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(opts.Metrics.Handler()))
	}
	if opts.UploadsDir != "" {
		e.Static(opts.UploadsPrefix, opts.UploadsDir)
	}

	jwt := middlewarepkg.JWT(jwtManager)
	searchLimiter := middlewarepkg.RateLimiter(cfg.Search.RateLimit)

	api := e.Group("/api")

	api.POST("/auth/register", handlers.Auth.Register)
	api.POST("/auth/login", handlers.Auth.Login)
	api.GET("/users/me", handlers.Auth.Me, jwt)

	listings := api.Group("/listings")
	listings.GET("", handlers.Listings.List)
	listings.GET("/search", handlers.Listings.Search, searchLimiter)
	listings.GET("/:id", handlers.Listings.Get)
	listings.POST("", handlers.Listings.Create, jwt)
	listings.PUT("/:id", handlers.Listings.Update, jwt)
	listings.DELETE("/:id", handlers.Listings.Delete, jwt)

	requests := api.Group("/room-requests")
	requests.GET("", handlers.RoomRequests.List)
	requests.GET("/search", handlers.RoomRequests.Search, jwt, searchLimiter)
	requests.POST("", handlers.RoomRequests.Create, jwt)
	requests.DELETE("/:id", handlers.RoomRequests.Delete, jwt)

	plans := api.Group("/subscriptions/plans")
	plans.GET("", handlers.Subscriptions.List)
	plans.GET("/:id", handlers.Subscriptions.Get)
	adminOnly := middlewarepkg.RequireRole(auth.RoleAdmin)
	plans.POST("", handlers.Subscriptions.Create, jwt, adminOnly)
	plans.PUT("/:id", handlers.Subscriptions.Update, jwt, adminOnly)
	plans.DELETE("/:id", handlers.Subscriptions.Delete, jwt, adminOnly)

	admin := api.Group("/admin", jwt, adminOnly)
	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.PATCH("/users/:id", handlers.Users.Update)
	admin.DELETE("/users/:id", handlers.Users.Delete)
	admin.POST("/listings/import", handlers.AdminUpload.ImportListings)
}
