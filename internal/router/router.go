package router

import (
	"github.com/anonto42/night-walker/backend/internal/handlers"
	"github.com/anonto42/night-walker/backend/internal/middleware"
	"github.com/anonto42/night-walker/backend/internal/store"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Deps are the services the routes are wired to
type Deps struct {
	Store *store.Store
	Auth  interface {
		handlers.Authenticator
		middleware.TokenResolver
	}
	// Media serves GET <MediaPrefix>/:id from a blob reader. When nil and
	// StaticDir is set, files are served from disk under MediaPrefix.
	Media       handlers.BlobReader
	MediaPrefix string
	StaticDir   string
	Log         *zap.Logger
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, d Deps) {
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", handlers.Root)

	switch {
	case d.Media != nil:
		handlers.NewMediaHandler(d.Media).RegisterMediaRoutes(e, d.MediaPrefix)
		d.Log.Info("media routes configured", zap.String("prefix", d.MediaPrefix), zap.String("backend", "gridfs"))
	case d.StaticDir != "":
		e.Static(d.MediaPrefix, d.StaticDir)
		d.Log.Info("media routes configured", zap.String("prefix", d.MediaPrefix), zap.String("dir", d.StaticDir))
	}

	// Every /api route sees the user when a valid token is sent; routes
	// that need one add requireAuth.
	api := e.Group("/api", middleware.OptionalJWTAuthMiddleware(d.Auth))
	requireAuth := middleware.JWTAuthMiddleware(d.Auth)

	handlers.NewAuthHandler(d.Auth).RegisterAuthRoutes(api, requireAuth)
	handlers.NewUserHandler(d.Store).RegisterProfileRoutes(api, requireAuth)
	handlers.NewPostHandler(d.Store).RegisterPostRoutes(api, requireAuth)
	handlers.NewFeedHandler(d.Store).RegisterFeedRoutes(api, requireAuth)
	handlers.NewLikeHandler(d.Store).RegisterLikeRoutes(api, requireAuth)
	handlers.NewCommentHandler(d.Store).RegisterCommentRoutes(api, requireAuth)
	handlers.NewFollowHandler(d.Store).RegisterFollowRoutes(api, requireAuth)
	handlers.NewNotificationHandler(d.Store).RegisterNotificationRoutes(api, requireAuth)
	handlers.NewSearchHandler(d.Store).RegisterSearchRoutes(api)

	d.Log.Info("all routes configured", zap.Int("routes", len(e.Routes())))
}
