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

	"github.com/anonto42/night-walker/backend/internal/auth"
	"github.com/anonto42/night-walker/backend/internal/media"
	"github.com/anonto42/night-walker/backend/internal/repositories"
	"github.com/anonto42/night-walker/backend/internal/router"
	"github.com/anonto42/night-walker/backend/internal/seed"
	"github.com/anonto42/night-walker/backend/internal/store"
	"github.com/anonto42/night-walker/backend/internal/util"
	"github.com/anonto42/night-walker/backend/pkg/config"
	"github.com/anonto42/night-walker/backend/pkg/firebase"
	"github.com/anonto42/night-walker/backend/pkg/logger"
	"github.com/anonto42/night-walker/backend/validators"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(logger.Options{Level: cfg.LogLevel, Path: cfg.LogPath})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger) error {
	// Initialize database connections
	db, err := config.InitDB(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer db.CloseDB() // Ensure database connections are closed when run returns

	clock := util.NewRealClock()
	deps := router.Deps{Log: zl}

	var blobs store.BlobStore
	switch cfg.MediaBackend {
	case config.MediaBackendGridFS:
		if db.Mongo == nil {
			return errors.New("MEDIA_BACKEND=gridfs needs MONGO_URI")
		}
		gridStore, err := media.NewGridFSStore(db.Mongo.Database(cfg.MongoDatabase), "/media")
		if err != nil {
			return err
		}
		blobs, deps.Media, deps.MediaPrefix = gridStore, gridStore, "/media"
	default:
		local, err := media.NewLocalStore(cfg.MediaDir, "/static")
		if err != nil {
			return err
		}
		blobs, deps.StaticDir, deps.MediaPrefix = local, local.Dir(), "/static"
	}

	st := store.New(blobs, store.WithClock(clock))

	var sessions auth.SessionStore = auth.NewMemorySessionStore(clock)
	if db.Redis != nil {
		sessions = auth.NewRedisSessionStore(db.Redis)
	}
	authOpts := []auth.Option{auth.WithClock(clock)}
	if cfg.FirebaseCredentialsPath != "" {
		app, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			return err
		}
		authOpts = append(authOpts, auth.WithIDTokenVerifier(app.AuthClient))
		zl.Info("firebase login enabled")
	}
	service := auth.NewService(st, sessions, auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL, clock), authOpts...)

	var syncer *repositories.Syncer
	if db.Postgres != nil {
		syncer = repositories.NewSyncer(st, repositories.NewPostgresSnapshotRepository(db.Postgres), cfg.SnapshotInterval, zl)
		if err := syncer.Restore(ctx); err != nil {
			return err
		}
		go syncer.Run(ctx)
	}

	if cfg.SeedDemo {
		seeded, err := seed.Demo(st, service, clock.Now())
		if err != nil {
			return err
		}
		if seeded {
			zl.Info("demo data loaded")
		}
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()
	config.SetupMiddleware(e, zl)

	deps.Store = st
	deps.Auth = service
	router.SetupRoutes(e, deps)

	errCh := make(chan error, 1)
	go func() {
		zl.Info("starting server", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("server shutdown", zap.Error(err))
	}
	if syncer != nil {
		if err := syncer.Flush(shutdownCtx); err != nil {
			return err
		}
		zl.Info("snapshot saved")
	}
	return nil
}
