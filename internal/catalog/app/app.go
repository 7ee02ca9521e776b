package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/kinotek/kinotek/internal/catalog/http"
	"github.com/kinotek/kinotek/internal/catalog/service"
	"github.com/kinotek/kinotek/internal/catalog/store"
	"github.com/kinotek/kinotek/internal/catalog/store/drivers/sqlite"
	"github.com/kinotek/kinotek/pkg/jwtx"
	"github.com/kinotek/kinotek/pkg/kvx"
	"github.com/kinotek/kinotek/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the catalog service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db    store.Store
	cache kvx.Store

	// Services
	tokenService    *service.TokenService
	authService     *service.AuthService
	movieService    *service.MovieService
	directorService *service.DirectorService
	genreService    *service.GenreService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "kinotek",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initCache(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("catalog service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down catalog service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.cache.Close(); err != nil {
		app.logger.Error("error closing token cache", "error", err)
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("catalog service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initCache selects the token cache backend: Redis when REDIS_ADDR is set,
// an in-process map otherwise. Single-node deployments work without Redis;
// anything load-balanced needs it so a block on one node holds on all.
func (app *Application) initCache() error {
	if app.cfg.RedisAddr == "" {
		app.cache = kvx.NewMemoryStore()
		app.logger.Info("token cache using in-process store")
		return nil
	}

	cache, err := kvx.NewRedisStore(context.Background(),
		app.cfg.RedisAddr, app.cfg.RedisPassword, app.cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.cache = cache
	app.logger.Info("token cache using redis", "addr", app.cfg.RedisAddr)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	issuer := &jwtx.Issuer{
		AccessSecret:  []byte(app.cfg.AccessTokenSecret),
		RefreshSecret: []byte(app.cfg.RefreshTokenSecret),
		AccessTTL:     app.cfg.AccessTokenTTL,
		RefreshTTL:    app.cfg.RefreshTokenTTL,
	}

	app.tokenService = &service.TokenService{Codec: issuer, Cache: app.cache}
	app.authService = &service.AuthService{
		Store:      app.db,
		Tokens:     app.tokenService,
		HashRounds: app.cfg.HashRounds,
	}
	app.movieService = &service.MovieService{Store: app.db}
	app.directorService = &service.DirectorService{Store: app.db}
	app.genreService = &service.GenreService{Store: app.db}
}

// initHTTP wires the router and HTTP server
func (app *Application) initHTTP() {
	app.router = httpapi.NewRouter(app.db, BuildVersion, app.logger)
	app.router.TokenService = app.tokenService
	app.router.AuthService = app.authService
	app.router.MovieService = app.movieService
	app.router.DirectorService = app.directorService
	app.router.GenreService = app.genreService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
}
