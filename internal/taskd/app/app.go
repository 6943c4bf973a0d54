package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/taskdhq/taskd/internal/taskd/http"
	"github.com/taskdhq/taskd/internal/taskd/service"
	"github.com/taskdhq/taskd/internal/taskd/store"
	"github.com/taskdhq/taskd/internal/taskd/store/drivers/sqlite"
	"github.com/taskdhq/taskd/pkg/cryptox"
	"github.com/taskdhq/taskd/pkg/jwtx"
	"github.com/taskdhq/taskd/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the task service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db store.Store

	authService *service.AuthService
	taskService *service.TaskService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "taskd",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	signer, err := jwtx.NewSignerHS256([]byte(cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("init token signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256([]byte(cfg.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("init token verifier: %w", err)
	}

	app.initServices(signer)
	app.initHTTP(verifier)

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("taskd starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

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

// Shutdown drains in-flight requests and releases resources.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down taskd...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("taskd stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied")
	return nil
}

func (app *Application) initServices(signer jwtx.Signer) {
	app.authService = &service.AuthService{
		Store:     app.db,
		Hasher:    cryptox.NewArgon2Hasher(),
		Signer:    signer,
		Issuer:    app.cfg.Issuer,
		AccessTTL: app.cfg.AccessTokenTTL,
	}
	app.taskService = &service.TaskService{Store: app.db}
}

func (app *Application) initHTTP(verifier jwtx.Verifier) {
	app.router = httpapi.NewRouter(verifier, BuildVersion, app.db, app.logger)
	app.router.AuthService = app.authService
	app.router.TaskService = app.taskService
	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
}
