// Package server initializes and runs the application: it selects a storage
// engine, wires the auth service and router, and handles graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foryourmind/server/internal/api"
	"github.com/foryourmind/server/internal/auth"
	"github.com/foryourmind/server/internal/config"
	"github.com/foryourmind/server/internal/logging"
	"github.com/foryourmind/server/internal/storage"
	"github.com/foryourmind/server/internal/storage/memory"
	"github.com/foryourmind/server/internal/storage/postgres"
	"github.com/foryourmind/server/internal/storage/sqlite"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	store  storage.Store
	server *http.Server
}

// openStore picks the engine from configuration: an explicit sqlite path
// wins, then a database URL, then the in-memory fallback.
func openStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (storage.Store, error) {
	switch {
	case cfg.Storage.SQLitePath != "":
		logger.Info(ctx, "using sqlite storage", "path", cfg.Storage.SQLitePath)
		return sqlite.Open(ctx, cfg.Storage.SQLitePath, logger)
	case cfg.Storage.DatabaseURL != "":
		logger.Info(ctx, "using postgres storage")
		return postgres.Open(ctx, cfg.Storage.DatabaseURL, cfg.Storage.ForceTLS, logger)
	default:
		logger.Info(ctx, "using in-memory storage")
		return memory.New(), nil
	}
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	authService := auth.NewService(store, cfg.JWT, logger)
	router := api.NewRouter(api.RouterConfig{
		Store:          store,
		AuthService:    authService,
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Production:     !cfg.Server.IsDevelopment(),
	})

	return &App{
		config: cfg,
		logger: logger,
		store:  store,
		server: &http.Server{
			Addr:    cfg.Server.Addr(),
			Handler: router,
		},
	}, nil
}

// Run serves until the context is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully and closes the storage engine.
func (app *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting server", "addr", app.server.Addr, "env", app.config.Server.Env)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		_ = app.store.Close()
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err)
	}
	if err := app.store.Close(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err)
	}
	return nil
}
