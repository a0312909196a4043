package app

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

	"github.com/scimplatform/console/internal/console/session"
	"github.com/scimplatform/console/internal/console/store"
	"github.com/scimplatform/console/internal/console/store/drivers/sqlite"
	"github.com/scimplatform/console/internal/console/web"
	"github.com/scimplatform/console/pkg/adminsdk"
	"github.com/scimplatform/console/pkg/cryptox"
	"github.com/scimplatform/console/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the console with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	sealer   *cryptox.Sealer
	sdk      *adminsdk.SDKClient
	sessions *session.Manager

	server *http.Server
	router *web.Router

	housekeepingStop chan struct{}
	housekeepingDone chan struct{}
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "scim-console",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		housekeepingStop: make(chan struct{}),
		housekeepingDone: make(chan struct{}),
	}

	if cfg.APIURL == "" {
		return nil, errors.New("CONSOLE_API_URL is required")
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	sealer, err := cryptox.NewSealerFromFile(cfg.SessionKeyFile)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize session sealer: %w", err)
	}
	app.sealer = sealer

	app.sdk = adminsdk.New(cfg.APIURL)
	app.sdk.OnAuthLost = func() {
		app.logger.Warn("backend rejected a session token")
	}

	app.sessions = session.NewManager(app.db, app.sdk, app.sealer, cfg.SessionTTL)

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	go app.runHousekeeping()

	app.logger.Info("console starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"api_url", app.cfg.APIURL,
	)

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

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down console...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	close(app.housekeepingStop)
	<-app.housekeepingDone

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("console stopped")
	return nil
}

// initDatabase initializes the session database and applies migrations.
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

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := web.NewRouter(BuildVersion, app.db, app.sessions, app.sdk, app.logger)
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// runHousekeeping sweeps expired sessions on an interval until shutdown.
func (app *Application) runHousekeeping() {
	defer close(app.housekeepingDone)

	ticker := time.NewTicker(app.cfg.HousekeepingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n, err := app.sessions.PurgeExpired(context.Background())
			if err != nil {
				app.logger.Error("session purge failed", "error", err)
				continue
			}
			if n > 0 {
				app.logger.Info("expired sessions purged", "count", n)
			}
		case <-app.housekeepingStop:
			return
		}
	}
}
