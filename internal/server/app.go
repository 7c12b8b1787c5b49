// Package server wires the application together: configuration, logging,
// database with migrations, services, and the HTTP endpoint, plus graceful
// shutdown on OS signals.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Bangbenzzz/blogerz-sub000/internal/logging"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/authz"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/config"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/httpapi"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/repositories/repomanager"
	"github.com/Bangbenzzz/blogerz-sub000/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	gate := authz.NewGate(cfg.AdminEmail)

	identity := services.NewIdentityService(db, rm, gate, cfg)
	moderation := services.NewModerationService(db, rm, gate)
	interaction := services.NewInteractionService(db, rm, gate)
	directory := services.NewDirectoryService(db, rm)
	accounts := services.NewAccountService(db, rm, gate)
	partners := services.NewPartnerService(db, rm, gate)
	settings := services.NewSettingService(db, rm, gate)
	storage := services.NewStorageService(cfg)

	srv := httpapi.NewServer(httpapi.ServerOptions{
		Logger:       logger,
		Gate:         gate,
		Identity:     identity,
		Moderation:   moderation,
		Interaction:  interaction,
		Directory:    directory,
		Accounts:     accounts,
		Partners:     partners,
		Settings:     settings,
		Storage:      storage,
		JWTSecret:    []byte(cfg.SecretKey),
		CookieMaxAge: cfg.SessionValidityDuration,
	})

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves HTTP until the context is cancelled, then shuts down
// gracefully and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	httpServer := &http.Server{
		Addr:    app.config.Addr,
		Handler: app.server.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting http server", "addr", app.config.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(ctx, "shutdown error", "error", err.Error())
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}

	return nil
}
