// Package server initializes and runs the notekeeper application: it builds
// the configuration, the Postgres-backed stores, the services and the HTTP
// server, and handles graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/dmitrijs2005/notekeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
	"github.com/dmitrijs2005/notekeeper/internal/server/shared/db"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *httpapi.Server
	repos  db.RepositoryManager
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	repos, err := db.NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	userService := services.NewUserService(repos.Users(), cfg)
	noteService := services.NewNoteService(repos.Notes())

	server := httpapi.NewServer(cfg, logger, userService, noteService)

	return &App{config: cfg, logger: logger, server: server, repos: repos}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)

	if conn := app.repos.Conn(); conn != nil {
		if closeErr := conn.Close(); closeErr != nil {
			app.logger.Error(ctx, "db close error", "error", closeErr.Error())
		}
	}

	return err
}
