package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// Auth endpoints share a per-IP budget; everything else is gated by the
// bearer token instead.
const (
	authRouteRate  = rate.Limit(5)
	authRouteBurst = 10
)

type Server struct {
	echo      *echo.Echo
	addr      string
	logger    logging.Logger
	users     *services.UserService
	notes     *services.NoteService
	jwtSecret []byte
}

// NewServer wires the echo instance: CORS and metrics on every route,
// rate limiting on the credential routes, the auth gate on everything that
// touches per-user data.
func NewServer(cfg *config.Config, logger logging.Logger, users *services.UserService, notes *services.NoteService) *Server {

	s := &Server{
		addr:      cfg.EndpointAddr,
		logger:    logger,
		users:     users,
		notes:     notes,
		jwtSecret: []byte(cfg.SecretKey),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.CORS())

	metrics := NewMetrics()
	e.Use(metrics.Middleware)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	authLimit := newIPRateLimiter(authRouteRate, authRouteBurst)
	e.POST("/create-account", s.handleRegister, authLimit.Middleware)
	e.POST("/login", s.handleLogin, authLimit.Middleware)

	e.GET("/get-user", s.handleGetUser, s.requireAuth)
	e.POST("/add-note", s.handleAddNote, s.requireAuth)
	e.PUT("/edit-note/:noteId", s.handleEditNote, s.requireAuth)
	e.DELETE("/delete-note/:noteId", s.handleDeleteNote, s.requireAuth)
	e.GET("/get-all-notes", s.handleListNotes, s.requireAuth)
	e.PUT("/update-note-pinned/:noteId", s.handleUpdatePinned, s.requireAuth)
	e.GET("/search-notes", s.handleSearchNotes, s.requireAuth)

	s.echo = e
	return s
}

// Handler exposes the underlying router for httptest-based tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "server shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "starting HTTP server", "addr", s.addr)

	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
