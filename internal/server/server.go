// Package server exposes the estimation engine, comparison analyzer, and
// assessment store over an HTTP JSON API. Errors travel in an {"error": msg}
// envelope; every request gets a request id and one structured log line.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/metalpath/metalpath/internal/engine"
	"github.com/metalpath/metalpath/internal/logging"
	"github.com/metalpath/metalpath/internal/store"
)

// serviceName identifies this service in health responses.
const serviceName = "metalpath"

const (
	defaultShutdownTimeout = 30 * time.Second
	readHeaderTimeout      = 10 * time.Second
	corsMaxAgeSeconds      = 300
)

// Config holds the HTTP server settings.
type Config struct {
	// Addr is the listen address, host:port.
	Addr string
	// AllowedOrigins configures CORS. Empty allows any http/https origin.
	AllowedOrigins []string
	// Version is reported by the health endpoint.
	Version string
	// ShutdownTimeout bounds graceful connection draining on stop.
	ShutdownTimeout time.Duration
}

// Server wires the engine and store into a chi router.
type Server struct {
	cfg    Config
	engine *engine.Engine
	store  *store.Store
	logger zerolog.Logger
	router chi.Router
}

// New assembles a Server with its full middleware stack and routes.
func New(cfg Config, eng *engine.Engine, st *store.Store, logger zerolog.Logger) *Server {
	s := &Server{cfg: cfg, engine: eng, store: st, logger: logger}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"https://*", "http://*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           corsMaxAgeSeconds,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/metals", s.handleListMetals)
		r.Get("/metals/{metal}", s.handleGetMetal)
		r.Post("/assess", s.handleAssess)
		r.Post("/compare", s.handleCompare)
		r.Get("/assessments/{userID}", s.handleListAssessments)
		r.Get("/dashboard/{userID}", s.handleDashboard)
	})

	s.router = r
	return s
}

// Router returns the assembled handler. Tests drive it directly through
// httptest without binding a port.
func (s *Server) Router() http.Handler { return s.router }

// Run serves until ctx is canceled, then drains in-flight connections within
// the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return logging.WithContext(context.Background(), s.logger)
		},
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("component", "server").
			Str("operation", "listen").
			Str("addr", s.cfg.Addr).
			Msg("HTTP server listening")
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info().
		Str("component", "server").
		Str("operation", "shutdown").
		Dur("timeout", timeout).
		Msg("Shutting down HTTP server")

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
