// Package web serves a read-only JSON view of the leaderboards over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-match3/internal/storage"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Addr is the host:port to listen on (e.g., ":8080").
	Addr string

	// Logger receives access logs. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{Addr: ":8080"}
}

// Server exposes modes, scores and stats from a Store.
type Server struct {
	router chi.Router
	server *http.Server
	store  *storage.Store
	logger *log.Logger
}

// New builds the router and the http.Server. store may be nil, in which case
// the score endpoints answer 503.
func New(store *storage.Store, cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "match3-http",
		})
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultConfig().Addr
	}

	r := chi.NewRouter()
	s := &Server{
		router: r,
		store:  store,
		logger: logger,
		server: &http.Server{
			Addr:         cfg.Addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
	}

	r.Use(chimid.RequestID)
	r.Use(AccessLog(logger))
	r.Use(chimid.Recoverer)
	r.Use(Compression)

	r.Get("/healthz", s.health)
	r.Route("/api", func(api chi.Router) {
		api.Get("/modes", s.modes)
		api.Get("/scores/{mode}", s.scores)
		api.Get("/stats", s.stats)
	})

	return s
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting HTTP server", "address", s.server.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("web: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("shutting down HTTP server")
	return s.server.Shutdown(shutdownCtx)
}
