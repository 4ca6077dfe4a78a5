// Package server exposes the diagram pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz      liveness and build information
//	POST /v1/plan      text -> RenderPlan JSON
//	POST /v1/render    text -> svg, dot or json artifact
//	GET  /v1/events    server-sent events, one per planned diagram
//	GET  /v1/stats     pipeline and cache counters
package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/paupedrejon/conceptmap/pkg/errors"
	"github.com/paupedrejon/conceptmap/pkg/layout"
	"github.com/paupedrejon/conceptmap/pkg/notify"
	"github.com/paupedrejon/conceptmap/pkg/observability"
	"github.com/paupedrejon/conceptmap/pkg/pipeline"
)

const defaultShutdownTimeout = 10 * time.Second

// Config holds the server's dependencies.
type Config struct {
	Addr            string
	ShutdownTimeout time.Duration

	// Layout is the geometry used when a request leaves fields unset.
	Layout layout.Config

	Runner   *pipeline.Runner
	Notifier *notify.Notifier
	Counters *observability.Counters
	Logger   *log.Logger
}

// Server is the HTTP API.
type Server struct {
	addr            string
	shutdownTimeout time.Duration
	layout          layout.Config
	runner          *pipeline.Runner
	notifier        *notify.Notifier
	counters        *observability.Counters
	logger          *log.Logger
}

// New creates a server. Runner is required; nil Notifier, Counters and
// Logger get working defaults.
func New(cfg Config) *Server {
	if cfg.Notifier == nil {
		cfg.Notifier = notify.New(0)
	}
	if cfg.Counters == nil {
		cfg.Counters = observability.NewCounters()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}
	return &Server{
		addr:            cfg.Addr,
		shutdownTimeout: cfg.ShutdownTimeout,
		layout:          layout.DefaultConfig().Overlay(cfg.Layout),
		runner:          cfg.Runner,
		notifier:        cfg.Notifier,
		counters:        cfg.Counters,
		logger:          cfg.Logger,
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		requestID,
		middleware.RealIP,
		s.logRequests,
		middleware.Recoverer,
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/plan", s.handlePlan)
		r.Post("/render", s.handleRender)
		r.Get("/events", s.handleEvents)
		r.Get("/stats", s.handleStats)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

// Serve listens on the configured address and blocks until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		s.logger.Info("listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeInternal, err, "serve %s", s.addr)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()

		s.logger.Debug("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
