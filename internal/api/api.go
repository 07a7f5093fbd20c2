// Package api exposes the diagram pipeline over HTTP.
//
// The service renders TOML manifests into diagram artifacts and can
// persist assembled documents for later retrieval:
//
//	POST   /v1/diagrams        - render a manifest, optionally save it
//	GET    /v1/diagrams        - list saved diagrams, newest first
//	GET    /v1/diagrams/{id}   - fetch one saved diagram
//	DELETE /v1/diagrams/{id}   - delete a saved diagram
//	GET    /healthz            - liveness probe
//
// Errors are returned as JSON envelopes carrying the machine-readable
// code from pkg/errors, mapped onto conventional HTTP status codes.
package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/sketchflow/sketchflow/pkg/pipeline"
	"github.com/sketchflow/sketchflow/pkg/store"
)

// Config holds server dependencies and listen settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Runner executes the render pipeline. Required.
	Runner *pipeline.Runner

	// Store persists diagrams. Optional: without a store the save flag
	// is rejected and the read endpoints return 404.
	Store store.Store

	// Logger defaults to log.Default.
	Logger *log.Logger

	// ShutdownTimeout bounds graceful shutdown. Zero means 10s.
	ShutdownTimeout time.Duration
}

// Server is the HTTP front end for the pipeline.
type Server struct {
	cfg    Config
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	router chi.Router
}

// NewServer wires the routes and returns a ready-to-serve server.
func NewServer(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	s := &Server{
		cfg:    cfg,
		runner: cfg.Runner,
		store:  cfg.Store,
		logger: cfg.Logger,
	}

	r := chi.NewRouter()
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/diagrams", s.handleGenerate)
		r.Get("/diagrams", s.handleList)
		r.Get("/diagrams/{id}", s.handleGet)
		r.Delete("/diagrams/{id}", s.handleDelete)
	})

	s.router = r
	return s
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe runs the server until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      http.MaxBytesHandler(s.router, 1<<20),
		ReadTimeout:  time.Minute,
		WriteTimeout: time.Minute,
		IdleTimeout:  time.Hour,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	done := make(chan error, 1)
	go func() {
		done <- srv.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", s.cfg.Addr)

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
