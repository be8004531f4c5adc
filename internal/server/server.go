// Package server exposes the inscription pipeline over HTTP.
//
// Routes:
//
//	POST /api/v1/render         render an inscription, respond with the artifact
//	GET  /api/v1/tree           letter trees as text, DOT or SVG
//	GET  /api/v1/styles         built-in backgrounds
//	GET  /api/v1/history        recent generations
//	GET  /api/v1/history/{id}   one generation
//	GET  /healthz               liveness
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/inscribe/pkg/history"
	"github.com/matzehuels/inscribe/pkg/pipeline"
)

const (
	// RequestTimeout bounds a single request, render included.
	RequestTimeout = 60 * time.Second

	// MaxBodyBytes bounds request bodies.
	MaxBodyBytes = 64 << 10

	shutdownTimeout = 10 * time.Second
)

// Config wires the server's collaborators.
type Config struct {
	Runner *pipeline.Runner

	// History records every render. Nil disables the history routes.
	History history.Store

	// Defaults are applied to every render request before the request's
	// own fields (typically loaded from the config file).
	Defaults pipeline.Options

	Logger *log.Logger
}

// Server is the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	history  history.Store
	defaults pipeline.Options
	logger   *log.Logger
	router   chi.Router
}

// New builds the server and its routes.
func New(cfg Config) *Server {
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	s := &Server{
		runner:   cfg.Runner,
		history:  cfg.History,
		defaults: cfg.Defaults,
		logger:   cfg.Logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.With(middleware.AllowContentType("application/json")).Post("/render", s.handleRender)
		r.Get("/tree", s.handleTree)
		r.Get("/styles", s.handleStyles)
		r.Get("/history", s.handleHistoryList)
		r.Get("/history/{id}", s.handleHistoryGet)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
