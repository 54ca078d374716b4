// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - The live feed is mounted outside the request timeout and the latency histogram.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/audiencia/internal/auth"
	"github.com/taibuivan/audiencia/internal/directory"
	"github.com/taibuivan/audiencia/internal/feed"
	"github.com/taibuivan/audiencia/internal/platform/config"
	"github.com/taibuivan/audiencia/internal/platform/constants"
	"github.com/taibuivan/audiencia/internal/platform/metrics"
	"github.com/taibuivan/audiencia/internal/platform/middleware"
	"github.com/taibuivan/audiencia/internal/registration"
	"github.com/taibuivan/audiencia/internal/session"
	"github.com/taibuivan/audiencia/internal/taxonomy"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler, 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 200 when Postgres and Redis answer.
	Readiness http.HandlerFunc

	// Metrics exposes the Prometheus registry.
	Metrics http.Handler

	// Registrations handles kiosk intake, the staff day view and exports.
	Registrations *registration.Handler

	// Taxonomy serves the shared picklists.
	Taxonomy *taxonomy.Handler

	// Directory handles access requests and their approval.
	Directory *directory.Handler

	// Auth handles staff login and logout.
	Auth *auth.Handler

	// Session resolves the terminal view.
	Session *session.Handler

	// Feed streams the dashboard over a WebSocket.
	Feed *feed.Handler
}

// Security is what the authentication middleware needs.
type Security struct {
	Verifier    middleware.TokenVerifier
	Revocations middleware.RevocationChecker
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, security Security, m *metrics.Metrics, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(security.Verifier, security.Revocations))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics)
	}

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {

		// Long-lived socket: no request deadline, no latency histogram.
		api.Mount("/feed", h.Feed.Routes())

		api.Group(func(rest chi.Router) {
			rest.Use(chimw.Timeout(constants.GlobalRequestTimeout))
			rest.Use(m.Instrument)

			rest.Mount("/registrations", h.Registrations.Routes())
			rest.Mount("/taxonomy", h.Taxonomy.Routes())
			rest.Mount("/directory", h.Directory.Routes())
			rest.Mount("/auth", h.Auth.Routes())
			rest.Mount("/session", h.Session.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
// Hijacked feed sockets are not tracked by the server; the caller closes
// the event hub to release them.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
