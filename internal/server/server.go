package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/me/insadmin/internal/apiclient"
	"github.com/me/insadmin/internal/config"
	"github.com/me/insadmin/internal/store"
	"github.com/me/insadmin/internal/ui"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Server is the insadmin console server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	store     store.Store
	client    *apiclient.Client
	ui        *ui.UI // UI handler for web interface
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, st store.Store, client *apiclient.Client, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		store:     st,
		client:    client,
	}

	s.ui = ui.New(st, client, logger, ui.Config{
		Secure:     cfg.SecureCookies,
		SessionTTL: cfg.SessionTTL,
		CacheTTL:   cfg.CacheTTL,
		Locale:     cfg.Locale,
	})

	s.routes()
	return s
}

// StartSessionCleanup removes expired sessions every interval until ctx
// is done.
func (s *Server) StartSessionCleanup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.ui.Sessions().CleanupExpiredSessions(ctx)
				if err != nil {
					s.logger.Error("session cleanup failed", "error", err)
					continue
				}
				if n > 0 {
					s.logger.Info("expired sessions removed", "count", n)
				}
			}
		}
	}()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))
	r.Use(metricsMiddleware)

	r.Handle("/metrics", promhttp.Handler())

	// UI routes (HTML)
	s.ui.RegisterRoutes(r)

	// API routes (JSON)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", s.handleDiscovery)
		r.Get("/health", s.handleHealth)
	})
}
