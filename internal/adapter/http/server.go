// Package http serves the view API, the chart dashboard and the operational
// endpoints.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/flight-delay-insights/internal/domain"
	"github.com/couchcryptid/flight-delay-insights/internal/pipeline"
)

// ViewService computes the views served by the API.
type ViewService interface {
	sharedobs.ReadinessChecker
	Trends(ctx context.Context, f domain.TrendFilter) (domain.TrendView, error)
	Causes(ctx context.Context, f domain.CauseFilter) (domain.CauseView, error)
	Airports(ctx context.Context, f domain.AirportFilter) (domain.AirportView, error)
	Rankings(ctx context.Context) ([]domain.AirportRisk, error)
	Options(ctx context.Context, causeAirport string) (pipeline.ViewOptions, error)
	InvalidRequest(view string)
}

// Server exposes the view API plus /healthz, /readyz, and /metrics.
type Server struct {
	httpServer *http.Server
	views      ViewService
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the API, dashboard and operational routes.
func NewServer(addr string, views ViewService, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		views:  views,
		logger: logger,
	}

	mux.HandleFunc("GET /api/v1/trends", s.handleTrends)
	mux.HandleFunc("GET /api/v1/causes", s.handleCauses)
	mux.HandleFunc("GET /api/v1/airports", s.handleAirports)
	mux.HandleFunc("GET /api/v1/airports/export", s.handleAirportExport)
	mux.HandleFunc("GET /api/v1/rankings/airports", s.handleRankings)
	mux.HandleFunc("GET /api/v1/options", s.handleOptions)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(views))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) badRequest(w http.ResponseWriter, view string, err error) {
	s.views.InvalidRequest(view)
	sharedobs.WriteJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}
