// Package server provides the HTTP gateway for participant lookups.
//
// The server exposes a small JSON API in front of the discovery client:
//
//   - GET /participants/{id} - Look up a participant by its canonical
//     identifier (e.g. 0192:921605900). Responds 200 with a lookup summary,
//     404 with the summary when the participant is not registered, 502 when
//     the participant's SMP could not be queried, and 400 for identifiers
//     that do not parse.
//
// # Health & Metrics
//
//   - GET /health  - Liveness probe
//   - GET /metrics - Prometheus metrics (if enabled)
//
// Every response carries an X-Request-Id header; inbound values are
// honored so the gateway can sit behind a proxy that assigns IDs.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/snapbooks-app/peppol-lookup/internal/config"
	"github.com/snapbooks-app/peppol-lookup/internal/report"
	"github.com/snapbooks-app/peppol-lookup/pkg/discovery"
	"github.com/snapbooks-app/peppol-lookup/pkg/identifier"
)

// Service performs participant lookups. *discovery.Client satisfies it.
type Service interface {
	Lookup(ctx context.Context, p identifier.Participant) (*discovery.Result, error)
}

// Server is the lookup gateway
type Server struct {
	config   *config.Config
	logger   *slog.Logger
	httpSrv  *http.Server
	router   chi.Router
	lookup   Service
	metrics  *Metrics
	registry *prometheus.Registry
}

// New creates a new lookup gateway
func New(cfg *config.Config, lookup Service, logger *slog.Logger) *Server {
	registry := prometheus.NewRegistry()

	s := &Server{
		config:   cfg,
		logger:   logger,
		lookup:   lookup,
		metrics:  NewMetrics(registry),
		registry: registry,
	}

	s.router = chi.NewRouter()
	s.registerRoutes()

	s.httpSrv = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return s
}

// Handler returns the gateway's HTTP handler, for mounting in tests or a
// larger server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening on the specified address
func (s *Server) Start(addr string) error {
	s.httpSrv.Addr = addr
	s.logger.Info("starting lookup gateway",
		"addr", addr,
		"smlDomain", s.config.SML.Domain,
		"metrics", s.config.Server.Metrics.Enabled)
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) registerRoutes() {
	s.router.Use(withRequestID)

	s.router.Get("/health", s.handleHealth)
	s.router.Get("/participants/{id}", s.handleLookup)

	if s.config.Server.Metrics.Enabled {
		s.router.Method(http.MethodGet, s.config.Server.Metrics.Path,
			promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, map[string]string{"status": "ok"}, http.StatusOK)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// The path parameter may arrive percent-encoded (0192%3A921605900).
	rawID, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		s.errorResponse(w, "invalid participant identifier", http.StatusBadRequest)
		return
	}

	p, err := identifier.Parse(rawID)
	if err != nil {
		s.errorResponse(w, "invalid participant identifier", http.StatusBadRequest)
		return
	}

	result, err := s.lookup.Lookup(r.Context(), p)
	if err != nil {
		s.metrics.ObserveLookup(OutcomeError, time.Since(start))
		s.logger.Error("lookup failed",
			"participant", p.String(),
			"request_id", requestIDFrom(r.Context()),
			"error", err)
		s.errorResponse(w, "SMP metadata query failed", http.StatusBadGateway)
		return
	}

	summary := report.NewSummary(result)

	if !result.Registered {
		s.metrics.ObserveLookup(OutcomeNotRegistered, time.Since(start))
		s.logger.Info("participant not registered",
			"participant", p.String(),
			"request_id", requestIDFrom(r.Context()))
		s.jsonResponse(w, summary, http.StatusNotFound)
		return
	}

	s.metrics.ObserveLookup(OutcomeRegistered, time.Since(start))
	s.logger.Info("lookup completed",
		"participant", p.String(),
		"hostname", result.Hostname,
		"documentTypes", len(result.DocumentTypes),
		"request_id", requestIDFrom(r.Context()))
	s.jsonResponse(w, summary, http.StatusOK)
}

func (s *Server) jsonResponse(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (s *Server) errorResponse(w http.ResponseWriter, message string, status int) {
	s.jsonResponse(w, map[string]string{"error": message}, status)
}
