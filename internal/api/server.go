// Package api provides the HTTP server for Quench. It is a thin boundary
// around the journal and the gamification engine; the engine itself has no
// wire protocol.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/quench-app/quench/internal/app/gamify"
	"github.com/quench-app/quench/internal/app/journal"
	"github.com/quench-app/quench/internal/app/notify"
	"github.com/quench-app/quench/internal/health"
	"github.com/quench-app/quench/internal/infra/sqlite"
)

// Server is the Quench HTTP API server.
type Server struct {
	journal        *journal.Service
	engine         *gamify.Orchestrator
	notify         *notify.Service
	db             *sqlite.DB
	health         *health.Checker
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(j *journal.Service, engine *gamify.Orchestrator, n *notify.Service, db *sqlite.DB) *Server {
	return &Server{journal: j, engine: engine, notify: n, db: db}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealth attaches the health checker backing /health.
func (s *Server) SetHealth(h *health.Checker) { s.health = h }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": "0.1.0",
		})
	})

	r.Route("/api/users/{userID}", func(r chi.Router) {
		r.Post("/activities", s.handleCreateActivity)
		r.Get("/activities", s.handleListActivities)
		r.Get("/gamification", s.handleGetState)
		r.Post("/gamification/recompute", s.handleRecompute)
		r.Get("/badges", s.handleListBadges)
		r.Get("/achievements", s.handleListAchievements)
		r.Get("/notifications", s.handleListNotifications)
		r.Post("/notifications/{id}/shown", s.handleNotificationShown)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}
	status := http.StatusOK
	if !s.health.IsHealthy() {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]any{
		"healthy": s.health.IsHealthy(),
		"checks":  s.health.Statuses(),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
