package ui

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
)

// OpsServer is the operational sidecar router: health probes and profiling.
// It runs on its own port so the API surface stays clean.
type OpsServer struct {
	router *chi.Mux
	db     *sqlx.DB
}

// NewOpsServer creates the operational router
func NewOpsServer(db *sqlx.DB) *OpsServer {
	s := &OpsServer{
		router: chi.NewRouter(),
		db:     db,
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/readyz", s.handleReady)
	s.router.Mount("/debug", middleware.Profiler())

	return s
}

// Run starts the operational server
func (s *OpsServer) Run(addr string) error {
	log.Printf("[OpsServer] listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// handleHealth reports process liveness
func (s *OpsServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleReady reports readiness by pinging the database
func (s *OpsServer) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		log.Printf("[OpsServer] readiness check failed: %v", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}
