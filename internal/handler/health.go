package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthResponse is the body of the liveness and readiness checks.
type HealthResponse struct {
	Status  string            `json:"status"`
	Details map[string]string `json:"details,omitempty"`
}

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetReady handles GET /readyz. It pings the database and answers 503 when
// the ping fails.
func (s *Server) GetReady(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Details: map[string]string{"db": "not configured"}})
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "degraded", Details: map[string]string{"db": err.Error()}})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ready", Details: map[string]string{"db": "ok"}})
}
