package handler

import (
	"net/http"

	"github.com/travelops/operations/internal/domain"
)

// ListTravelers handles GET /api/travelers.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTravelers(w http.ResponseWriter, r *http.Request) {
	params, ok := pagination(w, r)
	if !ok {
		return
	}
	travelers, total, err := s.travelers.ListPaged(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listOf(travelers, params, total, travelerToResponse))
}

// CreateTraveler handles POST /api/travelers.
func (s *Server) CreateTraveler(w http.ResponseWriter, r *http.Request) {
	var body domain.TravelerPayload
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.travelers.Create(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, travelerToResponse(created))
}

// GetTraveler handles GET /api/travelers/{id}.
func (s *Server) GetTraveler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	t, err := s.travelers.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, travelerToResponse(t))
}

// ReplaceTraveler handles PUT /api/travelers/{id}.
func (s *Server) ReplaceTraveler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body domain.TravelerPayload
	if !decodeBody(w, r, &body) {
		return
	}
	updated, err := s.travelers.Replace(r.Context(), id, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, travelerToResponse(updated))
}

// PatchTraveler handles PATCH /api/travelers/{id}.
func (s *Server) PatchTraveler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body domain.TravelerPayload
	if !decodeBody(w, r, &body) {
		return
	}
	updated, err := s.travelers.Patch(r.Context(), id, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, travelerToResponse(updated))
}

// DeleteTraveler handles DELETE /api/travelers/{id}.
// The traveler's service vouchers are deleted with it.
func (s *Server) DeleteTraveler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.travelers.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
