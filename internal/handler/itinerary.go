package handler

import (
	"net/http"

	"github.com/travelops/operations/internal/domain"
)

// ListItineraries handles GET /api/itinerary.
// ?service_voucher= restricts the list to one voucher.
func (s *Server) ListItineraries(w http.ResponseWriter, r *http.Request) {
	params, ok := pagination(w, r)
	if !ok {
		return
	}
	voucherID, ok := uuidFilter(w, r, "service_voucher")
	if !ok {
		return
	}
	days, total, err := s.itineraries.ListPaged(r.Context(), voucherID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listOf(days, params, total, itineraryToResponse))
}

// CreateItinerary handles POST /api/itinerary.
func (s *Server) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var body domain.ItineraryPayload
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.itineraries.Create(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, itineraryToResponse(created))
}

// GetItinerary handles GET /api/itinerary/{id}.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	it, err := s.itineraries.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(it))
}

// ReplaceItinerary handles PUT /api/itinerary/{id}.
func (s *Server) ReplaceItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body domain.ItineraryPayload
	if !decodeBody(w, r, &body) {
		return
	}
	updated, err := s.itineraries.Replace(r.Context(), id, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(updated))
}

// PatchItinerary handles PATCH /api/itinerary/{id}.
func (s *Server) PatchItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body domain.ItineraryPayload
	if !decodeBody(w, r, &body) {
		return
	}
	updated, err := s.itineraries.Patch(r.Context(), id, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, itineraryToResponse(updated))
}

// DeleteItinerary handles DELETE /api/itinerary/{id}.
func (s *Server) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.itineraries.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
