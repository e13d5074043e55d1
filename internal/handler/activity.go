package handler

import (
	"net/http"

	"github.com/travelops/operations/internal/domain"
)

// ListActivities handles GET /api/itinerary-activities.
// ?itinerary= restricts the list to one itinerary day.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	params, ok := pagination(w, r)
	if !ok {
		return
	}
	itineraryID, ok := uuidFilter(w, r, "itinerary")
	if !ok {
		return
	}
	acts, total, err := s.activities.ListPaged(r.Context(), itineraryID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listOf(acts, params, total, activityToResponse))
}

func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var body domain.ActivityPayload
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.activities.Create(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, activityToResponse(created))
}

func (s *Server) GetActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	a, err := s.activities.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activityToResponse(a))
}

func (s *Server) ReplaceActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body domain.ActivityPayload
	if !decodeBody(w, r, &body) {
		return
	}
	updated, err := s.activities.Replace(r.Context(), id, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activityToResponse(updated))
}

func (s *Server) PatchActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body domain.ActivityPayload
	if !decodeBody(w, r, &body) {
		return
	}
	updated, err := s.activities.Patch(r.Context(), id, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activityToResponse(updated))
}

func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.activities.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
