package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/travelops/operations/internal/domain"
)

// pathID binds the {id} path parameter. A malformed id cannot name an
// existing row, so it is answered with 404 like an unknown one; the
// response is written here and ok is false.
func pathID(w http.ResponseWriter, r *http.Request) (id uuid.UUID, ok bool) {
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
		return uuid.Nil, false
	}
	return id, true
}

// pagination binds ?page= and ?limit=.
func pagination(w http.ResponseWriter, r *http.Request) (domain.PaginationParams, bool) {
	var page, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid query parameter", Details: domain.FieldErrors{"page": {"A valid integer is required."}}})
		return domain.PaginationParams{}, false
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid query parameter", Details: domain.FieldErrors{"limit": {"A valid integer is required."}}})
		return domain.PaginationParams{}, false
	}
	return domain.NewPaginationParams(page, limit), true
}

// uuidFilter binds an optional UUID query parameter such as ?itinerary=.
func uuidFilter(w http.ResponseWriter, r *http.Request, name string) (*uuid.UUID, bool) {
	var id *uuid.UUID
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &id); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid query parameter", Details: domain.FieldErrors{name: {"Must be a valid UUID."}}})
		return nil, false
	}
	return id, true
}
