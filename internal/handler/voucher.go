package handler

import (
	"net/http"

	"github.com/travelops/operations/internal/domain"
)

// ListVouchers handles GET /api/service-vouchers.
// Each item is the full aggregate: traveler, rooms, itinerary with activities.
func (s *Server) ListVouchers(w http.ResponseWriter, r *http.Request) {
	params, ok := pagination(w, r)
	if !ok {
		return
	}
	vouchers, total, err := s.vouchers.ListPaged(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listOf(vouchers, params, total, voucherToResponse))
}

// CreateVoucher handles POST /api/service-vouchers.
// The traveler, rooms and itinerary in the body are written in one
// transaction; a 400 means nothing was stored.
func (s *Server) CreateVoucher(w http.ResponseWriter, r *http.Request) {
	var body domain.ServiceVoucherPayload
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.vouchers.Create(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, voucherToResponse(created))
}

// GetVoucher handles GET /api/service-vouchers/{id}.
func (s *Server) GetVoucher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	v, err := s.vouchers.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, voucherToResponse(v))
}

// UpdateVoucher handles both PUT and PATCH /api/service-vouchers/{id}.
// Absent keys are kept; a present room_allocations or itinerary_items list
// replaces the stored collection.
func (s *Server) UpdateVoucher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body domain.ServiceVoucherPayload
	if !decodeBody(w, r, &body) {
		return
	}
	updated, err := s.vouchers.Update(r.Context(), id, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, voucherToResponse(updated))
}

// DeleteVoucher handles DELETE /api/service-vouchers/{id}.
func (s *Server) DeleteVoucher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.vouchers.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddRoom handles POST /api/service-vouchers/{id}/add_room.
func (s *Server) AddRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body domain.RoomAllocationPayload
	if !decodeBody(w, r, &body) {
		return
	}
	room, err := s.vouchers.AddRoom(r.Context(), id, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, roomToResponse(room))
}
