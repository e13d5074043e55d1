package handler

import (
	"net/http"

	"github.com/travelops/operations/internal/domain"
)

// ListHotelVouchers handles GET /api/hotel-vouchers, latest check-in first.
func (s *Server) ListHotelVouchers(w http.ResponseWriter, r *http.Request) {
	params, ok := pagination(w, r)
	if !ok {
		return
	}
	hotels, total, err := s.hotels.ListPaged(r.Context(), params)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, listOf(hotels, params, total, hotelVoucherToResponse))
}

func (s *Server) CreateHotelVoucher(w http.ResponseWriter, r *http.Request) {
	var body domain.HotelVoucherPayload
	if !decodeBody(w, r, &body) {
		return
	}
	created, err := s.hotels.Create(r.Context(), body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, hotelVoucherToResponse(created))
}

func (s *Server) GetHotelVoucher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h, err := s.hotels.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hotelVoucherToResponse(h))
}

func (s *Server) ReplaceHotelVoucher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body domain.HotelVoucherPayload
	if !decodeBody(w, r, &body) {
		return
	}
	updated, err := s.hotels.Replace(r.Context(), id, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hotelVoucherToResponse(updated))
}

func (s *Server) PatchHotelVoucher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var body domain.HotelVoucherPayload
	if !decodeBody(w, r, &body) {
		return
	}
	updated, err := s.hotels.Patch(r.Context(), id, body)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hotelVoucherToResponse(updated))
}

func (s *Server) DeleteHotelVoucher(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.hotels.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
