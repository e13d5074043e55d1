// export.go implements GET /api/export/vouchers.
// Returns every service voucher as a flat table.
// Supports ?format=csv (CSV attachment) or default (JSON).
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/travelops/operations/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"voucher_id", "reservation_number", "traveler_name", "num_adults", "num_infants",
	"hotel_name", "travel_start_date", "travel_end_date", "transfer_type", "meal_plan",
	"total_rooms", "itinerary_days", "itinerary_activities",
}

// ExportRow is one voucher in the JSON export.
type ExportRow struct {
	VoucherID           uuid.UUID           `json:"voucher_id"`
	ReservationNumber   string              `json:"reservation_number"`
	TravelerName        string              `json:"traveler_name"`
	NumAdults           int                 `json:"num_adults"`
	NumInfants          int                 `json:"num_infants"`
	HotelName           string              `json:"hotel_name"`
	TravelStartDate     openapi_types.Date  `json:"travel_start_date"`
	TravelEndDate       *openapi_types.Date `json:"travel_end_date"`
	TransferType        string              `json:"transfer_type"`
	MealPlan            string              `json:"meal_plan"`
	TotalRooms          int                 `json:"total_rooms"`
	ItineraryDays       int                 `json:"itinerary_days"`
	ItineraryActivities int                 `json:"itinerary_activities"`
}

// GetVoucherExport handles GET /api/export/vouchers.
func (s *Server) GetVoucherExport(w http.ResponseWriter, r *http.Request) {
	var format *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &format); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid query parameter"})
		return
	}
	if format != nil && *format != "csv" && *format != "json" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid query parameter",
			Details: domain.FieldErrors{"format": {`Must be "json" or "csv".`}},
		})
		return
	}

	rows, err := s.export.Export(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if format != nil && *format == "csv" {
		writeCSV(w, rows)
		return
	}
	out := make([]ExportRow, len(rows))
	for i, row := range rows {
		out[i] = domainRowToExportRow(row)
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as a CSV attachment.
func writeCSV(w http.ResponseWriter, rows []domain.VoucherExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="service-vouchers.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// domainRowToExportRow maps a domain.VoucherExportRow to its JSON shape.
// An empty end date becomes null.
func domainRowToExportRow(r domain.VoucherExportRow) ExportRow {
	id, _ := uuid.Parse(r.VoucherID)
	row := ExportRow{
		VoucherID:           id,
		ReservationNumber:   r.ReservationNumber,
		TravelerName:        r.TravelerName,
		NumAdults:           r.NumAdults,
		NumInfants:          r.NumInfants,
		HotelName:           r.HotelName,
		TravelStartDate:     mustParseDate(r.TravelStartDate),
		TransferType:        r.TransferType,
		MealPlan:            r.MealPlan,
		TotalRooms:          r.TotalRooms,
		ItineraryDays:       r.ItineraryDays,
		ItineraryActivities: r.ItineraryActivities,
	}
	if r.TravelEndDate != "" {
		d := mustParseDate(r.TravelEndDate)
		row.TravelEndDate = &d
	}
	return row
}

func domainRowToCSVRecord(r domain.VoucherExportRow) []string {
	return []string{
		r.VoucherID,
		r.ReservationNumber,
		r.TravelerName,
		strconv.Itoa(r.NumAdults),
		strconv.Itoa(r.NumInfants),
		r.HotelName,
		r.TravelStartDate,
		r.TravelEndDate,
		r.TransferType,
		r.MealPlan,
		strconv.Itoa(r.TotalRooms),
		strconv.Itoa(r.ItineraryDays),
		strconv.Itoa(r.ItineraryActivities),
	}
}

// mustParseDate parses an "2006-01-02" string into an openapi_types.Date.
// Panics on malformed input; callers are expected to pass service-generated dates.
func mustParseDate(s string) openapi_types.Date {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic("handler: malformed date from service: " + s)
	}
	return openapi_types.Date{Time: t}
}
