package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/travelops/operations/internal/domain"
	"github.com/travelops/operations/internal/handler"
)

// Hand-written test doubles for the handler's servicer interfaces.
// Each method is a function field; set only the ones a test needs.

type mockTravelerServicer struct {
	create    func(ctx context.Context, p domain.TravelerPayload) (domain.Traveler, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Traveler, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.Traveler, int64, error)
	replace   func(ctx context.Context, id uuid.UUID, p domain.TravelerPayload) (domain.Traveler, error)
	patch     func(ctx context.Context, id uuid.UUID, p domain.TravelerPayload) (domain.Traveler, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTravelerServicer) Create(ctx context.Context, p domain.TravelerPayload) (domain.Traveler, error) {
	return m.create(ctx, p)
}
func (m *mockTravelerServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Traveler, error) {
	return m.getByID(ctx, id)
}
func (m *mockTravelerServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Traveler, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockTravelerServicer) Replace(ctx context.Context, id uuid.UUID, p domain.TravelerPayload) (domain.Traveler, error) {
	return m.replace(ctx, id, p)
}
func (m *mockTravelerServicer) Patch(ctx context.Context, id uuid.UUID, p domain.TravelerPayload) (domain.Traveler, error) {
	return m.patch(ctx, id, p)
}
func (m *mockTravelerServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockVoucherServicer struct {
	create    func(ctx context.Context, p domain.ServiceVoucherPayload) (domain.ServiceVoucherDetail, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.ServiceVoucherDetail, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.ServiceVoucherDetail, int64, error)
	update    func(ctx context.Context, id uuid.UUID, p domain.ServiceVoucherPayload) (domain.ServiceVoucherDetail, error)
	delete    func(ctx context.Context, id uuid.UUID) error
	addRoom   func(ctx context.Context, voucherID uuid.UUID, p domain.RoomAllocationPayload) (domain.RoomAllocation, error)
}

func (m *mockVoucherServicer) Create(ctx context.Context, p domain.ServiceVoucherPayload) (domain.ServiceVoucherDetail, error) {
	return m.create(ctx, p)
}
func (m *mockVoucherServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.ServiceVoucherDetail, error) {
	return m.getByID(ctx, id)
}
func (m *mockVoucherServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ServiceVoucherDetail, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockVoucherServicer) Update(ctx context.Context, id uuid.UUID, p domain.ServiceVoucherPayload) (domain.ServiceVoucherDetail, error) {
	return m.update(ctx, id, p)
}
func (m *mockVoucherServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}
func (m *mockVoucherServicer) AddRoom(ctx context.Context, voucherID uuid.UUID, p domain.RoomAllocationPayload) (domain.RoomAllocation, error) {
	return m.addRoom(ctx, voucherID, p)
}

type mockItineraryServicer struct {
	create    func(ctx context.Context, p domain.ItineraryPayload) (domain.Itinerary, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	listPaged func(ctx context.Context, voucherID *uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
	replace   func(ctx context.Context, id uuid.UUID, p domain.ItineraryPayload) (domain.Itinerary, error)
	patch     func(ctx context.Context, id uuid.UUID, p domain.ItineraryPayload) (domain.Itinerary, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockItineraryServicer) Create(ctx context.Context, p domain.ItineraryPayload) (domain.Itinerary, error) {
	return m.create(ctx, p)
}
func (m *mockItineraryServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error) {
	return m.getByID(ctx, id)
}
func (m *mockItineraryServicer) ListPaged(ctx context.Context, voucherID *uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error) {
	return m.listPaged(ctx, voucherID, p)
}
func (m *mockItineraryServicer) Replace(ctx context.Context, id uuid.UUID, p domain.ItineraryPayload) (domain.Itinerary, error) {
	return m.replace(ctx, id, p)
}
func (m *mockItineraryServicer) Patch(ctx context.Context, id uuid.UUID, p domain.ItineraryPayload) (domain.Itinerary, error) {
	return m.patch(ctx, id, p)
}
func (m *mockItineraryServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockActivityServicer struct {
	create    func(ctx context.Context, p domain.ActivityPayload) (domain.ItineraryActivity, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.ItineraryActivity, error)
	listPaged func(ctx context.Context, itineraryID *uuid.UUID, p domain.PaginationParams) ([]domain.ItineraryActivity, int64, error)
	replace   func(ctx context.Context, id uuid.UUID, p domain.ActivityPayload) (domain.ItineraryActivity, error)
	patch     func(ctx context.Context, id uuid.UUID, p domain.ActivityPayload) (domain.ItineraryActivity, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockActivityServicer) Create(ctx context.Context, p domain.ActivityPayload) (domain.ItineraryActivity, error) {
	return m.create(ctx, p)
}
func (m *mockActivityServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.ItineraryActivity, error) {
	return m.getByID(ctx, id)
}
func (m *mockActivityServicer) ListPaged(ctx context.Context, itineraryID *uuid.UUID, p domain.PaginationParams) ([]domain.ItineraryActivity, int64, error) {
	return m.listPaged(ctx, itineraryID, p)
}
func (m *mockActivityServicer) Replace(ctx context.Context, id uuid.UUID, p domain.ActivityPayload) (domain.ItineraryActivity, error) {
	return m.replace(ctx, id, p)
}
func (m *mockActivityServicer) Patch(ctx context.Context, id uuid.UUID, p domain.ActivityPayload) (domain.ItineraryActivity, error) {
	return m.patch(ctx, id, p)
}
func (m *mockActivityServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockHotelVoucherServicer struct {
	create    func(ctx context.Context, p domain.HotelVoucherPayload) (domain.HotelVoucher, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.HotelVoucher, error)
	listPaged func(ctx context.Context, p domain.PaginationParams) ([]domain.HotelVoucher, int64, error)
	replace   func(ctx context.Context, id uuid.UUID, p domain.HotelVoucherPayload) (domain.HotelVoucher, error)
	patch     func(ctx context.Context, id uuid.UUID, p domain.HotelVoucherPayload) (domain.HotelVoucher, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockHotelVoucherServicer) Create(ctx context.Context, p domain.HotelVoucherPayload) (domain.HotelVoucher, error) {
	return m.create(ctx, p)
}
func (m *mockHotelVoucherServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.HotelVoucher, error) {
	return m.getByID(ctx, id)
}
func (m *mockHotelVoucherServicer) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.HotelVoucher, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockHotelVoucherServicer) Replace(ctx context.Context, id uuid.UUID, p domain.HotelVoucherPayload) (domain.HotelVoucher, error) {
	return m.replace(ctx, id, p)
}
func (m *mockHotelVoucherServicer) Patch(ctx context.Context, id uuid.UUID, p domain.HotelVoucherPayload) (domain.HotelVoucher, error) {
	return m.patch(ctx, id, p)
}
func (m *mockHotelVoucherServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockExportServicer struct {
	export func(ctx context.Context) ([]domain.VoucherExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context) ([]domain.VoucherExportRow, error) {
	return m.export(ctx)
}

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(context.Context) error { return m.err }

// compile-time checks: every mock must satisfy its handler interface.
var (
	_ handler.TravelerServicer     = (*mockTravelerServicer)(nil)
	_ handler.VoucherServicer      = (*mockVoucherServicer)(nil)
	_ handler.ItineraryServicer    = (*mockItineraryServicer)(nil)
	_ handler.ActivityServicer     = (*mockActivityServicer)(nil)
	_ handler.HotelVoucherServicer = (*mockHotelVoucherServicer)(nil)
	_ handler.ExportServicer       = (*mockExportServicer)(nil)
	_ handler.Pinger               = (*mockPinger)(nil)
)

// serve runs one request through the API router.
func serve(svc handler.Services, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, body)
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.NewServer(svc).Routes().ServeHTTP(rec, req)
	return rec
}

func bufferOf(body string) *bytes.Buffer {
	return bytes.NewBufferString(body)
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	raw := rec.Body.String()
	var v T
	require.NoError(t, json.Unmarshal([]byte(raw), &v), "body: %s", raw)
	return v
}

func ptr[T any](v T) *T { return &v }
