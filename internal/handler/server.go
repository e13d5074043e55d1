// Package handler implements the HTTP handlers for the travel operations API.
// All handlers are methods on Server. Methods are split into resource files
// (traveler.go, voucher.go, etc.) but share the same Server struct so they
// can access its dependencies. Routes wires them onto a chi router.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/travelops/operations/internal/domain"
)

// TravelerServicer defines the business operations the traveler handlers
// depend on. Defining the interface here (in the consumer package) lets
// handler tests inject a mock without touching the database or service layer.
type TravelerServicer interface {
	Create(ctx context.Context, p domain.TravelerPayload) (domain.Traveler, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Traveler, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Traveler, int64, error)
	Replace(ctx context.Context, id uuid.UUID, p domain.TravelerPayload) (domain.Traveler, error)
	Patch(ctx context.Context, id uuid.UUID, p domain.TravelerPayload) (domain.Traveler, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// VoucherServicer defines the service voucher aggregate operations.
type VoucherServicer interface {
	Create(ctx context.Context, p domain.ServiceVoucherPayload) (domain.ServiceVoucherDetail, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.ServiceVoucherDetail, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.ServiceVoucherDetail, int64, error)
	Update(ctx context.Context, id uuid.UUID, p domain.ServiceVoucherPayload) (domain.ServiceVoucherDetail, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddRoom(ctx context.Context, voucherID uuid.UUID, p domain.RoomAllocationPayload) (domain.RoomAllocation, error)
}

// ItineraryServicer defines the standalone itinerary-day operations.
type ItineraryServicer interface {
	Create(ctx context.Context, p domain.ItineraryPayload) (domain.Itinerary, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Itinerary, error)
	ListPaged(ctx context.Context, voucherID *uuid.UUID, p domain.PaginationParams) ([]domain.Itinerary, int64, error)
	Replace(ctx context.Context, id uuid.UUID, p domain.ItineraryPayload) (domain.Itinerary, error)
	Patch(ctx context.Context, id uuid.UUID, p domain.ItineraryPayload) (domain.Itinerary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ActivityServicer defines the standalone itinerary-activity operations.
type ActivityServicer interface {
	Create(ctx context.Context, p domain.ActivityPayload) (domain.ItineraryActivity, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.ItineraryActivity, error)
	ListPaged(ctx context.Context, itineraryID *uuid.UUID, p domain.PaginationParams) ([]domain.ItineraryActivity, int64, error)
	Replace(ctx context.Context, id uuid.UUID, p domain.ActivityPayload) (domain.ItineraryActivity, error)
	Patch(ctx context.Context, id uuid.UUID, p domain.ActivityPayload) (domain.ItineraryActivity, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// HotelVoucherServicer defines the standalone hotel voucher operations.
type HotelVoucherServicer interface {
	Create(ctx context.Context, p domain.HotelVoucherPayload) (domain.HotelVoucher, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.HotelVoucher, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.HotelVoucher, int64, error)
	Replace(ctx context.Context, id uuid.UUID, p domain.HotelVoucherPayload) (domain.HotelVoucher, error)
	Patch(ctx context.Context, id uuid.UUID, p domain.HotelVoucherPayload) (domain.HotelVoucher, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ExportServicer produces the flat voucher export.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.VoucherExportRow, error)
}

// Pinger reports whether the database is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services bundles the Server's dependencies. Nil entries are allowed in
// tests that only exercise some routes.
type Services struct {
	Travelers     TravelerServicer
	Vouchers      VoucherServicer
	Itineraries   ItineraryServicer
	Activities    ActivityServicer
	HotelVouchers HotelVoucherServicer
	Export        ExportServicer
	DB            Pinger
}

// Server holds the dependencies shared by every handler.
type Server struct {
	travelers   TravelerServicer
	vouchers    VoucherServicer
	itineraries ItineraryServicer
	activities  ActivityServicer
	hotels      HotelVoucherServicer
	export      ExportServicer
	db          Pinger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(svc Services) *Server {
	return &Server{
		travelers:   svc.Travelers,
		vouchers:    svc.Vouchers,
		itineraries: svc.Itineraries,
		activities:  svc.Activities,
		hotels:      svc.HotelVouchers,
		export:      svc.Export,
		db:          svc.DB,
	}
}

// Routes returns the API router. Trailing slashes are optional on every path.
// Cross-cutting middleware (request id, logging, CORS, body limit) is applied
// by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.StripSlashes)

	r.Get("/healthz", s.GetHealth)
	r.Get("/readyz", s.GetReady)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/docs", http.RedirectHandler("/docs/index.html", http.StatusMovedPermanently).ServeHTTP)
	r.Get("/docs/*", s.swaggerUI())

	r.Route("/api", func(r chi.Router) {
		r.Route("/travelers", func(r chi.Router) {
			r.Get("/", s.ListTravelers)
			r.Post("/", s.CreateTraveler)
			r.Get("/{id}", s.GetTraveler)
			r.Put("/{id}", s.ReplaceTraveler)
			r.Patch("/{id}", s.PatchTraveler)
			r.Delete("/{id}", s.DeleteTraveler)
		})
		r.Route("/service-vouchers", func(r chi.Router) {
			r.Get("/", s.ListVouchers)
			r.Post("/", s.CreateVoucher)
			r.Get("/{id}", s.GetVoucher)
			r.Put("/{id}", s.UpdateVoucher)
			r.Patch("/{id}", s.UpdateVoucher)
			r.Delete("/{id}", s.DeleteVoucher)
			r.Post("/{id}/add_room", s.AddRoom)
		})
		r.Route("/itinerary", func(r chi.Router) {
			r.Get("/", s.ListItineraries)
			r.Post("/", s.CreateItinerary)
			r.Get("/{id}", s.GetItinerary)
			r.Put("/{id}", s.ReplaceItinerary)
			r.Patch("/{id}", s.PatchItinerary)
			r.Delete("/{id}", s.DeleteItinerary)
		})
		r.Route("/itinerary-activities", func(r chi.Router) {
			r.Get("/", s.ListActivities)
			r.Post("/", s.CreateActivity)
			r.Get("/{id}", s.GetActivity)
			r.Put("/{id}", s.ReplaceActivity)
			r.Patch("/{id}", s.PatchActivity)
			r.Delete("/{id}", s.DeleteActivity)
		})
		r.Route("/hotel-vouchers", func(r chi.Router) {
			r.Get("/", s.ListHotelVouchers)
			r.Post("/", s.CreateHotelVoucher)
			r.Get("/{id}", s.GetHotelVoucher)
			r.Put("/{id}", s.ReplaceHotelVoucher)
			r.Patch("/{id}", s.PatchHotelVoucher)
			r.Delete("/{id}", s.DeleteHotelVoucher)
		})
		r.Get("/export/vouchers", s.GetVoucherExport)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "method not allowed"})
	})
	return r
}
