package handler

import (
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/travelops/operations/internal/domain"
)

// Response shapes. Dates render as "2006-01-02" through openapi_types.Date;
// every enum code is paired with its display label.

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// ListResponse is the envelope of every paginated list.
type ListResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

func listOf[E, T any](items []E, p domain.PaginationParams, total int64, render func(E) T) ListResponse[T] {
	data := make([]T, len(items))
	for i, item := range items {
		data[i] = render(item)
	}
	return ListResponse[T]{
		Data:       data,
		Pagination: Pagination{Page: p.Page, Limit: p.Limit, Total: int(total)},
	}
}

type TravelerResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	NumAdults    int       `json:"num_adults"`
	NumInfants   int       `json:"num_infants"`
	ContactEmail *string   `json:"contact_email"`
	ContactPhone *string   `json:"contact_phone"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func travelerToResponse(t domain.Traveler) TravelerResponse {
	return TravelerResponse{
		ID:           t.ID,
		Name:         t.Name,
		NumAdults:    t.NumAdults,
		NumInfants:   t.NumInfants,
		ContactEmail: t.ContactEmail,
		ContactPhone: t.ContactPhone,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

type RoomAllocationResponse struct {
	ID              uuid.UUID `json:"id"`
	RoomType        string    `json:"room_type"`
	RoomTypeDisplay string    `json:"room_type_display"`
	Quantity        int       `json:"quantity"`
}

func roomToResponse(ra domain.RoomAllocation) RoomAllocationResponse {
	return RoomAllocationResponse{
		ID:              ra.ID,
		RoomType:        string(ra.RoomType),
		RoomTypeDisplay: ra.RoomType.Label(),
		Quantity:        ra.Quantity,
	}
}

type ActivityResponse struct {
	ID                  uuid.UUID `json:"id"`
	Itinerary           uuid.UUID `json:"itinerary"`
	Time                string    `json:"time"`
	ActivityType        string    `json:"activity_type"`
	ActivityTypeDisplay string    `json:"activity_type_display"`
	Description         string    `json:"description"`
	Location            string    `json:"location"`
	Notes               string    `json:"notes"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func activityToResponse(a domain.ItineraryActivity) ActivityResponse {
	return ActivityResponse{
		ID:                  a.ID,
		Itinerary:           a.ItineraryID,
		Time:                a.Time.String(),
		ActivityType:        string(a.ActivityType),
		ActivityTypeDisplay: a.ActivityType.Label(),
		Description:         a.Description,
		Location:            a.Location,
		Notes:               a.Notes,
		CreatedAt:           a.CreatedAt,
		UpdatedAt:           a.UpdatedAt,
	}
}

// ItineraryResponse is one itinerary day. Activities is only set when the
// day is rendered inside a service voucher.
type ItineraryResponse struct {
	ID             uuid.UUID           `json:"id"`
	ServiceVoucher uuid.UUID           `json:"service_voucher"`
	Day            int                 `json:"day"`
	Date           openapi_types.Date  `json:"date"`
	Activities     *[]ActivityResponse `json:"activities,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func itineraryToResponse(it domain.Itinerary) ItineraryResponse {
	return ItineraryResponse{
		ID:             it.ID,
		ServiceVoucher: it.ServiceVoucherID,
		Day:            it.Day,
		Date:           openapi_types.Date{Time: it.Date},
		CreatedAt:      it.CreatedAt,
		UpdatedAt:      it.UpdatedAt,
	}
}

func itineraryDayToResponse(d domain.ItineraryDay) ItineraryResponse {
	acts := make([]ActivityResponse, len(d.Activities))
	for i, a := range d.Activities {
		acts[i] = activityToResponse(a)
	}
	out := itineraryToResponse(d.Itinerary)
	out.Activities = &acts
	return out
}

type VoucherResponse struct {
	ID                      uuid.UUID                `json:"id"`
	Traveler                TravelerResponse         `json:"traveler"`
	ReservationNumber       string                   `json:"reservation_number"`
	HotelConfirmationNumber string                   `json:"hotel_confirmation_number"`
	TravelStartDate         openapi_types.Date       `json:"travel_start_date"`
	TravelEndDate           *openapi_types.Date      `json:"travel_end_date"`
	HotelName               string                   `json:"hotel_name"`
	TransferType            string                   `json:"transfer_type"`
	TransferTypeDisplay     string                   `json:"transfer_type_display"`
	MealPlan                string                   `json:"meal_plan"`
	MealPlanDisplay         string                   `json:"meal_plan_display"`
	Inclusions              string                   `json:"inclusions"`
	ArrivalDetails          string                   `json:"arrival_details"`
	DepartureDetails        string                   `json:"departure_details"`
	MeetingPoint            string                   `json:"meeting_point"`
	RoomAllocations         []RoomAllocationResponse `json:"room_allocations"`
	ItineraryItems          []ItineraryResponse      `json:"itinerary_items"`
	TotalRooms              int                      `json:"total_rooms"`
	CreatedAt               time.Time                `json:"created_at"`
	UpdatedAt               time.Time                `json:"updated_at"`
}

func voucherToResponse(d domain.ServiceVoucherDetail) VoucherResponse {
	out := VoucherResponse{
		ID:                      d.ID,
		Traveler:                travelerToResponse(d.Traveler),
		ReservationNumber:       d.ReservationNumber,
		HotelConfirmationNumber: d.HotelConfirmationNumber,
		TravelStartDate:         openapi_types.Date{Time: d.TravelStartDate},
		HotelName:               d.HotelName,
		TransferType:            string(d.TransferType),
		TransferTypeDisplay:     d.TransferType.Label(),
		MealPlan:                string(d.MealPlan),
		MealPlanDisplay:         d.MealPlan.Label(),
		Inclusions:              d.Inclusions,
		ArrivalDetails:          d.ArrivalDetails,
		DepartureDetails:        d.DepartureDetails,
		MeetingPoint:            d.MeetingPoint,
		RoomAllocations:         make([]RoomAllocationResponse, len(d.Rooms)),
		ItineraryItems:          make([]ItineraryResponse, len(d.Itinerary)),
		TotalRooms:              d.TotalRooms(),
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
	}
	if d.TravelEndDate != nil {
		out.TravelEndDate = &openapi_types.Date{Time: *d.TravelEndDate}
	}
	for i, ra := range d.Rooms {
		out.RoomAllocations[i] = roomToResponse(ra)
	}
	for i, day := range d.Itinerary {
		out.ItineraryItems[i] = itineraryDayToResponse(day)
	}
	return out
}

type HotelVoucherResponse struct {
	ID                 uuid.UUID          `json:"id"`
	HotelName          string             `json:"hotel_name"`
	HotelAddress       string             `json:"hotel_address"`
	GuestName          string             `json:"guest_name"`
	CheckInDate        openapi_types.Date `json:"check_in_date"`
	CheckOutDate       openapi_types.Date `json:"check_out_date"`
	NumberOfNights     int                `json:"number_of_nights"`
	RoomType           string             `json:"room_type"`
	RoomTypeDisplay    string             `json:"room_type_display"`
	NumberOfRooms      int                `json:"number_of_rooms"`
	ConfirmationNumber string             `json:"confirmation_number"`
	SpecialRequests    string             `json:"special_requests"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func hotelVoucherToResponse(h domain.HotelVoucher) HotelVoucherResponse {
	out := HotelVoucherResponse{
		ID:                 h.ID,
		HotelName:          h.HotelName,
		HotelAddress:       h.HotelAddress,
		GuestName:          h.GuestName,
		CheckInDate:        openapi_types.Date{Time: h.CheckInDate},
		CheckOutDate:       openapi_types.Date{Time: h.CheckOutDate},
		NumberOfNights:     h.Nights(),
		RoomType:           string(h.RoomType),
		NumberOfRooms:      h.NumberOfRooms,
		ConfirmationNumber: h.ConfirmationNumber,
		SpecialRequests:    h.SpecialRequests,
		CreatedAt:          h.CreatedAt,
		UpdatedAt:          h.UpdatedAt,
	}
	if h.RoomType != "" {
		out.RoomTypeDisplay = h.RoomType.Label()
	}
	return out
}
