package domain

import (
	"time"

	"github.com/google/uuid"
)

// ServiceVoucher is a hotel booking tying a traveler to a stay, a transfer
// and a meal plan. It is the aggregate root for room allocations and
// itinerary days.
//
// TravelEndDate is nil for open-ended stays. It is not checked against
// TravelStartDate.
type ServiceVoucher struct {
	ID                      uuid.UUID    `json:"id"`
	TravelerID              uuid.UUID    `json:"traveler_id"`
	ReservationNumber       string       `json:"reservation_number" validate:"required,max=50"`
	HotelConfirmationNumber string       `json:"hotel_confirmation_number" validate:"required,max=50"`
	TravelStartDate         time.Time    `json:"travel_start_date"`
	TravelEndDate           *time.Time   `json:"travel_end_date"`
	HotelName               string       `json:"hotel_name" validate:"required,max=200"`
	TransferType            TransferType `json:"transfer_type" validate:"required,choice"`
	MealPlan                MealPlan     `json:"meal_plan" validate:"required,choice"`
	Inclusions              string       `json:"inclusions"`
	ArrivalDetails          string       `json:"arrival_details"`
	DepartureDetails        string       `json:"departure_details"`
	MeetingPoint            string       `json:"meeting_point" validate:"max=200"`
	CreatedAt               time.Time    `json:"created_at"`
	UpdatedAt               time.Time    `json:"updated_at"`
}

// RoomAllocation is a count of rooms of one type reserved under a voucher.
// A voucher holds at most one allocation per room type.
type RoomAllocation struct {
	ID               uuid.UUID `json:"id"`
	ServiceVoucherID uuid.UUID `json:"service_voucher"`
	RoomType         RoomType  `json:"room_type" validate:"required,choice"`
	Quantity         int       `json:"quantity" validate:"min=1,max=2147483647"`
}

// NewRoomAllocation returns a RoomAllocation carrying the column defaults.
func NewRoomAllocation() RoomAllocation {
	return RoomAllocation{Quantity: 1}
}

// ServiceVoucherDetail is a voucher with every related row loaded,
// the shape returned by the aggregate read and write operations.
type ServiceVoucherDetail struct {
	ServiceVoucher
	Traveler  Traveler
	Rooms     []RoomAllocation
	Itinerary []ItineraryDay
}

// TotalRooms sums the quantities of all room allocations.
func (d ServiceVoucherDetail) TotalRooms() int {
	total := 0
	for _, r := range d.Rooms {
		total += r.Quantity
	}
	return total
}
