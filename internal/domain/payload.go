package domain

// Request payloads decoded straight from JSON bodies.
//
// Every field is a pointer so the service layer can tell an absent key from
// a zero value: creates and full replaces require the mandatory keys,
// partial updates only touch the keys that are present. Dates are kept as
// strings ("2006-01-02") so a malformed value becomes a field error instead
// of a body decoding failure.

// TravelerPayload is the writable shape of a Traveler.
type TravelerPayload struct {
	Name         *string `json:"name"`
	NumAdults    *int    `json:"num_adults"`
	NumInfants   *int    `json:"num_infants"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
}

// ServiceVoucherPayload is the writable shape of the service voucher
// aggregate.
//
// RoomAllocations and ItineraryItems are pointers to slices: nil means the
// key was absent and the stored collection is kept, a non-nil empty slice
// means the collection is cleared.
type ServiceVoucherPayload struct {
	Traveler                *TravelerPayload         `json:"traveler"`
	ReservationNumber       *string                  `json:"reservation_number"`
	HotelConfirmationNumber *string                  `json:"hotel_confirmation_number"`
	TravelStartDate         *string                  `json:"travel_start_date"`
	TravelEndDate           *string                  `json:"travel_end_date"`
	HotelName               *string                  `json:"hotel_name"`
	TransferType            *string                  `json:"transfer_type"`
	MealPlan                *string                  `json:"meal_plan"`
	Inclusions              *string                  `json:"inclusions"`
	ArrivalDetails          *string                  `json:"arrival_details"`
	DepartureDetails        *string                  `json:"departure_details"`
	MeetingPoint            *string                  `json:"meeting_point"`
	RoomAllocations         *[]RoomAllocationPayload `json:"room_allocations"`
	ItineraryItems          *[]ItineraryPayload      `json:"itinerary_items"`
}

// RoomAllocationPayload is the writable shape of a RoomAllocation.
type RoomAllocationPayload struct {
	RoomType *string `json:"room_type"`
	Quantity *int    `json:"quantity"`
}

// ItineraryPayload is the writable shape of an Itinerary.
// ServiceVoucher is only read by the standalone itinerary endpoints;
// Activities only by the voucher aggregate write.
type ItineraryPayload struct {
	ServiceVoucher *string            `json:"service_voucher"`
	Day            *int               `json:"day"`
	Date           *string            `json:"date"`
	Activities     *[]ActivityPayload `json:"activities"`
}

// ActivityPayload is the writable shape of an ItineraryActivity.
// Itinerary is only read by the standalone activity endpoints.
type ActivityPayload struct {
	Itinerary    *string `json:"itinerary"`
	Time         *string `json:"time"`
	ActivityType *string `json:"activity_type"`
	Description  *string `json:"description"`
	Location     *string `json:"location"`
	Notes        *string `json:"notes"`
}

// HotelVoucherPayload is the writable shape of a HotelVoucher.
type HotelVoucherPayload struct {
	HotelName          *string `json:"hotel_name"`
	HotelAddress       *string `json:"hotel_address"`
	GuestName          *string `json:"guest_name"`
	CheckInDate        *string `json:"check_in_date"`
	CheckOutDate       *string `json:"check_out_date"`
	RoomType           *string `json:"room_type"`
	NumberOfRooms      *int    `json:"number_of_rooms"`
	ConfirmationNumber *string `json:"confirmation_number"`
	SpecialRequests    *string `json:"special_requests"`
}
