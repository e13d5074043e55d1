package domain

import (
	"time"

	"github.com/google/uuid"
)

// HotelVoucher is a standalone accommodation voucher with no relations to
// travelers or service vouchers.
type HotelVoucher struct {
	ID                 uuid.UUID `json:"id"`
	HotelName          string    `json:"hotel_name" validate:"required,max=200"`
	HotelAddress       string    `json:"hotel_address" validate:"max=500"`
	GuestName          string    `json:"guest_name" validate:"required,max=200"`
	CheckInDate        time.Time `json:"check_in_date"`
	CheckOutDate       time.Time `json:"check_out_date"`
	RoomType           RoomType  `json:"room_type" validate:"omitempty,choice"`
	NumberOfRooms      int       `json:"number_of_rooms" validate:"min=1,max=2147483647"`
	ConfirmationNumber string    `json:"confirmation_number" validate:"required,max=50"`
	SpecialRequests    string    `json:"special_requests"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewHotelVoucher returns a HotelVoucher carrying the column defaults.
func NewHotelVoucher() HotelVoucher {
	return HotelVoucher{NumberOfRooms: 1}
}

// Nights is the number of nights between check-in and check-out.
func (h HotelVoucher) Nights() int {
	n := int(h.CheckOutDate.Sub(h.CheckInDate).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}
