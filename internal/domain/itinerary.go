package domain

import (
	"time"

	"github.com/google/uuid"
)

// Itinerary is one calendar day within a voucher's stay.
// Day is unique per voucher; lists are ordered by Day ascending.
type Itinerary struct {
	ID               uuid.UUID `json:"id"`
	ServiceVoucherID uuid.UUID `json:"service_voucher"`
	Day              int       `json:"day" validate:"min=-2147483648,max=2147483647"`
	Date             time.Time `json:"date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ItineraryActivity is a scheduled event within one itinerary day.
// Lists are ordered by Time ascending.
type ItineraryActivity struct {
	ID           uuid.UUID    `json:"id"`
	ItineraryID  uuid.UUID    `json:"itinerary"`
	Time         TimeOfDay    `json:"time"`
	ActivityType ActivityType `json:"activity_type" validate:"required,choice"`
	Description  string       `json:"description" validate:"required"`
	Location     string       `json:"location" validate:"max=200"`
	Notes        string       `json:"notes"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NewItineraryActivity returns an ItineraryActivity carrying the column defaults.
func NewItineraryActivity() ItineraryActivity {
	return ItineraryActivity{ActivityType: ActivityOther}
}

// ItineraryDay is an itinerary row together with its activities.
type ItineraryDay struct {
	Itinerary
	Activities []ItineraryActivity
}
