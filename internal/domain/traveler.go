// Package domain contains the core data types for the travel operations API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Traveler is the lead guest a service voucher is issued to.
// Contact fields are nil when not supplied.
type Traveler struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name" validate:"required,max=200"`
	NumAdults    int       `json:"num_adults" validate:"min=0,max=2147483647"`
	NumInfants   int       `json:"num_infants" validate:"min=0,max=2147483647"`
	ContactEmail *string   `json:"contact_email" validate:"omitempty,email,max=254"`
	ContactPhone *string   `json:"contact_phone" validate:"omitempty,max=20"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewTraveler returns a Traveler carrying the column defaults.
func NewTraveler() Traveler {
	return Traveler{NumAdults: 1}
}
