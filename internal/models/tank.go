// ABOUTME: Tank model for betta aquarium configuration.
// ABOUTME: Tanks are an append-only history; the newest record is the current tank.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Defaults applied when no tank has been recorded yet.
const (
	DefaultTankSizeGallons = 10.0
	MinHealthyTankGallons  = 5.0
)

// Tank represents one saved tank configuration.
type Tank struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     string    `json:"owner_id"`
	SizeGallons float64   `json:"size_gallons"`
	Heater      bool      `json:"heater"`
	Filter      bool      `json:"filter"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewTank creates a new Tank with generated UUID and current timestamp.
func NewTank(sizeGallons float64, heater, filter bool) *Tank {
	return &Tank{
		ID:          uuid.New(),
		SizeGallons: sizeGallons,
		Heater:      heater,
		Filter:      filter,
		CreatedAt:   time.Now(),
	}
}

// DefaultTank returns the tank assumed before the user saves one.
func DefaultTank() Tank {
	return Tank{SizeGallons: DefaultTankSizeGallons, Heater: true, Filter: true}
}

// WithOwner sets the owning user ID.
func (t *Tank) WithOwner(ownerID string) *Tank {
	t.OwnerID = ownerID
	return t
}

// WithCreatedAt sets a custom creation timestamp.
func (t *Tank) WithCreatedAt(ts time.Time) *Tank {
	t.CreatedAt = ts
	return t
}
