// ABOUTME: FeedingLog and WaterChange models for routine care events.
// ABOUTME: Both are append-only and scoped to a tank.
package models

import (
	"time"

	"github.com/google/uuid"
)

// History caps used by list views and exports.
const (
	DisplayHistoryLimit = 20
	ExportHistoryLimit  = 50
)

// FeedingLog records a single feeding.
type FeedingLog struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   string    `json:"owner_id"`
	TankID    uuid.UUID `json:"tank_id"`
	FoodType  string    `json:"food_type"`
	Amount    string    `json:"amount"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewFeedingLog creates a new FeedingLog with generated UUID and current timestamp.
func NewFeedingLog(foodType, amount string) *FeedingLog {
	return &FeedingLog{
		ID:        uuid.New(),
		FoodType:  foodType,
		Amount:    amount,
		CreatedAt: time.Now(),
	}
}

// WithNotes sets notes on the feeding.
func (f *FeedingLog) WithNotes(notes string) *FeedingLog {
	f.Notes = &notes
	return f
}

// WithOwner sets the owner and tank the feeding belongs to.
func (f *FeedingLog) WithOwner(ownerID string, tankID uuid.UUID) *FeedingLog {
	f.OwnerID = ownerID
	f.TankID = tankID
	return f
}

// WaterChange records a partial water change.
type WaterChange struct {
	ID         uuid.UUID `json:"id"`
	OwnerID    string    `json:"owner_id"`
	TankID     uuid.UUID `json:"tank_id"`
	Percentage float64   `json:"percentage"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewWaterChange creates a new WaterChange with generated UUID and current timestamp.
func NewWaterChange(percentage float64) *WaterChange {
	return &WaterChange{
		ID:         uuid.New(),
		Percentage: percentage,
		CreatedAt:  time.Now(),
	}
}

// WithNotes sets notes on the water change.
func (c *WaterChange) WithNotes(notes string) *WaterChange {
	c.Notes = &notes
	return c
}

// WithOwner sets the owner and tank the water change belongs to.
func (c *WaterChange) WithOwner(ownerID string, tankID uuid.UUID) *WaterChange {
	c.OwnerID = ownerID
	c.TankID = tankID
	return c
}
