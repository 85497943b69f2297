// ABOUTME: WaterReading model for tank water chemistry.
// ABOUTME: Temperature is Fahrenheit; ammonia, nitrite and nitrate are ppm.
package models

import (
	"time"

	"github.com/google/uuid"
)

// WaterReading is a single water test result.
type WaterReading struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     string    `json:"owner_id"`
	TankID      uuid.UUID `json:"tank_id"`
	Temperature float64   `json:"temperature"`
	PH          float64   `json:"ph"`
	Ammonia     float64   `json:"ammonia"`
	Nitrite     float64   `json:"nitrite"`
	Nitrate     float64   `json:"nitrate"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewWaterReading creates a new WaterReading with generated UUID and current timestamp.
func NewWaterReading(temperature, ph, ammonia, nitrite, nitrate float64) *WaterReading {
	return &WaterReading{
		ID:          uuid.New(),
		Temperature: temperature,
		PH:          ph,
		Ammonia:     ammonia,
		Nitrite:     nitrite,
		Nitrate:     nitrate,
		CreatedAt:   time.Now(),
	}
}

// DefaultWaterReading returns the nominal reading assumed before any test is logged.
func DefaultWaterReading() WaterReading {
	return WaterReading{Temperature: 78, PH: 7.0, Ammonia: 0, Nitrite: 0, Nitrate: 10}
}

// WithOwner sets the owner and tank the reading belongs to.
func (w *WaterReading) WithOwner(ownerID string, tankID uuid.UUID) *WaterReading {
	w.OwnerID = ownerID
	w.TankID = tankID
	return w
}

// WithCreatedAt sets a custom creation timestamp.
func (w *WaterReading) WithCreatedAt(ts time.Time) *WaterReading {
	w.CreatedAt = ts
	return w
}

// FahrenheitToCelsius converts a temperature reading.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5 / 9
}

// CelsiusToFahrenheit converts a temperature reading.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}
