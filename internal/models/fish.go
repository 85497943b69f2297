// ABOUTME: Fish model and the closed vocabularies for health observations.
// ABOUTME: The first option in each vocabulary is the healthy value.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Appetite values.
const (
	AppetiteNormal     = "Normal"
	AppetiteEatingLess = "Eating less"
	AppetiteNotEating  = "Not eating at all"
)

// Activity values.
const (
	ActivityNormal        = "Normal"
	ActivityLessActive    = "Less active"
	ActivityLethargic     = "Lethargic"
	ActivityLyingAtBottom = "Lying at bottom"
)

// Fin condition values.
const (
	FinHealthy     = "Healthy"
	FinMinorDamage = "Minor damage"
	FinDamaged     = "Damaged"
	FinRotting     = "Rotting"
)

// Color condition values.
const (
	ColorVibrant = "Vibrant"
	ColorFading  = "Fading"
	ColorSpots   = "Spots/patches"
)

// Gill condition values.
const (
	GillNormal         = "Normal"
	GillRapidBreathing = "Rapid breathing"
	GillGasping        = "Gasping"
)

// Body condition values.
const (
	BodyNormal  = "Normal"
	BodyThin    = "Thin"
	BodyBloated = "Bloated"
	BodyInjured = "Injured"
)

// Behavior values.
const (
	BehaviorNormal       = "Normal"
	BehaviorHiding       = "Hiding"
	BehaviorGlassSurfing = "Glass surfing"
	BehaviorFlashing     = "Flashing"
	BehaviorClampedFins  = "Clamped fins"
)

// Option lists for each enumerated fish field, healthy value first.
var (
	AppetiteOptions       = []string{AppetiteNormal, AppetiteEatingLess, AppetiteNotEating}
	ActivityOptions       = []string{ActivityNormal, ActivityLessActive, ActivityLethargic, ActivityLyingAtBottom}
	FinConditionOptions   = []string{FinHealthy, FinMinorDamage, FinDamaged, FinRotting}
	ColorConditionOptions = []string{ColorVibrant, ColorFading, ColorSpots}
	GillConditionOptions  = []string{GillNormal, GillRapidBreathing, GillGasping}
	BodyConditionOptions  = []string{BodyNormal, BodyThin, BodyBloated, BodyInjured}
	BehaviorOptions       = []string{BehaviorNormal, BehaviorHiding, BehaviorGlassSurfing, BehaviorFlashing, BehaviorClampedFins}
)

// DefaultFishName and DefaultFishColor are used before a fish is saved.
const (
	DefaultFishName  = "My Betta"
	DefaultFishColor = "#1E90FF"
)

// Fish is one saved observation of the user's betta.
type Fish struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        string    `json:"owner_id"`
	TankID         uuid.UUID `json:"tank_id"`
	Name           string    `json:"name"`
	Color          string    `json:"color"`
	Appetite       string    `json:"appetite"`
	Activity       string    `json:"activity"`
	FinCondition   string    `json:"fin_condition"`
	ColorCondition string    `json:"color_condition"`
	GillCondition  string    `json:"gill_condition"`
	BodyCondition  string    `json:"body_condition"`
	Behavior       string    `json:"behavior"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewFish creates a healthy Fish with generated UUID and current timestamp.
func NewFish(name, color string) *Fish {
	f := DefaultFish()
	f.ID = uuid.New()
	f.Name = name
	f.Color = color
	f.CreatedAt = time.Now()
	return &f
}

// DefaultFish returns the fish assumed before the user saves one.
func DefaultFish() Fish {
	return Fish{
		Name:           DefaultFishName,
		Color:          DefaultFishColor,
		Appetite:       AppetiteNormal,
		Activity:       ActivityNormal,
		FinCondition:   FinHealthy,
		ColorCondition: ColorVibrant,
		GillCondition:  GillNormal,
		BodyCondition:  BodyNormal,
		Behavior:       BehaviorNormal,
	}
}

// WithOwner sets the owner and tank the fish belongs to.
func (f *Fish) WithOwner(ownerID string, tankID uuid.UUID) *Fish {
	f.OwnerID = ownerID
	f.TankID = tankID
	return f
}

// WithCreatedAt sets a custom creation timestamp.
func (f *Fish) WithCreatedAt(ts time.Time) *Fish {
	f.CreatedAt = ts
	return f
}

// IsOption reports whether value is one of options.
func IsOption(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
