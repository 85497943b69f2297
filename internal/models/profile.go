// ABOUTME: Profile model for signed-in users of the account backend.
// ABOUTME: Guest mode has no profile; its records are owned by GuestOwnerID.
package models

import (
	"time"

	"github.com/google/uuid"
)

// GuestOwnerID owns every record written in guest mode.
const GuestOwnerID = "guest"

// Profile is a row of the profiles collection.
type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName *string   `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewProfile creates a new Profile with a generated ID.
func NewProfile(email string) *Profile {
	return &Profile{
		ID:        uuid.New().String(),
		Email:     email,
		CreatedAt: time.Now(),
	}
}

// WithDisplayName sets the display name.
func (p *Profile) WithDisplayName(name string) *Profile {
	p.DisplayName = &name
	return p
}
