// ABOUTME: Profile storage and identity for the Charm backend.
// ABOUTME: The signed-in identity is the linked Charm account.
package charm

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/storage"
)

var _ storage.ProfileRepository = (*Client)(nil)

// CreateProfile stores a profile keyed by its ID.
func (c *Client) CreateProfile(ctx context.Context, p *models.Profile) error {
	if existing, err := c.FindProfileByEmail(ctx, p.Email); err == nil && existing.ID != p.ID {
		return fmt.Errorf("create profile: email %s already registered", p.Email)
	}
	stored := *p
	stored.Email = strings.ToLower(p.Email)
	if err := c.put(ProfilePrefix, p.ID, &stored); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// GetProfile returns the profile with the given ID.
func (c *Client) GetProfile(_ context.Context, id string) (*models.Profile, error) {
	profiles, err := c.profiles()
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, storage.ErrNotFound
}

// FindProfileByEmail returns the profile registered under email.
func (c *Client) FindProfileByEmail(_ context.Context, email string) (*models.Profile, error) {
	profiles, err := c.profiles()
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		if strings.EqualFold(p.Email, email) {
			return p, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (c *Client) profiles() ([]*models.Profile, error) {
	allData, err := c.listByPrefix(ProfilePrefix)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	var profiles []*models.Profile
	for _, data := range allData {
		p, err := unmarshalJSON[models.Profile](data)
		if err != nil {
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// Current returns the profile for the linked Charm account. The ID is the
// Charm user ID, so records written here are owned by that account.
func (c *Client) Current(ctx context.Context) (*models.Profile, error) {
	id, err := c.ID()
	if err != nil {
		return nil, fmt.Errorf("charm identity: %w", err)
	}
	if p, err := c.GetProfile(ctx, id); err == nil {
		return p, nil
	}
	return &models.Profile{ID: id}, nil
}
