// ABOUTME: Session-file identity provider backed by the profiles collection.
// ABOUTME: The session lives in session.json next to the config file.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/storage"
	"github.com/harperreed/betta/internal/validation"
)

// SessionFile is the session file name inside the config directory.
const SessionFile = "session.json"

// Session is the persisted sign-in state.
type Session struct {
	ProfileID  string    `json:"profile_id"`
	Email      string    `json:"email"`
	SignedInAt time.Time `json:"signed_in_at"`
}

// SessionProvider signs users in and out against a ProfileRepository.
type SessionProvider struct {
	path     string
	profiles storage.ProfileRepository
	now      func() time.Time
}

// NewSessionProvider creates a provider storing its session at path.
func NewSessionProvider(path string, profiles storage.ProfileRepository) *SessionProvider {
	return &SessionProvider{path: path, profiles: profiles, now: time.Now}
}

// Path returns the session file location.
func (p *SessionProvider) Path() string {
	return p.path
}

// Current returns the signed-in profile. A session pointing at a profile
// that no longer exists counts as signed out.
func (p *SessionProvider) Current(ctx context.Context) (*models.Profile, error) {
	s, err := p.load()
	if err != nil {
		return nil, err
	}
	profile, err := p.profiles.GetProfile(ctx, s.ProfileID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotSignedIn
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// SignUp creates a profile for email and signs it in.
func (p *SessionProvider) SignUp(ctx context.Context, email, displayName string) (*models.Profile, error) {
	email = strings.TrimSpace(email)
	result := validation.ValidateForm(map[string]any{"email": email, "displayName": displayName}, validation.ProfileRules)
	if !result.IsValid {
		return nil, result
	}

	_, err := p.profiles.FindProfileByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, &storage.OpError{Op: "find profile", Err: err}
	}

	profile := models.NewProfile(strings.ToLower(email))
	if displayName != "" {
		profile.WithDisplayName(displayName)
	}
	if err := p.profiles.CreateProfile(ctx, profile); err != nil {
		return nil, &storage.OpError{Op: "create profile", Err: err}
	}
	if err := p.save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SignIn signs in the existing profile registered under email.
func (p *SessionProvider) SignIn(ctx context.Context, email string) (*models.Profile, error) {
	email = strings.TrimSpace(email)
	result := validation.ValidateForm(map[string]any{"email": email}, validation.ProfileRules)
	if !result.IsValid {
		return nil, result
	}

	profile, err := p.profiles.FindProfileByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrUnknownAccount
	}
	if err != nil {
		return nil, &storage.OpError{Op: "find profile", Err: err}
	}
	if err := p.save(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SignOut removes the session. Signing out twice is not an error.
func (p *SessionProvider) SignOut() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func (p *SessionProvider) load() (*Session, error) {
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return nil, ErrNotSignedIn
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil || s.ProfileID == "" {
		return nil, ErrNotSignedIn
	}
	return &s, nil
}

func (p *SessionProvider) save(profile *models.Profile) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0750); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(Session{
		ProfileID:  profile.ID,
		Email:      profile.Email,
		SignedInAt: p.now(),
	}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(p.path, data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}
