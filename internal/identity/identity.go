// ABOUTME: Identity collaborator that answers "who is signed in".
// ABOUTME: Nobody signed in means the data context runs in guest mode.
package identity

import (
	"context"
	"errors"

	"github.com/harperreed/betta/internal/models"
)

var (
	// ErrNotSignedIn is returned by a Provider when there is no current user.
	ErrNotSignedIn = errors.New("identity: not signed in")
	// ErrEmailTaken is returned by SignUp for an email that already has a profile.
	ErrEmailTaken = errors.New("identity: email already registered")
	// ErrUnknownAccount is returned by SignIn for an email with no profile.
	ErrUnknownAccount = errors.New("identity: no account for that email")
)

// Provider reports the signed-in user.
type Provider interface {
	Current(ctx context.Context) (*models.Profile, error)
}

// Guest is a Provider with nobody signed in.
type Guest struct{}

// Current always returns ErrNotSignedIn.
func (Guest) Current(context.Context) (*models.Profile, error) {
	return nil, ErrNotSignedIn
}

// OwnerID returns the owner for records written by the current user,
// falling back to the guest owner when nobody is signed in.
func OwnerID(ctx context.Context, p Provider) (string, bool, error) {
	if p == nil {
		return models.GuestOwnerID, false, nil
	}
	profile, err := p.Current(ctx)
	if errors.Is(err, ErrNotSignedIn) {
		return models.GuestOwnerID, false, nil
	}
	if err != nil {
		return "", false, err
	}
	return profile.ID, true, nil
}
