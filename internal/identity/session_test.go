// ABOUTME: Tests for the session identity provider.
// ABOUTME: Uses a temporary SQLite profiles table and session file.
package identity

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/betta/internal/charm"
	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/storage"
	"github.com/harperreed/betta/internal/validation"
)

func setupProvider(t *testing.T) *SessionProvider {
	t.Helper()
	tmpDir := t.TempDir()
	db, err := storage.Open(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSessionProvider(filepath.Join(tmpDir, "config", SessionFile), db)
}

func TestCurrentWithoutSession(t *testing.T) {
	p := setupProvider(t)

	if _, err := p.Current(context.Background()); !errors.Is(err, ErrNotSignedIn) {
		t.Errorf("Current() error = %v, want ErrNotSignedIn", err)
	}
}

func TestSignUpSignsIn(t *testing.T) {
	p := setupProvider(t)
	ctx := context.Background()

	profile, err := p.SignUp(ctx, "  Fish@Example.com ", "Finn")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if profile.Email != "fish@example.com" {
		t.Errorf("Email = %q, want lowercased", profile.Email)
	}
	if profile.DisplayName == nil || *profile.DisplayName != "Finn" {
		t.Errorf("DisplayName = %v, want Finn", profile.DisplayName)
	}

	current, err := p.Current(ctx)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if current.ID != profile.ID {
		t.Errorf("Current().ID = %q, want %q", current.ID, profile.ID)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	p := setupProvider(t)
	ctx := context.Background()

	if _, err := p.SignUp(ctx, "fish@example.com", ""); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if _, err := p.SignUp(ctx, "FISH@example.com", ""); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("second SignUp() error = %v, want ErrEmailTaken", err)
	}
}

func TestSignUpInvalidEmail(t *testing.T) {
	p := setupProvider(t)

	_, err := p.SignUp(context.Background(), "not-an-email", "")
	var result validation.Result
	if !errors.As(err, &result) {
		t.Fatalf("SignUp() error = %v, want validation.Result", err)
	}
	if result.Errors["email"] == "" {
		t.Errorf("expected an email error, got %v", result.Errors)
	}
}

func TestSignInAndOut(t *testing.T) {
	p := setupProvider(t)
	ctx := context.Background()

	created, err := p.SignUp(ctx, "fish@example.com", "")
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if err := p.SignOut(); err != nil {
		t.Fatalf("SignOut() error = %v", err)
	}
	if _, err := p.Current(ctx); !errors.Is(err, ErrNotSignedIn) {
		t.Errorf("Current() after sign out error = %v, want ErrNotSignedIn", err)
	}
	if err := p.SignOut(); err != nil {
		t.Errorf("second SignOut() error = %v", err)
	}

	signedIn, err := p.SignIn(ctx, "Fish@Example.com")
	if err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
	if signedIn.ID != created.ID {
		t.Errorf("SignIn().ID = %q, want %q", signedIn.ID, created.ID)
	}
}

func TestSignInUnknownAccount(t *testing.T) {
	p := setupProvider(t)

	if _, err := p.SignIn(context.Background(), "nobody@example.com"); !errors.Is(err, ErrUnknownAccount) {
		t.Errorf("SignIn() error = %v, want ErrUnknownAccount", err)
	}
}

func TestCorruptSessionIsSignedOut(t *testing.T) {
	p := setupProvider(t)

	if err := os.MkdirAll(filepath.Dir(p.Path()), 0750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p.Path(), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := p.Current(context.Background()); !errors.Is(err, ErrNotSignedIn) {
		t.Errorf("Current() error = %v, want ErrNotSignedIn", err)
	}
}

func TestStaleSessionIsSignedOut(t *testing.T) {
	p := setupProvider(t)
	if err := p.save(&models.Profile{ID: "deleted-profile"}); err != nil {
		t.Fatal(err)
	}

	if _, err := p.Current(context.Background()); !errors.Is(err, ErrNotSignedIn) {
		t.Errorf("Current() error = %v, want ErrNotSignedIn", err)
	}
}

func TestOwnerID(t *testing.T) {
	ctx := context.Background()

	owner, signedIn, err := OwnerID(ctx, Guest{})
	if err != nil || signedIn || owner != models.GuestOwnerID {
		t.Errorf("OwnerID(Guest) = %q, %v, %v", owner, signedIn, err)
	}

	owner, signedIn, err = OwnerID(ctx, nil)
	if err != nil || signedIn || owner != models.GuestOwnerID {
		t.Errorf("OwnerID(nil) = %q, %v, %v", owner, signedIn, err)
	}

	p := setupProvider(t)
	profile, err := p.SignUp(ctx, "fish@example.com", "")
	if err != nil {
		t.Fatal(err)
	}
	owner, signedIn, err = OwnerID(ctx, p)
	if err != nil || !signedIn || owner != profile.ID {
		t.Errorf("OwnerID(session) = %q, %v, %v", owner, signedIn, err)
	}
}

var (
	_ Provider = (*SessionProvider)(nil)
	_ Provider = (*charm.Client)(nil)
	_ Provider = Guest{}
)
