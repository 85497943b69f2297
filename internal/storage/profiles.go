// ABOUTME: Profile operations for SQL storage.
// ABOUTME: Emails are matched case-insensitively and stored lowercased.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/betta/internal/models"
)

const profileColumns = `id, email, display_name, created_at`

// CreateProfile inserts a profile row.
func (d *DB) CreateProfile(ctx context.Context, p *models.Profile) error {
	err := d.exec(ctx, `INSERT INTO profiles (`+profileColumns+`) VALUES (?, ?, ?, ?)`,
		p.ID,
		strings.ToLower(p.Email),
		nullString(p.DisplayName),
		formatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// GetProfile returns the profile with the given ID.
func (d *DB) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	p, err := scanProfile(d.queryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

// FindProfileByEmail returns the profile registered under email.
func (d *DB) FindProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	p, err := scanProfile(d.queryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE email = ?`, strings.ToLower(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return p, nil
}

func scanProfile(row rowScanner) (*models.Profile, error) {
	var p models.Profile
	var createdAt string
	var displayName sql.NullString

	if err := row.Scan(&p.ID, &p.Email, &displayName, &createdAt); err != nil {
		return nil, err
	}

	p.DisplayName = stringPtr(displayName)
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}
