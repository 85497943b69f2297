// ABOUTME: Tank history operations for SQL storage.
// ABOUTME: Each save inserts a row; the newest row is the current tank.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/betta/internal/models"
)

const tankColumns = `id, owner_id, size_gallons, heater, filter, created_at`

// CreateTank appends a tank configuration.
func (d *DB) CreateTank(ctx context.Context, t *models.Tank) error {
	err := d.exec(ctx, `INSERT INTO tanks (`+tankColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID.String(),
		t.OwnerID,
		t.SizeGallons,
		boolInt(t.Heater),
		boolInt(t.Filter),
		formatTime(t.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create tank: %w", err)
	}
	return nil
}

// GetLatestTank returns the owner's most recent tank.
func (d *DB) GetLatestTank(ctx context.Context, ownerID string) (*models.Tank, error) {
	row := d.queryRow(ctx, `SELECT `+tankColumns+` FROM tanks WHERE owner_id = ? ORDER BY created_at DESC LIMIT 1`, ownerID)
	t, err := scanTank(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get latest tank: %w", err)
	}
	return t, nil
}

// ListTanks returns the owner's tank history, newest first.
func (d *DB) ListTanks(ctx context.Context, ownerID string, limit int) ([]*models.Tank, error) {
	query, args := withLimit(`SELECT `+tankColumns+` FROM tanks WHERE owner_id = ? ORDER BY created_at DESC`, []any{ownerID}, limit)
	rows, err := d.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tanks: %w", err)
	}
	defer rows.Close()

	var tanks []*models.Tank
	for rows.Next() {
		t, err := scanTank(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tank: %w", err)
		}
		tanks = append(tanks, t)
	}
	return tanks, rows.Err()
}

func scanTank(row rowScanner) (*models.Tank, error) {
	var t models.Tank
	var idStr, createdAt string
	var heater, filter int64

	if err := row.Scan(&idStr, &t.OwnerID, &t.SizeGallons, &heater, &filter, &createdAt); err != nil {
		return nil, err
	}

	t.ID, _ = uuid.Parse(idStr)
	t.Heater = heater != 0
	t.Filter = filter != 0
	t.CreatedAt = parseTime(createdAt)
	return &t, nil
}
