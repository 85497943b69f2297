// ABOUTME: Fish observation operations for SQL storage.
// ABOUTME: Enumerated conditions are stored as plain text and never checked here.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/betta/internal/models"
)

const fishColumns = `id, owner_id, tank_id, name, color, appetite, activity, fin_condition,
	color_condition, gill_condition, body_condition, behavior, created_at`

// CreateFish appends a fish observation.
func (d *DB) CreateFish(ctx context.Context, f *models.Fish) error {
	err := d.exec(ctx, `INSERT INTO fish (`+fishColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID.String(),
		f.OwnerID,
		f.TankID.String(),
		f.Name,
		f.Color,
		f.Appetite,
		f.Activity,
		f.FinCondition,
		f.ColorCondition,
		f.GillCondition,
		f.BodyCondition,
		f.Behavior,
		formatTime(f.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create fish: %w", err)
	}
	return nil
}

// GetLatestFish returns the owner's most recent fish observation.
func (d *DB) GetLatestFish(ctx context.Context, ownerID string) (*models.Fish, error) {
	row := d.queryRow(ctx, `SELECT `+fishColumns+` FROM fish WHERE owner_id = ? ORDER BY created_at DESC LIMIT 1`, ownerID)
	f, err := scanFish(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get latest fish: %w", err)
	}
	return f, nil
}

// ListFish returns the owner's fish observations, newest first.
func (d *DB) ListFish(ctx context.Context, ownerID string, limit int) ([]*models.Fish, error) {
	query, args := withLimit(`SELECT `+fishColumns+` FROM fish WHERE owner_id = ? ORDER BY created_at DESC`, []any{ownerID}, limit)
	rows, err := d.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fish: %w", err)
	}
	defer rows.Close()

	var fish []*models.Fish
	for rows.Next() {
		f, err := scanFish(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fish: %w", err)
		}
		fish = append(fish, f)
	}
	return fish, rows.Err()
}

func scanFish(row rowScanner) (*models.Fish, error) {
	var f models.Fish
	var idStr, tankID, createdAt string

	err := row.Scan(&idStr, &f.OwnerID, &tankID, &f.Name, &f.Color, &f.Appetite, &f.Activity,
		&f.FinCondition, &f.ColorCondition, &f.GillCondition, &f.BodyCondition, &f.Behavior, &createdAt)
	if err != nil {
		return nil, err
	}

	f.ID, _ = uuid.Parse(idStr)
	f.TankID, _ = uuid.Parse(tankID)
	f.CreatedAt = parseTime(createdAt)
	return &f, nil
}
