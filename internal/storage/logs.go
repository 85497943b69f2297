// ABOUTME: Feeding log and water change operations for SQL storage.
// ABOUTME: Both are append-only event logs with optional notes.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/betta/internal/models"
)

const (
	feedingColumns = `id, owner_id, tank_id, food_type, amount, notes, created_at`
	changeColumns  = `id, owner_id, tank_id, percentage, notes, created_at`
)

// CreateFeedingLog appends a feeding.
func (d *DB) CreateFeedingLog(ctx context.Context, f *models.FeedingLog) error {
	err := d.exec(ctx, `INSERT INTO feeding_logs (`+feedingColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.ID.String(),
		f.OwnerID,
		f.TankID.String(),
		f.FoodType,
		f.Amount,
		nullString(f.Notes),
		formatTime(f.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create feeding log: %w", err)
	}
	return nil
}

// GetLatestFeedingLog returns the owner's most recent feeding.
func (d *DB) GetLatestFeedingLog(ctx context.Context, ownerID string) (*models.FeedingLog, error) {
	row := d.queryRow(ctx, `SELECT `+feedingColumns+` FROM feeding_logs WHERE owner_id = ? ORDER BY created_at DESC LIMIT 1`, ownerID)
	f, err := scanFeedingLog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get latest feeding log: %w", err)
	}
	return f, nil
}

// ListFeedingLogs returns the owner's feedings, newest first.
func (d *DB) ListFeedingLogs(ctx context.Context, ownerID string, limit int) ([]*models.FeedingLog, error) {
	query, args := withLimit(`SELECT `+feedingColumns+` FROM feeding_logs WHERE owner_id = ? ORDER BY created_at DESC`, []any{ownerID}, limit)
	rows, err := d.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list feeding logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.FeedingLog
	for rows.Next() {
		f, err := scanFeedingLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feeding log: %w", err)
		}
		logs = append(logs, f)
	}
	return logs, rows.Err()
}

func scanFeedingLog(row rowScanner) (*models.FeedingLog, error) {
	var f models.FeedingLog
	var idStr, tankID, createdAt string
	var notes sql.NullString

	if err := row.Scan(&idStr, &f.OwnerID, &tankID, &f.FoodType, &f.Amount, &notes, &createdAt); err != nil {
		return nil, err
	}

	f.ID, _ = uuid.Parse(idStr)
	f.TankID, _ = uuid.Parse(tankID)
	f.Notes = stringPtr(notes)
	f.CreatedAt = parseTime(createdAt)
	return &f, nil
}

// CreateWaterChange appends a water change.
func (d *DB) CreateWaterChange(ctx context.Context, c *models.WaterChange) error {
	err := d.exec(ctx, `INSERT INTO water_changes (`+changeColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID.String(),
		c.OwnerID,
		c.TankID.String(),
		c.Percentage,
		nullString(c.Notes),
		formatTime(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create water change: %w", err)
	}
	return nil
}

// GetLatestWaterChange returns the owner's most recent water change.
func (d *DB) GetLatestWaterChange(ctx context.Context, ownerID string) (*models.WaterChange, error) {
	row := d.queryRow(ctx, `SELECT `+changeColumns+` FROM water_changes WHERE owner_id = ? ORDER BY created_at DESC LIMIT 1`, ownerID)
	c, err := scanWaterChange(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get latest water change: %w", err)
	}
	return c, nil
}

// ListWaterChanges returns the owner's water changes, newest first.
func (d *DB) ListWaterChanges(ctx context.Context, ownerID string, limit int) ([]*models.WaterChange, error) {
	query, args := withLimit(`SELECT `+changeColumns+` FROM water_changes WHERE owner_id = ? ORDER BY created_at DESC`, []any{ownerID}, limit)
	rows, err := d.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list water changes: %w", err)
	}
	defer rows.Close()

	var changes []*models.WaterChange
	for rows.Next() {
		c, err := scanWaterChange(rows)
		if err != nil {
			return nil, fmt.Errorf("scan water change: %w", err)
		}
		changes = append(changes, c)
	}
	return changes, rows.Err()
}

func scanWaterChange(row rowScanner) (*models.WaterChange, error) {
	var c models.WaterChange
	var idStr, tankID, createdAt string
	var notes sql.NullString

	if err := row.Scan(&idStr, &c.OwnerID, &tankID, &c.Percentage, &notes, &createdAt); err != nil {
		return nil, err
	}

	c.ID, _ = uuid.Parse(idStr)
	c.TankID, _ = uuid.Parse(tankID)
	c.Notes = stringPtr(notes)
	c.CreatedAt = parseTime(createdAt)
	return &c, nil
}
