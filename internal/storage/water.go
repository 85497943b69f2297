// ABOUTME: Water reading operations for SQL storage.
// ABOUTME: Readings form a time series; the newest is the current water state.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/betta/internal/models"
)

const waterColumns = `id, owner_id, tank_id, temperature, ph, ammonia, nitrite, nitrate, created_at`

// CreateWaterReading appends a water test result.
func (d *DB) CreateWaterReading(ctx context.Context, w *models.WaterReading) error {
	err := d.exec(ctx, `INSERT INTO water_readings (`+waterColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID.String(),
		w.OwnerID,
		w.TankID.String(),
		w.Temperature,
		w.PH,
		w.Ammonia,
		w.Nitrite,
		w.Nitrate,
		formatTime(w.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create water reading: %w", err)
	}
	return nil
}

// GetLatestWaterReading returns the owner's most recent reading.
func (d *DB) GetLatestWaterReading(ctx context.Context, ownerID string) (*models.WaterReading, error) {
	row := d.queryRow(ctx, `SELECT `+waterColumns+` FROM water_readings WHERE owner_id = ? ORDER BY created_at DESC LIMIT 1`, ownerID)
	w, err := scanWaterReading(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get latest water reading: %w", err)
	}
	return w, nil
}

// ListWaterReadings returns the owner's readings, newest first.
func (d *DB) ListWaterReadings(ctx context.Context, ownerID string, limit int) ([]*models.WaterReading, error) {
	query, args := withLimit(`SELECT `+waterColumns+` FROM water_readings WHERE owner_id = ? ORDER BY created_at DESC`, []any{ownerID}, limit)
	rows, err := d.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list water readings: %w", err)
	}
	defer rows.Close()

	var readings []*models.WaterReading
	for rows.Next() {
		w, err := scanWaterReading(rows)
		if err != nil {
			return nil, fmt.Errorf("scan water reading: %w", err)
		}
		readings = append(readings, w)
	}
	return readings, rows.Err()
}

func scanWaterReading(row rowScanner) (*models.WaterReading, error) {
	var w models.WaterReading
	var idStr, tankID, createdAt string

	err := row.Scan(&idStr, &w.OwnerID, &tankID, &w.Temperature, &w.PH, &w.Ammonia, &w.Nitrite, &w.Nitrate, &createdAt)
	if err != nil {
		return nil, err
	}

	w.ID, _ = uuid.Parse(idStr)
	w.TankID, _ = uuid.Parse(tankID)
	w.CreatedAt = parseTime(createdAt)
	return &w, nil
}
