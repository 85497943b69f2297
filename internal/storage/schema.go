// ABOUTME: SQL schema definition and initialization for both dialects.
// ABOUTME: Defines tanks, fish, water_readings, feeding_logs, water_changes and profiles.
package storage

import (
	"context"
	"fmt"
	"strings"
)

// schemaTemplate takes the floating point column type as its only argument.
const schemaTemplate = `
	CREATE TABLE IF NOT EXISTS tanks (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		size_gallons %[1]s NOT NULL,
		heater INTEGER NOT NULL,
		filter INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS fish (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		tank_id TEXT NOT NULL,
		name TEXT NOT NULL,
		color TEXT NOT NULL,
		appetite TEXT NOT NULL,
		activity TEXT NOT NULL,
		fin_condition TEXT NOT NULL,
		color_condition TEXT NOT NULL,
		gill_condition TEXT NOT NULL,
		body_condition TEXT NOT NULL,
		behavior TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS water_readings (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		tank_id TEXT NOT NULL,
		temperature %[1]s NOT NULL,
		ph %[1]s NOT NULL,
		ammonia %[1]s NOT NULL,
		nitrite %[1]s NOT NULL,
		nitrate %[1]s NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS feeding_logs (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		tank_id TEXT NOT NULL,
		food_type TEXT NOT NULL,
		amount TEXT NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS water_changes (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		tank_id TEXT NOT NULL,
		percentage %[1]s NOT NULL,
		notes TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		display_name TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tanks_owner_created ON tanks(owner_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_fish_owner_created ON fish(owner_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_water_owner_created ON water_readings(owner_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_feeding_owner_created ON feeding_logs(owner_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_changes_owner_created ON water_changes(owner_id, created_at DESC);
	`

// schema returns the DDL for the connection's dialect.
func (d *DB) schema() string {
	floatType := "REAL"
	if d.dialect == DialectPostgres {
		floatType = "DOUBLE PRECISION"
	}
	return fmt.Sprintf(schemaTemplate, floatType)
}

// initSchema creates or updates the database schema one statement at a time.
func (d *DB) initSchema(ctx context.Context) error {
	for _, stmt := range strings.Split(d.schema(), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := d.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("execute ddl: %w", err)
		}
	}
	return nil
}
