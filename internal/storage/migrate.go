// ABOUTME: Explicit data migration between storage backends and owners.
// ABOUTME: Guest data only moves to an account when the user asks for it.
package storage

import (
	"context"
	"fmt"
)

// MigrateSummary holds counts of copied records.
type MigrateSummary struct {
	Tanks         int `json:"tanks"`
	Fish          int `json:"fish"`
	WaterReadings int `json:"water_readings"`
	FeedingLogs   int `json:"feeding_logs"`
	WaterChanges  int `json:"water_changes"`
}

// Total returns the number of records copied.
func (s *MigrateSummary) Total() int {
	return s.Tanks + s.Fish + s.WaterReadings + s.FeedingLogs + s.WaterChanges
}

// MigrateData copies every record srcOwner has in src into dst under dstOwner.
// Records keep their IDs and timestamps. The source is left untouched.
func MigrateData(ctx context.Context, src, dst Repository, srcOwner, dstOwner string) (*MigrateSummary, error) {
	data, err := BuildExport(ctx, src, srcOwner, 0)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	summary, err := ImportData(ctx, dst, data, dstOwner)
	if err != nil {
		return summary, fmt.Errorf("write destination: %w", err)
	}
	return summary, nil
}
