// ABOUTME: Tests for explicit data migration between storage backends.
// ABOUTME: Covers owner rewriting, source preservation and empty sources.
package storage

import (
	"context"
	"testing"
)

func TestMigrateDataBetweenDatabases(t *testing.T) {
	ctx := context.Background()
	src := setupTestDB(t)
	dst := setupTestDB(t)
	seedOwner(t, src, "guest")

	summary, err := MigrateData(ctx, src, dst, "guest", "account-1")
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}

	if summary.Tanks != 1 || summary.Fish != 1 || summary.WaterReadings != 3 ||
		summary.FeedingLogs != 1 || summary.WaterChanges != 1 {
		t.Errorf("summary = %+v", summary)
	}

	fish, err := dst.GetLatestFish(ctx, "account-1")
	if err != nil {
		t.Fatalf("GetLatestFish failed: %v", err)
	}
	if fish.Name != "Nemo" {
		t.Errorf("Name = %q, want Nemo", fish.Name)
	}

	srcFish, err := src.ListFish(ctx, "guest", 0)
	if err != nil {
		t.Fatalf("ListFish failed: %v", err)
	}
	if len(srcFish) != 1 {
		t.Errorf("source fish = %d, want untouched 1", len(srcFish))
	}
}

func TestMigrateDataSameDatabaseNewOwner(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	seedOwner(t, db, "guest")

	// Same IDs in the same table collide, so the copy fails part way.
	if _, err := MigrateData(ctx, db, db, "guest", "account-1"); err == nil {
		t.Error("expected primary key conflict when migrating within one database")
	}
}

func TestMigrateDataEmptySource(t *testing.T) {
	ctx := context.Background()
	src := setupTestDB(t)
	dst := setupTestDB(t)

	summary, err := MigrateData(ctx, src, dst, "guest", "account-1")
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Total() != 0 {
		t.Errorf("Total = %d, want 0", summary.Total())
	}
}
