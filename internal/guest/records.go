// ABOUTME: Repository implementation over the guest key-value store.
// ABOUTME: Reads reverse the stored arrays so the newest record comes first.
package guest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/storage"
)

var _ storage.Repository = (*Store)(nil)

// newestFirst filters by owner and orders by creation time, newest first.
func newestFirst[T any](items []T, ownerID string, limit int, meta func(*T) (string, time.Time)) []*T {
	var out []*T
	for i := len(items) - 1; i >= 0; i-- {
		item := &items[i]
		if owner, _ := meta(item); owner != ownerID {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		_, ci := meta(out[i])
		_, cj := meta(out[j])
		return ci.After(cj)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func first[T any](items []*T) (*T, error) {
	if len(items) == 0 {
		return nil, storage.ErrNotFound
	}
	return items[0], nil
}

func tankMeta(t *models.Tank) (string, time.Time)               { return t.OwnerID, t.CreatedAt }
func fishMeta(f *models.Fish) (string, time.Time)               { return f.OwnerID, f.CreatedAt }
func waterMeta(w *models.WaterReading) (string, time.Time)      { return w.OwnerID, w.CreatedAt }
func feedingMeta(f *models.FeedingLog) (string, time.Time)      { return f.OwnerID, f.CreatedAt }
func waterChangeMeta(c *models.WaterChange) (string, time.Time) { return c.OwnerID, c.CreatedAt }

// CreateTank appends a tank configuration.
func (s *Store) CreateTank(_ context.Context, t *models.Tank) error {
	if err := appendItem(s, KeyTanks, *t); err != nil {
		return fmt.Errorf("create tank: %w", err)
	}
	return nil
}

// GetLatestTank returns the owner's most recent tank.
func (s *Store) GetLatestTank(ctx context.Context, ownerID string) (*models.Tank, error) {
	tanks, err := s.ListTanks(ctx, ownerID, 0)
	if err != nil {
		return nil, err
	}
	return first(tanks)
}

// ListTanks returns the owner's tanks, newest first.
func (s *Store) ListTanks(_ context.Context, ownerID string, limit int) ([]*models.Tank, error) {
	items, err := readList[models.Tank](s, KeyTanks)
	if err != nil {
		return nil, fmt.Errorf("list tanks: %w", err)
	}
	return newestFirst(items, ownerID, limit, tankMeta), nil
}

// CreateFish appends a fish observation.
func (s *Store) CreateFish(_ context.Context, f *models.Fish) error {
	if err := appendItem(s, KeyFish, *f); err != nil {
		return fmt.Errorf("create fish: %w", err)
	}
	return nil
}

// GetLatestFish returns the owner's most recent fish observation.
func (s *Store) GetLatestFish(ctx context.Context, ownerID string) (*models.Fish, error) {
	fish, err := s.ListFish(ctx, ownerID, 0)
	if err != nil {
		return nil, err
	}
	return first(fish)
}

// ListFish returns the owner's fish observations, newest first.
func (s *Store) ListFish(_ context.Context, ownerID string, limit int) ([]*models.Fish, error) {
	items, err := readList[models.Fish](s, KeyFish)
	if err != nil {
		return nil, fmt.Errorf("list fish: %w", err)
	}
	return newestFirst(items, ownerID, limit, fishMeta), nil
}

// CreateWaterReading appends a water test result.
func (s *Store) CreateWaterReading(_ context.Context, w *models.WaterReading) error {
	if err := appendItem(s, KeyWaterReadings, *w); err != nil {
		return fmt.Errorf("create water reading: %w", err)
	}
	return nil
}

// GetLatestWaterReading returns the owner's most recent reading.
func (s *Store) GetLatestWaterReading(ctx context.Context, ownerID string) (*models.WaterReading, error) {
	readings, err := s.ListWaterReadings(ctx, ownerID, 0)
	if err != nil {
		return nil, err
	}
	return first(readings)
}

// ListWaterReadings returns the owner's readings, newest first.
func (s *Store) ListWaterReadings(_ context.Context, ownerID string, limit int) ([]*models.WaterReading, error) {
	items, err := readList[models.WaterReading](s, KeyWaterReadings)
	if err != nil {
		return nil, fmt.Errorf("list water readings: %w", err)
	}
	return newestFirst(items, ownerID, limit, waterMeta), nil
}

// CreateFeedingLog appends a feeding.
func (s *Store) CreateFeedingLog(_ context.Context, f *models.FeedingLog) error {
	if err := appendItem(s, KeyFeedingLogs, *f); err != nil {
		return fmt.Errorf("create feeding log: %w", err)
	}
	return nil
}

// GetLatestFeedingLog returns the owner's most recent feeding.
func (s *Store) GetLatestFeedingLog(ctx context.Context, ownerID string) (*models.FeedingLog, error) {
	logs, err := s.ListFeedingLogs(ctx, ownerID, 0)
	if err != nil {
		return nil, err
	}
	return first(logs)
}

// ListFeedingLogs returns the owner's feedings, newest first.
func (s *Store) ListFeedingLogs(_ context.Context, ownerID string, limit int) ([]*models.FeedingLog, error) {
	items, err := readList[models.FeedingLog](s, KeyFeedingLogs)
	if err != nil {
		return nil, fmt.Errorf("list feeding logs: %w", err)
	}
	return newestFirst(items, ownerID, limit, feedingMeta), nil
}

// CreateWaterChange appends a water change.
func (s *Store) CreateWaterChange(_ context.Context, c *models.WaterChange) error {
	if err := appendItem(s, KeyWaterChanges, *c); err != nil {
		return fmt.Errorf("create water change: %w", err)
	}
	return nil
}

// GetLatestWaterChange returns the owner's most recent water change.
func (s *Store) GetLatestWaterChange(ctx context.Context, ownerID string) (*models.WaterChange, error) {
	changes, err := s.ListWaterChanges(ctx, ownerID, 0)
	if err != nil {
		return nil, err
	}
	return first(changes)
}

// ListWaterChanges returns the owner's water changes, newest first.
func (s *Store) ListWaterChanges(_ context.Context, ownerID string, limit int) ([]*models.WaterChange, error) {
	items, err := readList[models.WaterChange](s, KeyWaterChanges)
	if err != nil {
		return nil, fmt.Errorf("list water changes: %w", err)
	}
	return newestFirst(items, ownerID, limit, waterChangeMeta), nil
}
