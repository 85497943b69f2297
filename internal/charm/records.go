// ABOUTME: Care record operations for Charm KV storage.
// ABOUTME: Uses type-prefixed keys with client-side owner filtering and sorting.
package charm

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/storage"
)

var _ storage.Repository = (*Client)(nil)

// put marshals v and stores it under prefix+id.
func (c *Client) put(prefix, id string, v any) error {
	data, err := marshalJSON(v)
	if err != nil {
		return err
	}
	return c.set(prefix+id, data)
}

// list decodes every record under prefix owned by ownerID, newest first.
// meta reports a record's owner and creation time.
func list[T any](c *Client, prefix, ownerID string, limit int, meta func(*T) (string, time.Time)) ([]*T, error) {
	allData, err := c.listByPrefix(prefix)
	if err != nil {
		return nil, err
	}

	var records []*T
	for _, data := range allData {
		r, err := unmarshalJSON[T](data)
		if err != nil {
			continue // Skip invalid entries
		}
		if owner, _ := meta(r); owner != ownerID {
			continue
		}
		records = append(records, r)
	}

	sort.SliceStable(records, func(i, j int) bool {
		_, ci := meta(records[i])
		_, cj := meta(records[j])
		return ci.After(cj)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// latest returns the first record of a newest-first list or ErrNotFound.
func latest[T any](records []*T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, storage.ErrNotFound
	}
	return records[0], nil
}

// CreateTank stores a tank configuration.
func (c *Client) CreateTank(_ context.Context, t *models.Tank) error {
	if err := c.put(TankPrefix, t.ID.String(), t); err != nil {
		return fmt.Errorf("create tank: %w", err)
	}
	return nil
}

// GetLatestTank returns the owner's most recent tank.
func (c *Client) GetLatestTank(ctx context.Context, ownerID string) (*models.Tank, error) {
	records, err := c.ListTanks(ctx, ownerID, 0)
	return latest(records, err)
}

// ListTanks returns the owner's tanks, newest first.
func (c *Client) ListTanks(_ context.Context, ownerID string, limit int) ([]*models.Tank, error) {
	tanks, err := list(c, TankPrefix, ownerID, limit, func(t *models.Tank) (string, time.Time) {
		return t.OwnerID, t.CreatedAt
	})
	if err != nil {
		return nil, fmt.Errorf("list tanks: %w", err)
	}
	return tanks, nil
}

// CreateFish stores a fish observation.
func (c *Client) CreateFish(_ context.Context, f *models.Fish) error {
	if err := c.put(FishPrefix, f.ID.String(), f); err != nil {
		return fmt.Errorf("create fish: %w", err)
	}
	return nil
}

// GetLatestFish returns the owner's most recent fish observation.
func (c *Client) GetLatestFish(ctx context.Context, ownerID string) (*models.Fish, error) {
	records, err := c.ListFish(ctx, ownerID, 0)
	return latest(records, err)
}

// ListFish returns the owner's fish observations, newest first.
func (c *Client) ListFish(_ context.Context, ownerID string, limit int) ([]*models.Fish, error) {
	fish, err := list(c, FishPrefix, ownerID, limit, func(f *models.Fish) (string, time.Time) {
		return f.OwnerID, f.CreatedAt
	})
	if err != nil {
		return nil, fmt.Errorf("list fish: %w", err)
	}
	return fish, nil
}

// CreateWaterReading stores a water test result.
func (c *Client) CreateWaterReading(_ context.Context, w *models.WaterReading) error {
	if err := c.put(WaterPrefix, w.ID.String(), w); err != nil {
		return fmt.Errorf("create water reading: %w", err)
	}
	return nil
}

// GetLatestWaterReading returns the owner's most recent reading.
func (c *Client) GetLatestWaterReading(ctx context.Context, ownerID string) (*models.WaterReading, error) {
	records, err := c.ListWaterReadings(ctx, ownerID, 0)
	return latest(records, err)
}

// ListWaterReadings returns the owner's readings, newest first.
func (c *Client) ListWaterReadings(_ context.Context, ownerID string, limit int) ([]*models.WaterReading, error) {
	readings, err := list(c, WaterPrefix, ownerID, limit, func(w *models.WaterReading) (string, time.Time) {
		return w.OwnerID, w.CreatedAt
	})
	if err != nil {
		return nil, fmt.Errorf("list water readings: %w", err)
	}
	return readings, nil
}

// CreateFeedingLog stores a feeding.
func (c *Client) CreateFeedingLog(_ context.Context, f *models.FeedingLog) error {
	if err := c.put(FeedingPrefix, f.ID.String(), f); err != nil {
		return fmt.Errorf("create feeding log: %w", err)
	}
	return nil
}

// GetLatestFeedingLog returns the owner's most recent feeding.
func (c *Client) GetLatestFeedingLog(ctx context.Context, ownerID string) (*models.FeedingLog, error) {
	records, err := c.ListFeedingLogs(ctx, ownerID, 0)
	return latest(records, err)
}

// ListFeedingLogs returns the owner's feedings, newest first.
func (c *Client) ListFeedingLogs(_ context.Context, ownerID string, limit int) ([]*models.FeedingLog, error) {
	logs, err := list(c, FeedingPrefix, ownerID, limit, func(f *models.FeedingLog) (string, time.Time) {
		return f.OwnerID, f.CreatedAt
	})
	if err != nil {
		return nil, fmt.Errorf("list feeding logs: %w", err)
	}
	return logs, nil
}

// CreateWaterChange stores a water change.
func (c *Client) CreateWaterChange(_ context.Context, wc *models.WaterChange) error {
	if err := c.put(WaterChangePrefix, wc.ID.String(), wc); err != nil {
		return fmt.Errorf("create water change: %w", err)
	}
	return nil
}

// GetLatestWaterChange returns the owner's most recent water change.
func (c *Client) GetLatestWaterChange(ctx context.Context, ownerID string) (*models.WaterChange, error) {
	records, err := c.ListWaterChanges(ctx, ownerID, 0)
	return latest(records, err)
}

// ListWaterChanges returns the owner's water changes, newest first.
func (c *Client) ListWaterChanges(_ context.Context, ownerID string, limit int) ([]*models.WaterChange, error) {
	changes, err := list(c, WaterChangePrefix, ownerID, limit, func(wc *models.WaterChange) (string, time.Time) {
		return wc.OwnerID, wc.CreatedAt
	})
	if err != nil {
		return nil, fmt.Errorf("list water changes: %w", err)
	}
	return changes, nil
}
