// ABOUTME: Repository interfaces for betta care data storage.
// ABOUTME: Histories are append-only; reads are scoped by owner and newest first.
package storage

import (
	"context"
	"errors"

	"github.com/harperreed/betta/internal/models"
)

// Sentinel errors shared by every backend.
var (
	ErrNotFound    = errors.New("storage: not found")
	ErrUnsupported = errors.New("storage: unsupported")
)

// OpError records a failed repository operation. Only errors of this type
// are worth retrying; validation and lookup failures are not.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *OpError) Unwrap() error { return e.Err }

// Repository defines the storage interface for care data.
// This interface allows swapping implementations (SQL, Charm, guest).
type Repository interface {
	// Tank history
	CreateTank(ctx context.Context, t *models.Tank) error
	GetLatestTank(ctx context.Context, ownerID string) (*models.Tank, error)
	ListTanks(ctx context.Context, ownerID string, limit int) ([]*models.Tank, error)

	// Fish observations
	CreateFish(ctx context.Context, f *models.Fish) error
	GetLatestFish(ctx context.Context, ownerID string) (*models.Fish, error)
	ListFish(ctx context.Context, ownerID string, limit int) ([]*models.Fish, error)

	// Water readings
	CreateWaterReading(ctx context.Context, w *models.WaterReading) error
	GetLatestWaterReading(ctx context.Context, ownerID string) (*models.WaterReading, error)
	ListWaterReadings(ctx context.Context, ownerID string, limit int) ([]*models.WaterReading, error)

	// Feeding logs
	CreateFeedingLog(ctx context.Context, f *models.FeedingLog) error
	GetLatestFeedingLog(ctx context.Context, ownerID string) (*models.FeedingLog, error)
	ListFeedingLogs(ctx context.Context, ownerID string, limit int) ([]*models.FeedingLog, error)

	// Water changes
	CreateWaterChange(ctx context.Context, c *models.WaterChange) error
	GetLatestWaterChange(ctx context.Context, ownerID string) (*models.WaterChange, error)
	ListWaterChanges(ctx context.Context, ownerID string, limit int) ([]*models.WaterChange, error)

	// Lifecycle
	Close() error
}

// ProfileRepository stores account profiles.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, p *models.Profile) error
	GetProfile(ctx context.Context, id string) (*models.Profile, error)
	FindProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
}

// AccountStore is a backend that can hold signed-in users' data and profiles.
type AccountStore interface {
	Repository
	ProfileRepository
}
