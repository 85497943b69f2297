// ABOUTME: Data context holding the current tank, fish and water snapshot.
// ABOUTME: Writes go through the selected repository; derived values are recomputed on read.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/scoring"
	"github.com/harperreed/betta/internal/storage"
	"github.com/harperreed/betta/internal/validation"
)

// CareStore keeps the device-local reminders and feeding schedule.
type CareStore interface {
	Reminders() ([]models.CareReminder, error)
	SaveReminders(reminders []models.CareReminder) error
	FeedingSchedule() ([]models.FeedingScheduleEntry, error)
	SaveFeedingSchedule(schedule []models.FeedingScheduleEntry) error
}

// Tracker is the data context for one owner.
type Tracker struct {
	repo    storage.Repository
	care    CareStore
	ownerID string
	logger  zerolog.Logger
	now     func() time.Time

	tank  *models.Tank
	fish  *models.Fish
	water *models.WaterReading
}

// New creates a tracker writing ownerID's records to repo.
func New(repo storage.Repository, care CareStore, ownerID string) *Tracker {
	return &Tracker{
		repo:    repo,
		care:    care,
		ownerID: ownerID,
		logger:  zerolog.Nop(),
		now:     time.Now,
	}
}

// WithLogger sets the logger used for persistence failures.
func (t *Tracker) WithLogger(logger zerolog.Logger) *Tracker {
	t.logger = logger.With().Str("owner", t.ownerID).Logger()
	return t
}

// WithClock overrides the time source.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// OwnerID returns the owner records are written for.
func (t *Tracker) OwnerID() string {
	return t.ownerID
}

// IsGuest reports whether the tracker is writing device-local guest data.
func (t *Tracker) IsGuest() bool {
	return t.ownerID == models.GuestOwnerID
}

// Repository returns the backing repository.
func (t *Tracker) Repository() storage.Repository {
	return t.repo
}

// Load reads the latest tank, fish and water reading. Missing records
// leave the defaults in place.
func (t *Tracker) Load(ctx context.Context) error {
	tank, err := t.repo.GetLatestTank(ctx, t.ownerID)
	if err := t.loaded("tank", err); err != nil {
		return err
	}
	fish, err := t.repo.GetLatestFish(ctx, t.ownerID)
	if err := t.loaded("fish", err); err != nil {
		return err
	}
	water, err := t.repo.GetLatestWaterReading(ctx, t.ownerID)
	if err := t.loaded("water reading", err); err != nil {
		return err
	}

	t.tank, t.fish, t.water = tank, fish, water
	return nil
}

func (t *Tracker) loaded(what string, err error) error {
	if err == nil || errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	return t.fail("load "+what, err)
}

// fail logs a persistence error and returns it wrapped.
func (t *Tracker) fail(op string, err error) error {
	t.logger.Error().Err(err).Str("op", op).Msg("persistence failed")
	return &storage.OpError{Op: op, Err: err}
}

// Snapshot returns the current tank, fish and water, with defaults for
// anything not yet recorded.
func (t *Tracker) Snapshot() scoring.Snapshot {
	s := scoring.Snapshot{
		Tank:  models.DefaultTank(),
		Fish:  models.DefaultFish(),
		Water: models.DefaultWaterReading(),
	}
	if t.tank != nil {
		s.Tank = *t.tank
	}
	if t.fish != nil {
		s.Fish = *t.fish
	}
	if t.water != nil {
		s.Water = *t.water
	}
	return s
}

// HasTank reports whether a tank has been saved.
func (t *Tracker) HasTank() bool {
	return t.tank != nil
}

// Report evaluates the snapshot.
func (t *Tracker) Report() scoring.Report {
	s := t.Snapshot()
	return scoring.Evaluate(s.Tank, s.Fish, s.Water)
}

// Score evaluates the snapshot with the named strategy.
func (t *Tracker) Score(strategy string) (int, error) {
	s, ok := scoring.StrategyByName(strategy)
	if !ok {
		return 0, fmt.Errorf("unknown scoring strategy %q", strategy)
	}
	return s.Score(t.Snapshot()), nil
}

// SaveTank validates and appends a tank configuration.
func (t *Tracker) SaveTank(ctx context.Context, tank *models.Tank) error {
	if result := validation.ValidateForm(validation.TankForm(tank), validation.TankRules); !result.IsValid {
		return result
	}
	t.stamp(&tank.ID, &tank.CreatedAt)
	tank.WithOwner(t.ownerID)

	if err := t.repo.CreateTank(ctx, tank); err != nil {
		return t.fail("save tank", err)
	}
	if t.tank == nil || !tank.CreatedAt.Before(t.tank.CreatedAt) {
		t.tank = tank
	}
	return nil
}

// ensureTank returns the current tank, creating the default one when the
// owner has none. The lookup and the create are separate calls, so two
// concurrent first writes can each create a tank.
func (t *Tracker) ensureTank(ctx context.Context) (*models.Tank, error) {
	if t.tank != nil {
		return t.tank, nil
	}

	tank, err := t.repo.GetLatestTank(ctx, t.ownerID)
	if err == nil {
		t.tank = tank
		return tank, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, t.fail("get tank", err)
	}

	def := models.DefaultTank()
	tank = models.NewTank(def.SizeGallons, def.Heater, def.Filter).WithOwner(t.ownerID).WithCreatedAt(t.now())
	if err := t.repo.CreateTank(ctx, tank); err != nil {
		return nil, t.fail("create tank", err)
	}
	t.tank = tank
	return tank, nil
}

// SaveFish validates and appends a fish observation.
func (t *Tracker) SaveFish(ctx context.Context, fish *models.Fish) error {
	if result := validation.ValidateForm(validation.FishForm(fish), validation.FishRules); !result.IsValid {
		return result
	}
	tank, err := t.ensureTank(ctx)
	if err != nil {
		return err
	}
	t.stamp(&fish.ID, &fish.CreatedAt)
	fish.WithOwner(t.ownerID, tank.ID)

	if err := t.repo.CreateFish(ctx, fish); err != nil {
		return t.fail("save fish", err)
	}
	if t.fish == nil || !fish.CreatedAt.Before(t.fish.CreatedAt) {
		t.fish = fish
	}
	return nil
}

// AddWaterReading validates and appends a water test.
func (t *Tracker) AddWaterReading(ctx context.Context, w *models.WaterReading) error {
	if result := validation.ValidateForm(validation.WaterForm(w), validation.WaterRules); !result.IsValid {
		return result
	}
	tank, err := t.ensureTank(ctx)
	if err != nil {
		return err
	}
	t.stamp(&w.ID, &w.CreatedAt)
	w.WithOwner(t.ownerID, tank.ID)

	if err := t.repo.CreateWaterReading(ctx, w); err != nil {
		return t.fail("save water reading", err)
	}
	if t.water == nil || !w.CreatedAt.Before(t.water.CreatedAt) {
		t.water = w
	}
	return nil
}

// LogFeeding validates and appends a feeding.
func (t *Tracker) LogFeeding(ctx context.Context, f *models.FeedingLog) error {
	if result := validation.ValidateForm(validation.FeedingForm(f), validation.FeedingRules); !result.IsValid {
		return result
	}
	tank, err := t.ensureTank(ctx)
	if err != nil {
		return err
	}
	t.stamp(&f.ID, &f.CreatedAt)
	f.WithOwner(t.ownerID, tank.ID)

	if err := t.repo.CreateFeedingLog(ctx, f); err != nil {
		return t.fail("save feeding", err)
	}
	return nil
}

// LogWaterChange validates and appends a water change.
func (t *Tracker) LogWaterChange(ctx context.Context, c *models.WaterChange) error {
	if result := validation.ValidateForm(validation.WaterChangeForm(c), validation.WaterChangeRules); !result.IsValid {
		return result
	}
	tank, err := t.ensureTank(ctx)
	if err != nil {
		return err
	}
	t.stamp(&c.ID, &c.CreatedAt)
	c.WithOwner(t.ownerID, tank.ID)

	if err := t.repo.CreateWaterChange(ctx, c); err != nil {
		return t.fail("save water change", err)
	}
	return nil
}

// stamp fills in a missing ID and creation time.
func (t *Tracker) stamp(id *uuid.UUID, createdAt *time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if createdAt.IsZero() {
		*createdAt = t.now()
	}
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return models.DisplayHistoryLimit
	}
	return limit
}

// TankHistory lists saved tanks, newest first.
func (t *Tracker) TankHistory(ctx context.Context, limit int) ([]*models.Tank, error) {
	tanks, err := t.repo.ListTanks(ctx, t.ownerID, limitOrDefault(limit))
	if err != nil {
		return nil, t.fail("list tanks", err)
	}
	return tanks, nil
}

// FishHistory lists fish observations, newest first.
func (t *Tracker) FishHistory(ctx context.Context, limit int) ([]*models.Fish, error) {
	fish, err := t.repo.ListFish(ctx, t.ownerID, limitOrDefault(limit))
	if err != nil {
		return nil, t.fail("list fish", err)
	}
	return fish, nil
}

// WaterHistory lists water readings, newest first.
func (t *Tracker) WaterHistory(ctx context.Context, limit int) ([]*models.WaterReading, error) {
	readings, err := t.repo.ListWaterReadings(ctx, t.ownerID, limitOrDefault(limit))
	if err != nil {
		return nil, t.fail("list water readings", err)
	}
	return readings, nil
}

// FeedingHistory lists feedings, newest first.
func (t *Tracker) FeedingHistory(ctx context.Context, limit int) ([]*models.FeedingLog, error) {
	logs, err := t.repo.ListFeedingLogs(ctx, t.ownerID, limitOrDefault(limit))
	if err != nil {
		return nil, t.fail("list feedings", err)
	}
	return logs, nil
}

// WaterChangeHistory lists water changes, newest first.
func (t *Tracker) WaterChangeHistory(ctx context.Context, limit int) ([]*models.WaterChange, error) {
	changes, err := t.repo.ListWaterChanges(ctx, t.ownerID, limitOrDefault(limit))
	if err != nil {
		return nil, t.fail("list water changes", err)
	}
	return changes, nil
}

// Export builds an export of the snapshot, bounded histories and care state.
func (t *Tracker) Export(ctx context.Context, limit int) (*storage.ExportData, error) {
	data, err := storage.BuildExport(ctx, t.repo, t.ownerID, limit)
	if err != nil {
		return nil, t.fail("export", err)
	}
	if data.Reminders, err = t.Reminders(); err != nil {
		return nil, err
	}
	if data.FeedingSchedule, err = t.FeedingSchedule(); err != nil {
		return nil, err
	}
	return data, nil
}
