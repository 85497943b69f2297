// ABOUTME: Tests for the data context.
// ABOUTME: Runs against the in-memory guest store with a fixed clock.
package tracker

import (
	"bytes"
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/betta/internal/guest"
	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/scoring"
	"github.com/harperreed/betta/internal/storage"
	"github.com/harperreed/betta/internal/validation"
)

// Wednesday.
var clock = time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC)

func newTestTracker(t *testing.T) (*Tracker, *guest.Store) {
	t.Helper()
	store, err := guest.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tr := New(store, store, models.GuestOwnerID).WithClock(func() time.Time { return clock })
	return tr, store
}

// failingRepo fails every write.
type failingRepo struct {
	storage.Repository
}

var errBackend = errors.New("backend unavailable")

func (failingRepo) CreateTank(context.Context, *models.Tank) error                 { return errBackend }
func (failingRepo) CreateFish(context.Context, *models.Fish) error                 { return errBackend }
func (failingRepo) CreateWaterReading(context.Context, *models.WaterReading) error { return errBackend }

func TestLoadDefaults(t *testing.T) {
	tr, _ := newTestTracker(t)

	require.NoError(t, tr.Load(context.Background()))
	assert.False(t, tr.HasTank())
	assert.True(t, tr.IsGuest())

	s := tr.Snapshot()
	assert.Equal(t, models.DefaultTank(), s.Tank)
	assert.Equal(t, models.DefaultFish(), s.Fish)
	assert.Equal(t, models.DefaultWaterReading(), s.Water)

	report := tr.Report()
	assert.Equal(t, 100, report.Score)
	assert.Empty(t, report.Alerts)
}

func TestSaveTank(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	tank := models.NewTank(3, false, true)
	require.NoError(t, tr.SaveTank(ctx, tank))
	assert.Equal(t, models.GuestOwnerID, tank.OwnerID)
	assert.True(t, tr.HasTank())
	assert.Equal(t, 3.0, tr.Snapshot().Tank.SizeGallons)

	report := tr.Report()
	counts := scoring.CountByType(report.Alerts)
	assert.Equal(t, 1, counts[scoring.AlertWarning], "missing heater warns")
	assert.Equal(t, 1, counts[scoring.AlertInfo], "tank under five gallons is informational")
}

func TestSaveTankInvalid(t *testing.T) {
	tr, store := newTestTracker(t)
	ctx := context.Background()

	err := tr.SaveTank(ctx, models.NewTank(0, true, true))
	var result validation.Result
	require.ErrorAs(t, err, &result)
	assert.Contains(t, result.Errors, "size")

	tanks, err := store.ListTanks(ctx, models.GuestOwnerID, 0)
	require.NoError(t, err)
	assert.Empty(t, tanks, "invalid input is never persisted")
}

func TestFirstWriteCreatesDefaultTank(t *testing.T) {
	tr, store := newTestTracker(t)
	ctx := context.Background()

	w := models.NewWaterReading(80, 7.2, 0, 0, 5)
	require.NoError(t, tr.AddWaterReading(ctx, w))

	tanks, err := store.ListTanks(ctx, models.GuestOwnerID, 0)
	require.NoError(t, err)
	require.Len(t, tanks, 1)
	assert.Equal(t, models.DefaultTankSizeGallons, tanks[0].SizeGallons)
	assert.Equal(t, tanks[0].ID, w.TankID)

	// A second write reuses the tank.
	require.NoError(t, tr.LogFeeding(ctx, models.NewFeedingLog("Pellets", "3 pellets")))
	tanks, err = store.ListTanks(ctx, models.GuestOwnerID, 0)
	require.NoError(t, err)
	assert.Len(t, tanks, 1)
}

func TestWritesReuseStoredTank(t *testing.T) {
	tr, store := newTestTracker(t)
	ctx := context.Background()

	existing := models.NewTank(20, true, true).WithOwner(models.GuestOwnerID).WithCreatedAt(clock.Add(-time.Hour))
	require.NoError(t, store.CreateTank(ctx, existing))

	fish := models.NewFish("Neptune", "red")
	require.NoError(t, tr.SaveFish(ctx, fish))
	assert.Equal(t, existing.ID, fish.TankID)

	tanks, err := store.ListTanks(ctx, models.GuestOwnerID, 0)
	require.NoError(t, err)
	assert.Len(t, tanks, 1)
}

func TestSaveFishUpdatesReport(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	fish := models.NewFish("Neptune", "red")
	fish.Appetite = models.AppetiteNotEating
	require.NoError(t, tr.SaveFish(ctx, fish))

	report := tr.Report()
	assert.Equal(t, 70, report.Score)
	assert.Equal(t, scoring.LevelFair, report.Classification.Level)
	require.NotEmpty(t, report.Symptoms)
	assert.Equal(t, "appetite", report.Symptoms[0].Key)
}

func TestSaveFishRejectsUnknownOption(t *testing.T) {
	tr, _ := newTestTracker(t)

	fish := models.NewFish("Neptune", "red")
	fish.Behavior = "Dancing"
	err := tr.SaveFish(context.Background(), fish)

	var result validation.Result
	require.ErrorAs(t, err, &result)
	assert.Contains(t, result.Errors, "behavior")
}

func TestLoadReadsLatest(t *testing.T) {
	tr, store := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.AddWaterReading(ctx, models.NewWaterReading(90, 7, 0, 0, 5).WithCreatedAt(clock.Add(-time.Minute))))
	require.NoError(t, tr.AddWaterReading(ctx, models.NewWaterReading(79, 7, 0, 0, 5)))

	fresh := New(store, store, models.GuestOwnerID)
	require.NoError(t, fresh.Load(ctx))
	assert.True(t, fresh.HasTank())
	assert.Equal(t, 79.0, fresh.Snapshot().Water.Temperature)
}

func TestBackdatedWriteKeepsLatestSnapshot(t *testing.T) {
	tr, store := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.AddWaterReading(ctx, models.NewWaterReading(78, 7, 0, 0, 5).WithCreatedAt(clock)))
	require.NoError(t, tr.AddWaterReading(ctx, models.NewWaterReading(90, 7, 0, 0, 5).WithCreatedAt(clock.AddDate(0, 0, -10))))
	assert.Equal(t, 78.0, tr.Snapshot().Water.Temperature)

	require.NoError(t, tr.SaveFish(ctx, models.NewFish("Current", "blue").WithCreatedAt(clock)))
	require.NoError(t, tr.SaveFish(ctx, models.NewFish("Old", "red").WithCreatedAt(clock.AddDate(0, 0, -3))))
	assert.Equal(t, "Current", tr.Snapshot().Fish.Name)

	require.NoError(t, tr.SaveTank(ctx, models.NewTank(5, false, true).WithCreatedAt(clock.AddDate(-1, 0, 0))))
	assert.NotEqual(t, 5.0, tr.Snapshot().Tank.SizeGallons)

	fresh := New(store, store, models.GuestOwnerID)
	require.NoError(t, fresh.Load(ctx))
	assert.Equal(t, tr.Snapshot().Water.Temperature, fresh.Snapshot().Water.Temperature)
	assert.Equal(t, tr.Snapshot().Fish.Name, fresh.Snapshot().Fish.Name)
	assert.Equal(t, tr.Snapshot().Tank.SizeGallons, fresh.Snapshot().Tank.SizeGallons)
}

func TestAddWaterReadingRejectsNaN(t *testing.T) {
	tr, store := newTestTracker(t)
	ctx := context.Background()

	err := tr.AddWaterReading(ctx, models.NewWaterReading(math.NaN(), 7, 0, 0, 5))
	var result validation.Result
	require.ErrorAs(t, err, &result)
	assert.Equal(t, validation.NotANumberMessage, result.Errors["temperature"])

	readings, err := store.ListWaterReadings(ctx, models.GuestOwnerID, 0)
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestPersistenceFailureKeepsSnapshot(t *testing.T) {
	store, err := guest.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	var logs bytes.Buffer
	tr := New(failingRepo{Repository: store}, store, models.GuestOwnerID).
		WithLogger(zerolog.New(&logs)).
		WithClock(func() time.Time { return clock })
	ctx := context.Background()

	err = tr.SaveTank(ctx, models.NewTank(20, true, true))
	require.ErrorIs(t, err, errBackend)
	assert.Contains(t, err.Error(), "save tank")
	var opErr *storage.OpError
	assert.ErrorAs(t, err, &opErr)
	assert.False(t, tr.HasTank())
	assert.Equal(t, models.DefaultTank(), tr.Snapshot().Tank)
	assert.Contains(t, logs.String(), "persistence failed")

	err = tr.AddWaterReading(ctx, models.NewWaterReading(90, 7, 0, 0, 5))
	require.ErrorIs(t, err, errBackend)
	assert.Contains(t, err.Error(), "create tank")
	assert.Equal(t, models.DefaultWaterReading(), tr.Snapshot().Water)
}

func TestScoreStrategies(t *testing.T) {
	tr, _ := newTestTracker(t)

	health, err := tr.Score("health")
	require.NoError(t, err)
	assert.Equal(t, 100, health)

	betta, err := tr.Score("betta")
	require.NoError(t, err)
	assert.Equal(t, 100, betta)

	_, err = tr.Score("astrology")
	assert.Error(t, err)
}

func TestHistoriesNewestFirst(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		c := models.NewWaterChange(float64(10 * (i + 1)))
		c.CreatedAt = clock.Add(time.Duration(i) * time.Minute)
		require.NoError(t, tr.LogWaterChange(ctx, c))
	}

	changes, err := tr.WaterChangeHistory(ctx, 2)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, 30.0, changes[0].Percentage)
	assert.Equal(t, 20.0, changes[1].Percentage)

	tanks, err := tr.TankHistory(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, tanks, 1)
}

func TestExportIncludesCareState(t *testing.T) {
	tr, _ := newTestTracker(t)
	ctx := context.Background()

	require.NoError(t, tr.LogFeeding(ctx, models.NewFeedingLog("Bloodworms", "2")))

	data, err := tr.Export(ctx, models.ExportHistoryLimit)
	require.NoError(t, err)
	assert.Equal(t, models.GuestOwnerID, data.OwnerID)
	assert.Len(t, data.FeedingLogs, 1)
	assert.NotNil(t, data.Tank)
	assert.Len(t, data.Reminders, 5)
	assert.Len(t, data.FeedingSchedule, 2)
}
