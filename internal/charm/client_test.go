// ABOUTME: Unit tests for Charm-based care storage.
// ABOUTME: Runs the client against an in-memory key-value fake.
package charm

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/storage"
)

type fakeKV struct {
	mu       sync.Mutex
	data     map[string][]byte
	readOnly bool
	syncs    int
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) Set(key, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (f *fakeKV) Get(key []byte) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[string(key)]
	if !ok {
		return nil, errors.New("key not found")
	}
	return v, nil
}

func (f *fakeKV) Delete(key []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, string(key))
	return nil
}

func (f *fakeKV) Keys() ([][]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var keys []string
	for k := range f.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]byte, 0, len(keys))
	for _, k := range keys {
		out = append(out, []byte(k))
	}
	return out, nil
}

func (f *fakeKV) Sync() error      { f.syncs++; return nil }
func (f *fakeKV) Reset() error     { f.data = make(map[string][]byte); return nil }
func (f *fakeKV) Close() error     { return nil }
func (f *fakeKV) IsReadOnly() bool { return f.readOnly }

func newTestClient(t *testing.T) (*Client, *fakeKV) {
	t.Helper()
	store := newFakeKV()
	return newClient(store, func() (string, error) { return "charm-user", nil }), store
}

func TestPrefixes(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		expected string
	}{
		{"Tank", TankPrefix, "tank:"},
		{"Fish", FishPrefix, "fish:"},
		{"Water", WaterPrefix, "water:"},
		{"Feeding", FeedingPrefix, "feeding:"},
		{"WaterChange", WaterChangePrefix, "waterchange:"},
		{"Profile", ProfilePrefix, "profile:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prefix != tt.expected {
				t.Errorf("Expected %s = %q, got %q", tt.name, tt.expected, tt.prefix)
			}
		})
	}
}

func TestTankKeyFormat(t *testing.T) {
	c, store := newTestClient(t)
	tank := models.NewTank(10, true, true).WithOwner("charm-user")

	if err := c.CreateTank(context.Background(), tank); err != nil {
		t.Fatalf("CreateTank failed: %v", err)
	}
	if _, ok := store.data["tank:"+tank.ID.String()]; !ok {
		t.Errorf("Expected key tank:%s, have %v", tank.ID, store.data)
	}
}

func TestLatestAndOwnerScoping(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()
	tankID := uuid.New()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 3; i++ {
		w := models.NewWaterReading(76+float64(i), 7, 0, 0, 5).
			WithOwner("charm-user", tankID).
			WithCreatedAt(base.Add(time.Duration(i) * time.Minute))
		if err := c.CreateWaterReading(ctx, w); err != nil {
			t.Fatalf("CreateWaterReading failed: %v", err)
		}
	}
	other := models.NewWaterReading(90, 7, 0, 0, 5).WithOwner("someone-else", tankID)
	if err := c.CreateWaterReading(ctx, other); err != nil {
		t.Fatalf("CreateWaterReading failed: %v", err)
	}

	latest, err := c.GetLatestWaterReading(ctx, "charm-user")
	if err != nil {
		t.Fatalf("GetLatestWaterReading failed: %v", err)
	}
	if latest.Temperature != 78 {
		t.Errorf("Temperature = %v, want 78", latest.Temperature)
	}

	limited, err := c.ListWaterReadings(ctx, "charm-user", 2)
	if err != nil {
		t.Fatalf("ListWaterReadings failed: %v", err)
	}
	if len(limited) != 2 || limited[1].Temperature != 77 {
		t.Errorf("ListWaterReadings = %d entries, want newest two", len(limited))
	}
}

func TestGetLatestMissing(t *testing.T) {
	c, _ := newTestClient(t)
	if _, err := c.GetLatestFish(context.Background(), "charm-user"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetLatestFish err = %v, want ErrNotFound", err)
	}
}

func TestSkipsInvalidEntries(t *testing.T) {
	c, store := newTestClient(t)
	ctx := context.Background()
	store.data[FeedingPrefix+"broken"] = []byte("{not json")

	f := models.NewFeedingLog("Pellets", "3").WithOwner("charm-user", uuid.New())
	if err := c.CreateFeedingLog(ctx, f); err != nil {
		t.Fatalf("CreateFeedingLog failed: %v", err)
	}

	logs, err := c.ListFeedingLogs(ctx, "charm-user", 0)
	if err != nil {
		t.Fatalf("ListFeedingLogs failed: %v", err)
	}
	if len(logs) != 1 {
		t.Errorf("Expected 1 valid feeding log, got %d", len(logs))
	}
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	c, store := newTestClient(t)
	store.readOnly = true

	err := c.CreateWaterChange(context.Background(), models.NewWaterChange(25))
	if !errors.Is(err, ErrReadOnly) {
		t.Errorf("CreateWaterChange err = %v, want ErrReadOnly", err)
	}
	if err := c.Sync(); err != nil {
		t.Errorf("Sync in read-only mode should be a no-op, got %v", err)
	}
}

func TestAutoSync(t *testing.T) {
	c, store := newTestClient(t)
	ctx := context.Background()

	if err := c.CreateTank(ctx, models.NewTank(5, true, true)); err != nil {
		t.Fatalf("CreateTank failed: %v", err)
	}
	if store.syncs != 0 {
		t.Errorf("syncs = %d before enabling auto sync", store.syncs)
	}

	c.SetAutoSync(true)
	if err := c.CreateTank(ctx, models.NewTank(5, true, true)); err != nil {
		t.Fatalf("CreateTank failed: %v", err)
	}
	if store.syncs != 1 {
		t.Errorf("syncs = %d, want 1", store.syncs)
	}
}

func TestProfilesAndCurrent(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	current, err := c.Current(ctx)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if current.ID != "charm-user" {
		t.Errorf("Current ID = %q, want charm-user", current.ID)
	}

	p := &models.Profile{ID: "charm-user", Email: "Fish@Example.com", CreatedAt: time.Now()}
	if err := c.CreateProfile(ctx, p); err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}

	found, err := c.FindProfileByEmail(ctx, "fish@example.com")
	if err != nil {
		t.Fatalf("FindProfileByEmail failed: %v", err)
	}
	if found.ID != "charm-user" {
		t.Errorf("found ID = %q", found.ID)
	}

	dup := &models.Profile{ID: "other", Email: "fish@example.com"}
	if err := c.CreateProfile(ctx, dup); err == nil {
		t.Error("expected duplicate email to fail")
	}

	current, err = c.Current(ctx)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if current.Email != "fish@example.com" {
		t.Errorf("Current Email = %q, want stored profile", current.Email)
	}
}

func TestMigrateIntoCharm(t *testing.T) {
	c, _ := newTestClient(t)
	src, _ := newTestClient(t)
	ctx := context.Background()

	tank := models.NewTank(8, true, false).WithOwner(models.GuestOwnerID)
	if err := src.CreateTank(ctx, tank); err != nil {
		t.Fatalf("CreateTank failed: %v", err)
	}

	summary, err := storage.MigrateData(ctx, src, c, models.GuestOwnerID, "charm-user")
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Tanks != 1 {
		t.Errorf("Tanks = %d, want 1", summary.Tanks)
	}
	got, err := c.GetLatestTank(ctx, "charm-user")
	if err != nil {
		t.Fatalf("GetLatestTank failed: %v", err)
	}
	if got.SizeGallons != 8 || got.Filter {
		t.Errorf("tank = %+v", got)
	}
}
