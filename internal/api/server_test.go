// ABOUTME: HTTP tests for the betta API.
// ABOUTME: Each test gets a fresh in-memory guest store and router.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/betta/internal/guest"
	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/storage"
	"github.com/harperreed/betta/internal/tracker"
)

// Wednesday.
var clock = time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, repo func(*guest.Store) storage.Repository) *gin.Engine {
	t.Helper()
	store, err := guest.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	var r storage.Repository = store
	if repo != nil {
		r = repo(store)
	}
	tr := tracker.New(r, store, models.GuestOwnerID).WithClock(func() time.Time { return clock })
	return NewServer(tr, zerolog.Nop()).Router()
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestStatusDefaults(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["guest"])
	report := body["report"].(map[string]any)
	assert.Equal(t, float64(100), report["score"])
}

func TestPostWaterUpdatesStatus(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodPost, "/api/water", `{"temperature": 90}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	reading := decode(t, w)
	assert.Equal(t, float64(90), reading["temperature"])
	assert.Equal(t, float64(7), reading["ph"], "unspecified fields keep current values")

	status := decode(t, do(t, h, http.MethodGet, "/api/status", ""))
	report := status["report"].(map[string]any)
	assert.Equal(t, float64(60), report["score"])
	alerts := report["alerts"].([]any)
	require.NotEmpty(t, alerts)
	assert.Equal(t, "Temperature Emergency", alerts[0].(map[string]any)["title"])

	list := decode(t, do(t, h, http.MethodGet, "/api/water", ""))
	assert.Len(t, list["water_readings"], 1)
}

func TestValidationFailureIs422(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodPost, "/api/water", `{"ph": 15}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	fields := decode(t, w)["fields"].(map[string]any)
	assert.Contains(t, fields, "ph")

	list := decode(t, do(t, h, http.MethodGet, "/api/water", ""))
	assert.Empty(t, list["water_readings"])
}

func TestMalformedBodyIs400(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodPost, "/api/tank", `{"size_gallons": "ten"`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type brokenRepo struct {
	storage.Repository
}

func (brokenRepo) GetLatestTank(context.Context, string) (*models.Tank, error) {
	return nil, errors.New("connection refused")
}

func (brokenRepo) CreateTank(context.Context, *models.Tank) error {
	return errors.New("connection refused")
}

func TestPersistenceFailureIs502(t *testing.T) {
	h := newTestServer(t, func(s *guest.Store) storage.Repository { return brokenRepo{Repository: s} })

	w := do(t, h, http.MethodPost, "/api/feedings", `{"food_type": "Pellets", "amount": "3"}`)
	require.Equal(t, http.StatusBadGateway, w.Code)

	body := decode(t, w)
	assert.Equal(t, RetryMessage, body["error"])
	assert.Equal(t, true, body["retryable"])
}

func TestOtherFailuresAreNotRetryable(t *testing.T) {
	store, err := guest.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	s := NewServer(tracker.New(store, store, models.GuestOwnerID), zerolog.Nop())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/status", nil)
	s.fail(c, errors.New("unknown scoring strategy"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "unknown scoring strategy", body["error"])
	assert.Nil(t, body["retryable"])
}

func TestPostFishAndTank(t *testing.T) {
	h := newTestServer(t, nil)

	w := do(t, h, http.MethodPost, "/api/tank", `{"size_gallons": 2.5, "heater": false}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = do(t, h, http.MethodPost, "/api/fish", `{"name": "Neptune", "fin_condition": "Rotting"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	fish := decode(t, w)
	assert.Equal(t, "Neptune", fish["name"])
	assert.Equal(t, "Normal", fish["appetite"])

	tank := decode(t, do(t, h, http.MethodGet, "/api/tank", ""))
	assert.Equal(t, fish["tank_id"], tank["id"])

	w = do(t, h, http.MethodPost, "/api/fish", `{"appetite": "Ravenous"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestFeedingsAndWaterChanges(t *testing.T) {
	h := newTestServer(t, nil)

	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/feedings", `{"food_type": "Pellets", "amount": "3", "notes": "ate all"}`).Code)
	require.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/api/water-changes", `{"percentage": 25}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodPost, "/api/water-changes", `{"percentage": 0}`).Code)

	assert.Len(t, decode(t, do(t, h, http.MethodGet, "/api/feedings?limit=5", ""))["feeding_logs"], 1)
	assert.Len(t, decode(t, do(t, h, http.MethodGet, "/api/water-changes", ""))["water_changes"], 1)

	today := decode(t, do(t, h, http.MethodGet, "/api/feedings/today", ""))
	assert.Len(t, today["feedings"], 2)
}

func TestReminders(t *testing.T) {
	h := newTestServer(t, nil)

	body := decode(t, do(t, h, http.MethodGet, "/api/reminders", ""))
	reminders := body["reminders"].([]any)
	require.Len(t, reminders, 5)
	id := reminders[0].(map[string]any)["id"].(string)

	w := do(t, h, http.MethodPost, "/api/reminders/"+id+"/complete", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotNil(t, decode(t, w)["last_completed"])

	w = do(t, h, http.MethodPost, "/api/reminders/zzz/complete", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, nil)

	do(t, h, http.MethodGet, "/api/status", "")
	do(t, h, http.MethodPost, "/api/water-changes", `{"percentage": 30}`)

	w := do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	out := w.Body.String()
	assert.Contains(t, out, `betta_http_requests_total{method="GET",route="/api/status",status="200"} 1`)
	assert.Contains(t, out, `betta_records_created_total{collection="water_changes"} 1`)
	assert.Contains(t, out, "betta_health_score 100")
}
