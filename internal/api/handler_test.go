package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"interval-timer-backend/config"
	"interval-timer-backend/internal/history"
	"interval-timer-backend/internal/model"
	"interval-timer-backend/internal/run"
	"interval-timer-backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the full router against an isolated in-memory
// database. The recorder is left unstarted so tests can observe
// dispatched history entries on its channel.
func newTestRouter(t *testing.T) (*gin.Engine, store.Store, *history.Recorder) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Timer{}, &model.TimerStep{}, &model.RunHistory{}))

	s := store.NewGormStore(db)
	rec := history.NewRecorder(1, s)

	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateBurst = 1000
	cfg.Server.CacheTTLSeconds = 60
	cfg.Importer.Timeout = 5 * time.Second

	return NewRouter(cfg, s, run.New(), rec), s, rec
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

// createTimer seeds a timer over the API and returns the stored record.
func createTimer(t *testing.T, r *gin.Engine, name string, steps []stepRequest) model.Timer {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/timers", createTimerRequest{
		Name:  name,
		Steps: steps,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var timer model.Timer
	decodeBody(t, w, &timer)
	return timer
}

// intervalSteps is the program used by the action tests: 60s x2 then
// 120s x1, 240 seconds in total.
func intervalSteps() []stepRequest {
	return []stepRequest{
		{OrderIndex: 0, Title: "Work", DurationSeconds: 60, Repetitions: 2},
		{OrderIndex: 1, Title: "Cooldown", DurationSeconds: 120, Repetitions: 1},
	}
}
