package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interval-timer-backend/internal/model"
)

func TestRootAndHealth(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Interval Timer API")

	w = doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestCreateAndGetTimer(t *testing.T) {
	r, _, _ := newTestRouter(t)

	created := createTimer(t, r, "Morning HIIT", []stepRequest{
		{OrderIndex: 1, Title: "Rest", DurationSeconds: 30, Repetitions: 8},
		{OrderIndex: 0, Title: "Work", DurationSeconds: 60, Repetitions: 8, Notes: "hard"},
	})

	require.NotZero(t, created.ID)
	assert.Equal(t, "Morning HIIT", created.Name)
	require.Len(t, created.Steps, 2)
	// Steps come back in programmed order regardless of insert order.
	assert.Equal(t, "Work", created.Steps[0].Title)
	assert.Equal(t, "Rest", created.Steps[1].Title)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/timers/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var fetched model.Timer
	decodeBody(t, w, &fetched)
	assert.Equal(t, created.ID, fetched.ID)
	require.Len(t, fetched.Steps, 2)
	assert.Equal(t, 60, fetched.Steps[0].DurationSeconds)
}

func TestGetTimerErrors(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/timers/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Timer not found"}`, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/v1/timers/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateTimerValidation(t *testing.T) {
	r, _, _ := newTestRouter(t)

	cases := []struct {
		name string
		body createTimerRequest
	}{
		{
			name: "missing name",
			body: createTimerRequest{
				Steps: []stepRequest{{Title: "Work", DurationSeconds: 60}},
			},
		},
		{
			name: "zero duration step",
			body: createTimerRequest{
				Name:  "Broken",
				Steps: []stepRequest{{Title: "Work", DurationSeconds: 0}},
			},
		},
		{
			name: "untitled step",
			body: createTimerRequest{
				Name:  "Broken",
				Steps: []stepRequest{{DurationSeconds: 60}},
			},
		},
		{
			name: "negative repetitions",
			body: createTimerRequest{
				Name:  "Broken",
				Steps: []stepRequest{{Title: "Work", DurationSeconds: 60, Repetitions: -1}},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, "/api/v1/timers", tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateTimerDefaultsRepetitions(t *testing.T) {
	r, _, _ := newTestRouter(t)

	created := createTimer(t, r, "Single pass", []stepRequest{
		{Title: "Work", DurationSeconds: 60},
	})
	require.Len(t, created.Steps, 1)
	assert.Equal(t, 1, created.Steps[0].Repetitions)
}

func TestListTimers(t *testing.T) {
	r, _, _ := newTestRouter(t)

	for i := 0; i < 3; i++ {
		createTimer(t, r, fmt.Sprintf("Timer %d", i), intervalSteps())
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/timers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []model.Timer
	decodeBody(t, w, &all)
	assert.Len(t, all, 3)

	w = doJSON(t, r, http.MethodGet, "/api/v1/timers?skip=1&limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page []model.Timer
	decodeBody(t, w, &page)
	require.Len(t, page, 1)
	assert.Equal(t, "Timer 1", page[0].Name)

	w = doJSON(t, r, http.MethodGet, "/api/v1/timers?skip=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/timers?limit=zero", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListTimersEmpty(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/timers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUpdateTimer(t *testing.T) {
	r, _, _ := newTestRouter(t)
	created := createTimer(t, r, "Before", intervalSteps())

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/v1/timers/%d", created.ID), updateTimerRequest{
		Name:        "After",
		Description: "tuned",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var updated model.Timer
	decodeBody(t, w, &updated)
	assert.Equal(t, "After", updated.Name)
	assert.Equal(t, "tuned", updated.Description)
	assert.Len(t, updated.Steps, 2)

	w = doJSON(t, r, http.MethodPut, "/api/v1/timers/9999", updateTimerRequest{Name: "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Timer not found"}`, w.Body.String())
}

func TestDeleteTimer(t *testing.T) {
	r, _, _ := newTestRouter(t)
	created := createTimer(t, r, "Doomed", intervalSteps())
	path := fmt.Sprintf("/api/v1/timers/%d", created.ID)

	// A live run must not outlive its definition.
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/actions/start?timer_id=%d", created.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/v1/actions/status/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStepRoutes(t *testing.T) {
	r, _, _ := newTestRouter(t)
	created := createTimer(t, r, "Growing", []stepRequest{
		{OrderIndex: 0, Title: "Work", DurationSeconds: 60},
	})

	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/v1/timers/%d/steps", created.ID), stepRequest{
		OrderIndex:      1,
		Title:           "Rest",
		DurationSeconds: 30,
		Repetitions:     2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var step model.TimerStep
	decodeBody(t, w, &step)
	require.NotZero(t, step.ID)
	assert.Equal(t, created.ID, step.TimerID)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/timers/%d/steps/%d", created.ID, step.ID), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/v1/timers/%d/steps/%d", created.ID, step.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Timer or step not found"}`, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/v1/timers/9999/steps", stepRequest{
		Title:           "Orphan",
		DurationSeconds: 10,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Timer not found"}`, w.Body.String())
}
