package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"interval-timer-backend/internal/model"
	"interval-timer-backend/internal/run"
)

// actionResponse is the wire shape shared by every timer action.
type actionResponse struct {
	Message     string `json:"message"`
	TimeInStep  int    `json:"time_in_step"`
	TimeInTimer int    `json:"time_in_timer"`
	TotalTime   int    `json:"total_time"`
	State       string `json:"state"`
}

// statusResponse extends actionResponse with the position within the
// step program.
type statusResponse struct {
	actionResponse
	CurrentStepIndex  int `json:"current_step_index"`
	CurrentRepetition int `json:"current_repetition"`
}

func newActionResponse(message string, rec run.Record) actionResponse {
	return actionResponse{
		Message:     message,
		TimeInStep:  rec.TimeInStep,
		TimeInTimer: rec.TimeInTimer,
		TotalTime:   rec.TotalDuration,
		State:       string(rec.State),
	}
}

// ListActions returns the lifecycle actions a client can issue.
func (h *Handler) ListActions(c *gin.Context) {
	c.JSON(http.StatusOK, []string{"start", "pause", "resume", "stop"})
}

// StartTimer resolves the timer's steps from storage and begins (or
// restarts) its run.
func (h *Handler) StartTimer(c *gin.Context) {
	id, ok := queryTimerID(c)
	if !ok {
		return
	}

	timer, err := h.store.GetTimer(c.Request.Context(), id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Timer not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	steps := make([]run.Step, len(timer.Steps))
	for i, s := range timer.Steps {
		steps[i] = run.Step{
			Index:           i,
			DurationSeconds: s.DurationSeconds,
			Repetitions:     s.Repetitions,
		}
	}

	rec := h.runtime.Start(id, steps)
	c.JSON(http.StatusOK, newActionResponse("Timer started", rec))
}

// PauseTimer pauses a running timer.
func (h *Handler) PauseTimer(c *gin.Context) {
	id, ok := queryTimerID(c)
	if !ok {
		return
	}

	rec, ok := h.runtime.Pause(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Timer not found or not running"})
		return
	}
	c.JSON(http.StatusOK, newActionResponse("Timer paused", rec))
}

// ResumeTimer resumes a paused timer.
func (h *Handler) ResumeTimer(c *gin.Context) {
	id, ok := queryTimerID(c)
	if !ok {
		return
	}

	rec, ok := h.runtime.Resume(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Timer not found or not paused"})
		return
	}
	c.JSON(http.StatusOK, newActionResponse("Timer resumed", rec))
}

// StopTimer stops a timer from any state and closes the session out to
// run history. Stopping an already-stopped timer repeats the frozen
// snapshot without writing another history row.
func (h *Handler) StopTimer(c *gin.Context) {
	id, ok := queryTimerID(c)
	if !ok {
		return
	}

	prev, ok := h.runtime.Status(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Timer not found"})
		return
	}

	rec, ok := h.runtime.Stop(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Timer not found"})
		return
	}
	if prev.State != run.StateStopped {
		h.recorder.Dispatch(model.RunHistory{
			TimerID:        rec.TimerID,
			StartedAt:      rec.StartedAt,
			StoppedAt:      time.Now().UTC(),
			ElapsedSeconds: rec.TimeInTimer,
			TotalDuration:  rec.TotalDuration,
			Completed:      rec.TimeInTimer >= rec.TotalDuration,
		})
	}
	c.JSON(http.StatusOK, newActionResponse("Timer stopped", rec))
}

// TimerStatus reports the live progress of a timer's run.
func (h *Handler) TimerStatus(c *gin.Context) {
	id, ok := pathID(c, "timer_id")
	if !ok {
		return
	}

	rec, ok := h.runtime.Status(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Timer not found"})
		return
	}
	c.JSON(http.StatusOK, statusResponse{
		actionResponse:    newActionResponse("Timer status retrieved", rec),
		CurrentStepIndex:  rec.CurrentStepIndex,
		CurrentRepetition: rec.CurrentRepetition,
	})
}
