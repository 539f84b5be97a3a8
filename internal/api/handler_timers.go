package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"interval-timer-backend/internal/model"
)

type stepRequest struct {
	OrderIndex      int    `json:"order_index" binding:"min=0"`
	Title           string `json:"title" binding:"required"`
	DurationSeconds int    `json:"duration_seconds" binding:"required,min=1"`
	Repetitions     int    `json:"repetitions" binding:"omitempty,min=1"`
	Notes           string `json:"notes"`
}

func (r stepRequest) toModel(timerID int64) model.TimerStep {
	repetitions := r.Repetitions
	if repetitions == 0 {
		repetitions = 1
	}
	return model.TimerStep{
		TimerID:         timerID,
		OrderIndex:      r.OrderIndex,
		Title:           r.Title,
		DurationSeconds: r.DurationSeconds,
		Repetitions:     repetitions,
		Notes:           r.Notes,
	}
}

type createTimerRequest struct {
	Name        string        `json:"name" binding:"required"`
	Description string        `json:"description"`
	Steps       []stepRequest `json:"steps" binding:"omitempty,dive"`
}

type updateTimerRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ListTimers returns a page of timer definitions.
func (h *Handler) ListTimers(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "skip must be a non-negative integer"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	timers, err := h.store.ListTimers(c.Request.Context(), skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, timers)
}

// CreateTimer persists a new timer definition with its steps.
func (h *Handler) CreateTimer(c *gin.Context) {
	var req createTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := model.Timer{
		Name:        req.Name,
		Description: req.Description,
	}
	for _, step := range req.Steps {
		timer.Steps = append(timer.Steps, step.toModel(0))
	}

	if err := h.store.CreateTimer(c.Request.Context(), &timer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	created, err := h.store.GetTimer(c.Request.Context(), timer.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetTimer returns one timer definition with its steps in order.
func (h *Handler) GetTimer(c *gin.Context) {
	id, ok := pathID(c, "timer_id")
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
	c.JSON(http.StatusOK, timer)
}

// UpdateTimer replaces a timer's name and description. Steps are managed
// through the step routes.
func (h *Handler) UpdateTimer(c *gin.Context) {
	id, ok := pathID(c, "timer_id")
	if !ok {
		return
	}

	var req updateTimerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	timer := model.Timer{ID: id, Name: req.Name, Description: req.Description}
	if err := h.store.UpdateTimer(c.Request.Context(), &timer); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Timer not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	updated, err := h.store.GetTimer(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTimer removes a timer, its steps and its run history, and drops
// any live run state.
func (h *Handler) DeleteTimer(c *gin.Context) {
	id, ok := pathID(c, "timer_id")
	if !ok {
		return
	}

	if err := h.store.DeleteTimer(c.Request.Context(), id); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Timer not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	h.runtime.Remove(id)
	c.Status(http.StatusNoContent)
}

// AddStep appends a step to an existing timer.
func (h *Handler) AddStep(c *gin.Context) {
	id, ok := pathID(c, "timer_id")
	if !ok {
		return
	}

	var req stepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	step := req.toModel(id)
	if err := h.store.AddStep(c.Request.Context(), &step); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Timer not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, step)
}

// DeleteStep removes a single step from a timer.
func (h *Handler) DeleteStep(c *gin.Context) {
	timerID, ok := pathID(c, "timer_id")
	if !ok {
		return
	}
	stepID, ok := pathID(c, "step_id")
	if !ok {
		return
	}

	if err := h.store.DeleteStep(c.Request.Context(), timerID, stepID); err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Timer or step not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
