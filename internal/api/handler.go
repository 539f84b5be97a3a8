package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"interval-timer-backend/internal/history"
	"interval-timer-backend/internal/run"
	"interval-timer-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    store.Store
	runtime  *run.Runtime
	recorder *history.Recorder
	importer *http.Client
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, rt *run.Runtime, rec *history.Recorder, importer *http.Client) *Handler {
	return &Handler{
		store:    s,
		runtime:  rt,
		recorder: rec,
		importer: importer,
	}
}

// Root greets API consumers.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Interval Timer API"})
}

// Health reports process liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// pathID parses an integer path parameter, answering 400 on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be an integer"})
		return 0, false
	}
	return id, true
}

// queryTimerID parses the timer_id query parameter used by action routes.
func queryTimerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Query("timer_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "timer_id must be an integer"})
		return 0, false
	}
	return id, true
}
