package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"interval-timer-backend/internal/csvio"
)

// ExportTimer renders a timer as a downloadable CSV file.
func (h *Handler) ExportTimer(c *gin.Context) {
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

	data, err := csvio.Export(timer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=timer_%d.csv", id))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ImportTimer creates a timer from an uploaded CSV file.
func (h *Handler) ImportTimer(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be a CSV file"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !utf8.Valid(data) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be UTF-8 encoded"})
		return
	}

	h.createImportedTimer(c, data)
}

type importURLRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// ImportTimerFromURL fetches a CSV from a remote URL and imports it.
func (h *Handler) ImportTimerFromURL(c *gin.Context) {
	var req importURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, err := csvio.Fetch(c.Request.Context(), h.importer, req.URL)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	h.createImportedTimer(c, data)
}

// createImportedTimer parses CSV content, persists the resulting timer
// and answers 201 with the stored definition.
func (h *Handler) createImportedTimer(c *gin.Context, data []byte) {
	timer, err := csvio.Import(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.CreateTimer(c.Request.Context(), timer); err != nil {
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
