package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tornado/portal/internal/infrastructure/event"
	"github.com/tornado/portal/internal/interfaces/http/dto"
)

// Pinger reports whether the backing store is reachable
type Pinger interface {
	Ping() error
}

// SystemHandler handles health and notification feed endpoints
type SystemHandler struct {
	BaseHandler
	db      Pinger
	feed    *event.NotificationFeed
	version string
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db Pinger, feed *event.NotificationFeed, version string) *SystemHandler {
	return &SystemHandler{
		db:      db,
		feed:    feed,
		version: version,
	}
}

// Health reports service and database health
func (h *SystemHandler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if err := h.db.Ping(); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, dto.NewSuccessResponse(gin.H{
		"status":   status,
		"database": dbStatus,
		"version":  h.version,
	}))
}

// Notifications returns the most recent lifecycle notifications, newest first
func (h *SystemHandler) Notifications(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.BadRequest(c, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	h.Success(c, h.feed.Recent(limit))
}
