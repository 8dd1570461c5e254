package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"calendra/models"
	"calendra/services/scheduling"
)

// EventHandler exposes event CRUD with conflict validation.
type EventHandler struct {
	Svc    scheduling.SchedulingService
	Logger *zap.Logger
}

func NewEventHandler(svc scheduling.SchedulingService, logger *zap.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

// CreateEvent handles POST /api/events. Conflicting events are rejected with
// 409 and the overlapping intervals.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var event models.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Svc.CreateEvent(c.Request.Context(), &event)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateEvent handles PUT /api/events/:id.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var event models.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	event.ID = c.Param("id")

	updated, err := h.Svc.UpdateEvent(c.Request.Context(), &event)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteEvent handles DELETE /api/events/:id.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	if err := h.Svc.DeleteEvent(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListEvents handles GET /api/events.
func (h *EventHandler) ListEvents(c *gin.Context) {
	userID := c.Query("userId")
	window, ok := parseWindow(c)
	if !ok {
		return
	}

	events, err := h.Svc.ListEvents(c.Request.Context(), userID, window)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}
