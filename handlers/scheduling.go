package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"calendra/models"
	"calendra/services/scheduling"
)

const defaultSuggestionLimit = 5

// SchedulingHandler exposes the availability and suggestion engine over HTTP.
type SchedulingHandler struct {
	Svc    scheduling.SchedulingService
	Logger *zap.Logger
}

func NewSchedulingHandler(svc scheduling.SchedulingService, logger *zap.Logger) *SchedulingHandler {
	return &SchedulingHandler{Svc: svc, Logger: logger}
}

// GetSuggestions handles GET /api/scheduling/suggestions.
// Query: ownerId, date (2006-01-02), duration (minutes), required/optional
// (repeatable), limit, and an optional windowStart/windowEnd (15:04) pair
// narrowing the window within the requested day.
func (h *SchedulingHandler) GetSuggestions(c *gin.Context) {
	ownerID := c.Query("ownerId")
	if ownerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ownerId is required"})
		return
	}

	day, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date", "details": "expected 2006-01-02"})
		return
	}

	durationMin, err := strconv.Atoi(c.Query("duration"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid duration", "details": "expected whole minutes"})
		return
	}

	limit := defaultSuggestionLimit
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
	}

	windowStart, windowEnd := day, day.AddDate(0, 0, 1)
	if raw := c.Query("windowStart"); raw != "" {
		t, err := time.Parse("15:04", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid windowStart", "details": "expected 15:04"})
			return
		}
		windowStart = day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	}
	if raw := c.Query("windowEnd"); raw != "" {
		t, err := time.Parse("15:04", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid windowEnd", "details": "expected 15:04"})
			return
		}
		windowEnd = day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute)
	}

	req := scheduling.SuggestionRequest{
		OwnerID:           ownerID,
		RequiredAttendees: c.QueryArray("required"),
		OptionalAttendees: c.QueryArray("optional"),
		Duration:          time.Duration(durationMin) * time.Minute,
		Window:            models.Interval{Start: windowStart, End: windowEnd},
		Limit:             limit,
	}

	suggestions, err := h.Svc.Suggest(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	// Empty is a valid outcome, not an error.
	if suggestions == nil {
		suggestions = []models.Suggestion{}
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// ValidateEvent handles POST /api/scheduling/validate.
func (h *SchedulingHandler) ValidateEvent(c *gin.Context) {
	var input struct {
		Event          models.Event `json:"event"`
		ExcludeEventID string       `json:"excludeEventId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := h.Svc.ValidateEvent(c.Request.Context(), &input.Event, input.ExcludeEventID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetBusyTimeline handles GET /api/availability/:userId.
func (h *SchedulingHandler) GetBusyTimeline(c *gin.Context) {
	userID := c.Param("userId")
	window, ok := parseWindow(c)
	if !ok {
		return
	}

	busy, err := h.Svc.BusyTimeline(c.Request.Context(), userID, window)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if busy == nil {
		busy = []models.Interval{}
	}
	c.JSON(http.StatusOK, gin.H{"userId": userID, "window": window, "busy": busy})
}
