package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"calendra/models"
	"calendra/services/scheduling"
)

// respondServiceError maps the engine's error kinds onto HTTP statuses:
// InvalidInput 400, NotFound 404, Conflict 409 (with the overlapping
// intervals attached), StoreUnavailable 503, anything else 500.
func respondServiceError(c *gin.Context, err error) {
	var invalid *scheduling.InvalidInputError
	var conflict *scheduling.ConflictError
	var notFound *scheduling.NotFoundError
	var store *scheduling.StoreError

	switch {
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Message})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":       "scheduling conflict",
			"userId":      conflict.UserID,
			"overlapping": conflict.Overlapping,
		})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound.Error()})
	case errors.As(err, &store):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable", "details": store.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// parseWindow reads the windowStart/windowEnd RFC3339 query parameters.
func parseWindow(c *gin.Context) (models.Interval, bool) {
	start, err := time.Parse(time.RFC3339, c.Query("windowStart"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid windowStart", "details": "expected RFC3339 timestamp"})
		return models.Interval{}, false
	}
	end, err := time.Parse(time.RFC3339, c.Query("windowEnd"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid windowEnd", "details": "expected RFC3339 timestamp"})
		return models.Interval{}, false
	}
	window, err := models.NewInterval(start.UTC(), end.UTC())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid window", "details": err.Error()})
		return models.Interval{}, false
	}
	return window, true
}
