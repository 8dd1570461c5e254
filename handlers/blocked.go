package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"calendra/models"
	"calendra/services/scheduling"
)

// BlockedTimeHandler exposes blocked-time rule CRUD.
type BlockedTimeHandler struct {
	Svc    scheduling.SchedulingService
	Logger *zap.Logger
}

func NewBlockedTimeHandler(svc scheduling.SchedulingService, logger *zap.Logger) *BlockedTimeHandler {
	return &BlockedTimeHandler{Svc: svc, Logger: logger}
}

// CreateBlockedTime handles POST /api/blocked.
func (h *BlockedTimeHandler) CreateBlockedTime(c *gin.Context) {
	var rule models.BlockedTime
	if err := c.ShouldBindJSON(&rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := h.Svc.CreateBlockedTime(c.Request.Context(), &rule)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateBlockedTime handles PUT /api/blocked/:id.
func (h *BlockedTimeHandler) UpdateBlockedTime(c *gin.Context) {
	var rule models.BlockedTime
	if err := c.ShouldBindJSON(&rule); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	rule.ID = c.Param("id")

	updated, err := h.Svc.UpdateBlockedTime(c.Request.Context(), &rule)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteBlockedTime handles DELETE /api/blocked/:id.
func (h *BlockedTimeHandler) DeleteBlockedTime(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	if err := h.Svc.DeleteBlockedTime(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListBlockedTimes handles GET /api/blocked. Rules are returned as stored
// templates, not expanded occurrences.
func (h *BlockedTimeHandler) ListBlockedTimes(c *gin.Context) {
	userID := c.Query("userId")
	window, ok := parseWindow(c)
	if !ok {
		return
	}

	rules, err := h.Svc.ListBlockedTimes(c.Request.Context(), userID, window)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if rules == nil {
		rules = []models.BlockedTime{}
	}
	c.JSON(http.StatusOK, gin.H{"blockedTimes": rules})
}
