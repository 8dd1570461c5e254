// File: handlers/bundle.go
package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct consumed by the
// routes package.
type HandlerBundle struct {
	// Scheduling endpoints.
	GetSuggestions     gin.HandlerFunc
	ValidateEvent      gin.HandlerFunc
	GetBusyTimeline    gin.HandlerFunc
	GetBusyTimelineICS gin.HandlerFunc

	// Event endpoints.
	CreateEvent gin.HandlerFunc
	UpdateEvent gin.HandlerFunc
	DeleteEvent gin.HandlerFunc
	ListEvents  gin.HandlerFunc

	// Blocked-time endpoints.
	CreateBlockedTime gin.HandlerFunc
	UpdateBlockedTime gin.HandlerFunc
	DeleteBlockedTime gin.HandlerFunc
	ListBlockedTimes  gin.HandlerFunc
}
