package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"calendra/handlers"
	"calendra/utils"
)

// RegisterSchedulingRoutes registers the suggestion, validation, and
// availability endpoints.
func RegisterSchedulingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/scheduling")
	{
		api.GET("/suggestions", hb.GetSuggestions)
		api.POST("/validate", hb.ValidateEvent)
	}

	availability := r.Group("/api/availability")
	{
		availability.GET("/:userId", hb.GetBusyTimeline)
		availability.GET("/:userId/ics", hb.GetBusyTimelineICS)
	}
}

// RegisterEventRoutes registers event CRUD endpoints.
func RegisterEventRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/events")
	{
		api.GET("", hb.ListEvents)
		api.POST("", hb.CreateEvent)
		api.PUT("/:id", hb.UpdateEvent)
		api.DELETE("/:id", hb.DeleteEvent)
	}
}

// RegisterBlockedTimeRoutes registers blocked-time rule endpoints.
func RegisterBlockedTimeRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/blocked")
	{
		api.GET("", hb.ListBlockedTimes)
		api.POST("", hb.CreateBlockedTime)
		api.PUT("/:id", hb.UpdateBlockedTime)
		api.DELETE("/:id", hb.DeleteBlockedTime)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":   "ok",
			"message":  "Hi, I'm Calendra",
			"services": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSchedulingRoutes(r, hb)
	RegisterEventRoutes(r, hb)
	RegisterBlockedTimeRoutes(r, hb)
	RegisterHealthRoute(r)
}
