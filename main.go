// File: calendra/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"calendra/config"
	"calendra/cron"
	"calendra/database"
	blockedRepoPkg "calendra/database/repository/blocked"
	eventRepoPkg "calendra/database/repository/event"
	"calendra/handlers"
	"calendra/middleware"
	"calendra/routes"
	"calendra/services/notification"
	"calendra/services/scheduling"
	"calendra/services/tasks"
	"calendra/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	eventRepo := eventRepoPkg.NewMongoEventRepo()
	blockedRepo := blockedRepoPkg.NewMongoBlockedTimeRepo()

	// engine.
	timelineCache := scheduling.NewTimelineCache(utils.GetCacheClient(), config.TimelineCacheTTL())
	availability := &scheduling.AvailabilityCalculator{
		Events:  eventRepo,
		Blocked: blockedRepo,
		Cache:   timelineCache,
	}
	conflicts := &scheduling.ConflictDetector{Availability: availability}
	ranker := &scheduling.SuggestionRanker{
		Availability: availability,
		Scoring: scheduling.ScoringConfig{
			PreferredStartHour:      config.AppConfig.PreferredHoursStart,
			PreferredEndHour:        config.AppConfig.PreferredHoursEnd,
			PreferredHoursBonus:     config.AppConfig.PreferredHoursBonus,
			OptionalAttendeePenalty: config.AppConfig.OptionalAttendeePenalty,
		},
	}

	reminderRedis := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}
	reminderScheduler := tasks.NewAsynqReminderScheduler(reminderRedis)
	defer reminderScheduler.Close()

	schedulingService := &scheduling.DefaultSchedulingService{
		Events:       eventRepo,
		Blocked:      blockedRepo,
		Availability: availability,
		Conflicts:    conflicts,
		Ranker:       ranker,
		Cache:        timelineCache,
		Reminders:    reminderScheduler,
	}

	// Background worker dispatching due reminders.
	worker := cron.InitReminderWorker(&notification.LogNotifier{Logger: logger})

	schedulingHandler := handlers.NewSchedulingHandler(schedulingService, logger)
	eventHandler := handlers.NewEventHandler(schedulingService, logger)
	blockedHandler := handlers.NewBlockedTimeHandler(schedulingService, logger)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		GetSuggestions:     schedulingHandler.GetSuggestions,
		ValidateEvent:      schedulingHandler.ValidateEvent,
		GetBusyTimeline:    schedulingHandler.GetBusyTimeline,
		GetBusyTimelineICS: schedulingHandler.GetBusyTimelineICS,

		CreateEvent: eventHandler.CreateEvent,
		UpdateEvent: eventHandler.UpdateEvent,
		DeleteEvent: eventHandler.DeleteEvent,
		ListEvents:  eventHandler.ListEvents,

		CreateBlockedTime: blockedHandler.CreateBlockedTime,
		UpdateBlockedTime: blockedHandler.UpdateBlockedTime,
		DeleteBlockedTime: blockedHandler.DeleteBlockedTime,
		ListBlockedTimes:  blockedHandler.ListBlockedTimes,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	worker.Shutdown()

	logger.Sugar().Info("main: server stopped gracefully")
}
