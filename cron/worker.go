package cron

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"calendra/config"
	"calendra/services/notification"
	"calendra/services/tasks"
	"calendra/utils"
)

// InitReminderWorker starts the background asynq worker that dispatches due
// event reminders to the notifier.
func InitReminderWorker(notifier notification.Notifier) *asynq.Server {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisReminderDB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEventReminder, handleEventReminder(notifier, logger))

	go func() {
		logger.Info("starting reminder worker")
		if err := srv.Run(mux); err != nil {
			logger.Fatal("reminder worker failed", zap.Error(err))
		}
	}()

	return srv
}

func handleEventReminder(notifier notification.Notifier, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.EventReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("invalid reminder payload", zap.Error(err))
			return err
		}

		logger.Debug("dispatching reminder",
			zap.String("eventID", p.EventID),
			zap.String("userID", p.UserID),
			zap.Time("startAt", p.StartAt),
		)
		return notifier.Notify(ctx, p.UserID, p.Title, p.StartAt)
	}
}
