package tasks

import (
	"context"
	"errors"
	"time"

	"github.com/hibiken/asynq"

	"calendra/models"
)

// AsynqReminderScheduler enqueues event reminders onto the asynq queue at
// their computed fire time.
type AsynqReminderScheduler struct {
	Client    *asynq.Client
	Inspector *asynq.Inspector
	Queue     string
}

func NewAsynqReminderScheduler(redisOpt asynq.RedisClientOpt) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{
		Client:    asynq.NewClient(redisOpt),
		Inspector: asynq.NewInspector(redisOpt),
		Queue:     "default",
	}
}

// Schedule enqueues a reminder for the event at fireAt, replacing any
// pending reminder for the same event. Fire times already in the past are
// skipped: the moment the reminder was meant for is gone.
func (s *AsynqReminderScheduler) Schedule(ctx context.Context, event *models.Event, fireAt time.Time) error {
	if !fireAt.After(time.Now()) {
		return nil
	}

	payload := EventReminderPayload{
		EventID: event.ID,
		UserID:  event.UserID,
		Title:   event.Title,
		StartAt: event.Interval().Start,
		FireAt:  fireAt,
	}
	task, opts, err := NewEventReminderTask(payload)
	if err != nil {
		return err
	}

	if err := s.cancel(event.ID); err != nil {
		return err
	}
	_, err = s.Client.EnqueueContext(ctx, task, opts...)
	return err
}

// Cancel drops the pending reminder for an event, if any.
func (s *AsynqReminderScheduler) Cancel(ctx context.Context, eventID string) error {
	return s.cancel(eventID)
}

func (s *AsynqReminderScheduler) cancel(eventID string) error {
	err := s.Inspector.DeleteTask(s.Queue, ReminderTaskID(eventID))
	if err != nil && !errors.Is(err, asynq.ErrTaskNotFound) && !errors.Is(err, asynq.ErrQueueNotFound) {
		return err
	}
	return nil
}

// Close releases the underlying asynq client.
func (s *AsynqReminderScheduler) Close() error {
	return s.Client.Close()
}
