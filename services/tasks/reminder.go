package tasks

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const TypeEventReminder = "reminder:event"

// EventReminderPayload carries everything the worker needs to hand a due
// reminder to the notifier without a store round-trip.
type EventReminderPayload struct {
	EventID string    `json:"eventId"`
	UserID  string    `json:"userId"`
	Title   string    `json:"title"`
	StartAt time.Time `json:"startAt"`
	FireAt  time.Time `json:"fireAt"`
}

// ReminderTaskID returns the stable task ID for an event's reminder, so a
// rescheduled event replaces its pending reminder instead of stacking a
// second one.
func ReminderTaskID(eventID string) string {
	return "reminder:" + eventID
}

func NewEventReminderTask(payload EventReminderPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeEventReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(payload.FireAt),
		asynq.TaskID(ReminderTaskID(payload.EventID)),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}
