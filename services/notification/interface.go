package notification

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Notifier receives due reminders. Actual delivery (push, email, SMS) lives
// outside this service; the engine only computes when a reminder fires.
type Notifier interface {
	Notify(ctx context.Context, userID, title string, startAt time.Time) error
}

// LogNotifier is the default sink: it records the due reminder and nothing
// else.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) Notify(ctx context.Context, userID, title string, startAt time.Time) error {
	n.Logger.Info("reminder due",
		zap.String("userID", userID),
		zap.String("title", title),
		zap.Time("startAt", startAt),
	)
	return nil
}
