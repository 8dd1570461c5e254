package scheduling

import (
	"context"
	"time"

	blockedRepo "calendra/database/repository/blocked"
	eventRepo "calendra/database/repository/event"
	"calendra/models"
)

// SchedulingService is the façade exposed to the HTTP layer. All operations
// are synchronous; the only suspension points are store queries, and a
// cancelled context aborts without partial results.
type SchedulingService interface {
	Suggest(ctx context.Context, req SuggestionRequest) ([]models.Suggestion, error)
	// ValidateEvent returns nil when the event can be scheduled, or a
	// *ConflictError carrying the overlapping intervals. excludeEventID is
	// set when validating an edit so the event does not conflict with
	// itself.
	ValidateEvent(ctx context.Context, event *models.Event, excludeEventID string) error
	BusyTimeline(ctx context.Context, userID string, window models.Interval) ([]models.Interval, error)

	CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	UpdateEvent(ctx context.Context, event *models.Event) (*models.Event, error)
	DeleteEvent(ctx context.Context, userID, eventID string) error
	ListEvents(ctx context.Context, userID string, window models.Interval) ([]models.Event, error)

	CreateBlockedTime(ctx context.Context, rule *models.BlockedTime) (*models.BlockedTime, error)
	UpdateBlockedTime(ctx context.Context, rule *models.BlockedTime) (*models.BlockedTime, error)
	DeleteBlockedTime(ctx context.Context, userID, ruleID string) error
	ListBlockedTimes(ctx context.Context, userID string, window models.Interval) ([]models.BlockedTime, error)
}

// ReminderScheduler schedules the notification fire time computed for an
// event. Delivery of the notification itself is out of scope here.
type ReminderScheduler interface {
	Schedule(ctx context.Context, event *models.Event, fireAt time.Time) error
	Cancel(ctx context.Context, eventID string) error
}

// DefaultSchedulingService implements SchedulingService.
type DefaultSchedulingService struct {
	Events       eventRepo.EventRepository
	Blocked      blockedRepo.BlockedTimeRepository
	Availability *AvailabilityCalculator
	Conflicts    *ConflictDetector
	Ranker       *SuggestionRanker
	Cache        *TimelineCache
	Reminders    ReminderScheduler
}
