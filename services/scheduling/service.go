package scheduling

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	blockedRepo "calendra/database/repository/blocked"
	eventRepo "calendra/database/repository/event"
	"calendra/models"
	"calendra/utils"
)

func (s *DefaultSchedulingService) Suggest(ctx context.Context, req SuggestionRequest) ([]models.Suggestion, error) {
	return s.Ranker.Suggest(ctx, req)
}

func (s *DefaultSchedulingService) ValidateEvent(ctx context.Context, event *models.Event, excludeEventID string) error {
	if err := validateEventInput(event); err != nil {
		return err
	}
	normalizeAttendees(event)

	candidate := event.Interval()
	// The owner and every required attendee are hard constraints; optional
	// attendees never block a write.
	for _, userID := range append([]string{event.UserID}, event.RequiredAttendees...) {
		overlapping, err := s.Conflicts.Check(ctx, userID, candidate, excludeEventID)
		if err != nil {
			return err
		}
		if len(overlapping) > 0 {
			return &ConflictError{UserID: userID, Overlapping: overlapping}
		}
	}
	return nil
}

func (s *DefaultSchedulingService) BusyTimeline(ctx context.Context, userID string, window models.Interval) ([]models.Interval, error) {
	if userID == "" {
		return nil, invalidInputf("user id is required")
	}
	if !window.Start.Before(window.End) {
		return nil, invalidInputf("query window %s is empty or inverted", window)
	}
	return s.Availability.BusyTimeline(ctx, userID, window, "")
}

func (s *DefaultSchedulingService) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if err := s.ValidateEvent(ctx, event, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.Events.Create(ctx, event); err != nil {
		return nil, &StoreError{Op: "create event", Err: err}
	}

	s.invalidateTimelines(ctx, eventParticipants(event))
	s.scheduleReminder(ctx, event)
	return event, nil
}

func (s *DefaultSchedulingService) UpdateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	if event.ID == "" {
		return nil, invalidInputf("event id is required")
	}
	existing, err := s.Events.GetByID(ctx, event.ID)
	if err != nil {
		return nil, s.eventStoreErr("get event", event.ID, err)
	}
	if existing.UserID != event.UserID {
		return nil, &NotFoundError{Kind: "event", ID: event.ID}
	}

	// Excluding the event's own prior occurrence keeps an edit from
	// conflicting with itself.
	if err := s.ValidateEvent(ctx, event, event.ID); err != nil {
		return nil, err
	}

	event.CreatedAt = existing.CreatedAt
	event.UpdatedAt = time.Now().UTC()
	if err := s.Events.Update(ctx, event); err != nil {
		return nil, s.eventStoreErr("update event", event.ID, err)
	}

	s.invalidateTimelines(ctx, append(eventParticipants(existing), eventParticipants(event)...))
	s.scheduleReminder(ctx, event)
	return event, nil
}

func (s *DefaultSchedulingService) DeleteEvent(ctx context.Context, userID, eventID string) error {
	existing, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		return s.eventStoreErr("get event", eventID, err)
	}
	if existing.UserID != userID {
		return &NotFoundError{Kind: "event", ID: eventID}
	}
	if err := s.Events.Delete(ctx, userID, eventID); err != nil {
		return s.eventStoreErr("delete event", eventID, err)
	}

	s.invalidateTimelines(ctx, eventParticipants(existing))
	if s.Reminders != nil {
		if err := s.Reminders.Cancel(ctx, eventID); err != nil {
			utils.GetLogger().Warn("failed to cancel reminder", zap.String("eventID", eventID), zap.Error(err))
		}
	}
	return nil
}

func (s *DefaultSchedulingService) ListEvents(ctx context.Context, userID string, window models.Interval) ([]models.Event, error) {
	if userID == "" {
		return nil, invalidInputf("user id is required")
	}
	if !window.Start.Before(window.End) {
		return nil, invalidInputf("query window %s is empty or inverted", window)
	}
	events, err := s.Events.ListByUserAndWindow(ctx, userID, window)
	if err != nil {
		return nil, &StoreError{Op: "list events", Err: err}
	}
	return events, nil
}

func (s *DefaultSchedulingService) CreateBlockedTime(ctx context.Context, rule *models.BlockedTime) (*models.BlockedTime, error) {
	if err := rule.Validate(); err != nil {
		return nil, &InvalidInputError{Message: err.Error()}
	}
	rule.CreatedAt = time.Now().UTC()
	if err := s.Blocked.Create(ctx, rule); err != nil {
		return nil, &StoreError{Op: "create blocked time", Err: err}
	}
	s.Cache.Invalidate(ctx, rule.UserID)
	return rule, nil
}

func (s *DefaultSchedulingService) UpdateBlockedTime(ctx context.Context, rule *models.BlockedTime) (*models.BlockedTime, error) {
	if rule.ID == "" {
		return nil, invalidInputf("blocked time id is required")
	}
	if err := rule.Validate(); err != nil {
		return nil, &InvalidInputError{Message: err.Error()}
	}
	existing, err := s.Blocked.GetByID(ctx, rule.ID)
	if err != nil {
		return nil, s.blockedStoreErr("get blocked time", rule.ID, err)
	}
	if existing.UserID != rule.UserID {
		return nil, &NotFoundError{Kind: "blocked time", ID: rule.ID}
	}
	rule.CreatedAt = existing.CreatedAt
	if err := s.Blocked.Update(ctx, rule); err != nil {
		return nil, s.blockedStoreErr("update blocked time", rule.ID, err)
	}
	s.Cache.Invalidate(ctx, rule.UserID)
	return rule, nil
}

func (s *DefaultSchedulingService) DeleteBlockedTime(ctx context.Context, userID, ruleID string) error {
	if err := s.Blocked.Delete(ctx, userID, ruleID); err != nil {
		return s.blockedStoreErr("delete blocked time", ruleID, err)
	}
	s.Cache.Invalidate(ctx, userID)
	return nil
}

func (s *DefaultSchedulingService) ListBlockedTimes(ctx context.Context, userID string, window models.Interval) ([]models.BlockedTime, error) {
	if userID == "" {
		return nil, invalidInputf("user id is required")
	}
	if !window.Start.Before(window.End) {
		return nil, invalidInputf("query window %s is empty or inverted", window)
	}
	rules, err := s.Blocked.ListActiveInWindow(ctx, userID, window)
	if err != nil {
		return nil, &StoreError{Op: "list blocked times", Err: err}
	}
	return rules, nil
}

func (s *DefaultSchedulingService) eventStoreErr(op, id string, err error) error {
	if errors.Is(err, eventRepo.ErrNotFound) {
		return &NotFoundError{Kind: "event", ID: id}
	}
	return &StoreError{Op: op, Err: err}
}

func (s *DefaultSchedulingService) blockedStoreErr(op, id string, err error) error {
	if errors.Is(err, blockedRepo.ErrNotFound) {
		return &NotFoundError{Kind: "blocked time", ID: id}
	}
	return &StoreError{Op: op, Err: err}
}

func (s *DefaultSchedulingService) invalidateTimelines(ctx context.Context, userIDs []string) {
	seen := make(map[string]struct{}, len(userIDs))
	for _, userID := range userIDs {
		if _, dup := seen[userID]; dup {
			continue
		}
		seen[userID] = struct{}{}
		s.Cache.Invalidate(ctx, userID)
	}
}

func (s *DefaultSchedulingService) scheduleReminder(ctx context.Context, event *models.Event) {
	if s.Reminders == nil {
		return
	}
	fireAt, ok := event.ReminderAt()
	if !ok {
		return
	}
	if err := s.Reminders.Schedule(ctx, event, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule reminder",
			zap.String("eventID", event.ID), zap.Time("fireAt", fireAt), zap.Error(err))
	}
}

func validateEventInput(event *models.Event) error {
	if event.UserID == "" {
		return invalidInputf("event requires a user id")
	}
	if event.Title == "" {
		return invalidInputf("event requires a title")
	}
	if !event.AllDay && !event.Start.Before(event.End) {
		return invalidInputf("event start %s must be before end %s",
			event.Start.Format(time.RFC3339), event.End.Format(time.RFC3339))
	}
	if event.NotificationOffsetHours != nil && *event.NotificationOffsetHours < 0 {
		return invalidInputf("notification offset must not be negative, got %v", *event.NotificationOffsetHours)
	}
	return nil
}

// normalizeAttendees keeps the required/optional split a structural
// invariant: the owner never appears as an attendee, and anyone listed as
// required is dropped from the optional set.
func normalizeAttendees(event *models.Event) {
	required := make(map[string]struct{}, len(event.RequiredAttendees))
	var req []string
	for _, id := range event.RequiredAttendees {
		if id == "" || id == event.UserID {
			continue
		}
		if _, dup := required[id]; dup {
			continue
		}
		required[id] = struct{}{}
		req = append(req, id)
	}
	event.RequiredAttendees = req

	seenOpt := make(map[string]struct{}, len(event.OptionalAttendees))
	var opt []string
	for _, id := range event.OptionalAttendees {
		if id == "" || id == event.UserID {
			continue
		}
		if _, isRequired := required[id]; isRequired {
			continue
		}
		if _, dup := seenOpt[id]; dup {
			continue
		}
		seenOpt[id] = struct{}{}
		opt = append(opt, id)
	}
	event.OptionalAttendees = opt
}

func eventParticipants(event *models.Event) []string {
	out := make([]string, 0, 1+len(event.RequiredAttendees)+len(event.OptionalAttendees))
	out = append(out, event.UserID)
	out = append(out, event.RequiredAttendees...)
	out = append(out, event.OptionalAttendees...)
	return out
}
