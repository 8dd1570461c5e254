package scheduling

import (
	"context"

	blockedRepo "calendra/database/repository/blocked"
	eventRepo "calendra/database/repository/event"
	"calendra/models"
)

// AvailabilityCalculator derives busy timelines from committed events and
// expanded blocked-time rules. It is read-only and request-scoped: one store
// query per repository per user per call, no state between requests beyond
// the optional timeline cache.
type AvailabilityCalculator struct {
	Events  eventRepo.EventRepository
	Blocked blockedRepo.BlockedTimeRepository
	Cache   *TimelineCache
}

// BusyTimeline merges the user's event intervals and expanded blocked-time
// occurrences within the window into one sorted, non-overlapping sequence
// fully contained in the window. excludeEventID removes one event from the
// timeline, used when validating an edit against everything but itself.
func (c *AvailabilityCalculator) BusyTimeline(ctx context.Context, userID string, window models.Interval, excludeEventID string) ([]models.Interval, error) {
	// Cached timelines are only usable for the unfiltered view.
	if excludeEventID == "" {
		if timeline, ok := c.Cache.Get(ctx, userID, window); ok {
			return timeline, nil
		}
	}

	events, err := c.Events.ListByUserAndWindow(ctx, userID, window)
	if err != nil {
		return nil, &StoreError{Op: "list events", Err: err}
	}
	rules, err := c.Blocked.ListActiveInWindow(ctx, userID, window)
	if err != nil {
		return nil, &StoreError{Op: "list blocked times", Err: err}
	}

	var busy []models.Interval
	for _, ev := range events {
		if excludeEventID != "" && ev.ID == excludeEventID {
			continue
		}
		busy = append(busy, ev.Interval())
	}
	for _, rule := range rules {
		busy = append(busy, ExpandRule(rule, window)...)
	}

	timeline := Merge(Clip(busy, window))
	if excludeEventID == "" {
		c.Cache.Put(ctx, userID, window, timeline)
	}
	return timeline, nil
}

// CombinedFree returns the free intervals within the window during which
// none of the given users is busy. The result is merged, sorted, contained
// in the window, and possibly empty, never ambiguous with an error.
func (c *AvailabilityCalculator) CombinedFree(ctx context.Context, userIDs []string, window models.Interval, excludeEventID string) ([]models.Interval, error) {
	var busy []models.Interval
	seen := make(map[string]struct{}, len(userIDs))
	for _, userID := range userIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if _, dup := seen[userID]; dup {
			continue
		}
		seen[userID] = struct{}{}

		timeline, err := c.BusyTimeline(ctx, userID, window, excludeEventID)
		if err != nil {
			return nil, err
		}
		busy = append(busy, timeline...)
	}
	return Complement(Merge(busy), window), nil
}
