package scheduling

import (
	"context"
	"time"

	"calendra/models"
)

// ConflictDetector validates candidate intervals against busy timelines.
type ConflictDetector struct {
	Availability *AvailabilityCalculator
}

// Check returns the busy intervals overlapping the candidate for the user;
// an empty result means the candidate is clear. The intervals are reported
// whole, not clipped to the candidate, so error messages can show the full
// extent of what the candidate collides with. excludeEventID keeps an event
// being edited from conflicting with its own prior occurrence.
func (d *ConflictDetector) Check(ctx context.Context, userID string, candidate models.Interval, excludeEventID string) ([]models.Interval, error) {
	// Query the UTC days touched by the candidate; busy time outside them
	// cannot overlap it.
	window := dayBounds(candidate)
	timeline, err := d.Availability.BusyTimeline(ctx, userID, window, excludeEventID)
	if err != nil {
		return nil, err
	}

	var overlapping []models.Interval
	for _, iv := range timeline {
		if iv.Overlaps(candidate) {
			overlapping = append(overlapping, iv)
		}
	}
	return overlapping, nil
}

// dayBounds widens an interval to the full UTC days it touches.
func dayBounds(iv models.Interval) models.Interval {
	start := time.Date(iv.Start.Year(), iv.Start.Month(), iv.Start.Day(), 0, 0, 0, 0, time.UTC)
	last := iv.End.Add(-time.Nanosecond)
	end := time.Date(last.Year(), last.Month(), last.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	return models.Interval{Start: start, End: end}
}
