package scheduling

import (
	"context"
	"testing"

	"calendra/models"
)

// A proposed 10:00-11:00 against an existing 10:30-11:30 booking reports the
// existing interval whole, not clipped to the half hour they share.
func TestConflictCheck_ReportsWholeInterval(t *testing.T) {
	events := newFakeEventRepo(event("e1", "u1", day(2, 10, 30), day(2, 11, 30)))
	detector := &ConflictDetector{Availability: &AvailabilityCalculator{Events: events, Blocked: newFakeBlockedRepo()}}

	candidate := models.Interval{Start: day(2, 10, 0), End: day(2, 11, 0)}
	got, err := detector.Check(context.Background(), "u1", candidate, "")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	want := []models.Interval{{Start: day(2, 10, 30), End: day(2, 11, 30)}}
	if !equalIntervals(got, want) {
		t.Fatalf("Check = %v, want %v", got, want)
	}
}

func TestConflictCheck_ClearWhenTouching(t *testing.T) {
	events := newFakeEventRepo(
		event("e1", "u1", day(2, 9, 0), day(2, 10, 0)),
		event("e2", "u1", day(2, 11, 0), day(2, 12, 0)),
	)
	detector := &ConflictDetector{Availability: &AvailabilityCalculator{Events: events, Blocked: newFakeBlockedRepo()}}

	candidate := models.Interval{Start: day(2, 10, 0), End: day(2, 11, 0)}
	got, err := detector.Check(context.Background(), "u1", candidate, "")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Check = %v, want no conflicts for back-to-back bookings", got)
	}
}

func TestConflictCheck_ExcludesOwnEvent(t *testing.T) {
	events := newFakeEventRepo(event("e1", "u1", day(2, 10, 0), day(2, 11, 0)))
	detector := &ConflictDetector{Availability: &AvailabilityCalculator{Events: events, Blocked: newFakeBlockedRepo()}}

	// Extending e1 by half an hour must not conflict with e1 itself.
	candidate := models.Interval{Start: day(2, 10, 0), End: day(2, 11, 30)}
	got, err := detector.Check(context.Background(), "u1", candidate, "e1")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Check = %v, want empty when excluding the edited event", got)
	}
}

func TestConflictCheck_RecurringRuleConflicts(t *testing.T) {
	blocked := newFakeBlockedRepo(rule("u1", models.RecurrenceDaily, day(2, 12, 0), day(2, 13, 0)))
	detector := &ConflictDetector{Availability: &AvailabilityCalculator{Events: newFakeEventRepo(), Blocked: blocked}}

	// A week after the anchor the daily rule still occupies lunch.
	candidate := models.Interval{Start: day(9, 12, 30), End: day(9, 13, 30)}
	got, err := detector.Check(context.Background(), "u1", candidate, "")
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	want := []models.Interval{{Start: day(9, 12, 0), End: day(9, 13, 0)}}
	if !equalIntervals(got, want) {
		t.Fatalf("Check = %v, want %v", got, want)
	}
}
