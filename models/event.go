package models

import "time"

// Event is a committed calendar entry owned by a single user.
// All times are stored in UTC; presentation-layer localization is the
// caller's concern.
type Event struct {
	ID          string `bson:"id" json:"id"`
	UserID      string `bson:"userId" json:"userId"`
	Title       string `bson:"title" json:"title"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Location    string `bson:"location,omitempty" json:"location,omitempty"`

	Start  time.Time `bson:"start" json:"start"`
	End    time.Time `bson:"end" json:"end"`
	AllDay bool      `bson:"allDay" json:"allDay"`

	// Attendees are opaque user IDs. Required and optional sets are kept
	// disjoint: required attendees are a hard scheduling constraint,
	// optional attendees only influence suggestion scoring.
	RequiredAttendees []string `bson:"requiredAttendees,omitempty" json:"requiredAttendees,omitempty"`
	OptionalAttendees []string `bson:"optionalAttendees,omitempty" json:"optionalAttendees,omitempty"`

	// NotificationOffsetHours is how long before the event start a reminder
	// should fire. Fractional values are allowed (0.5 = 30 minutes). Nil
	// means no reminder.
	NotificationOffsetHours *float64 `bson:"notificationOffsetHours,omitempty" json:"notificationOffsetHours,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Interval returns the event's busy interval. All-day events are normalized
// to the full UTC day containing the start.
func (e Event) Interval() Interval {
	if e.AllDay {
		day := time.Date(e.Start.Year(), e.Start.Month(), e.Start.Day(), 0, 0, 0, 0, time.UTC)
		return Interval{Start: day, End: day.AddDate(0, 0, 1)}
	}
	return Interval{Start: e.Start.UTC(), End: e.End.UTC()}
}

// ReminderAt returns the instant the event's reminder should fire, if any.
func (e Event) ReminderAt() (time.Time, bool) {
	if e.NotificationOffsetHours == nil {
		return time.Time{}, false
	}
	offset := time.Duration(*e.NotificationOffsetHours * float64(time.Hour))
	return e.Interval().Start.Add(-offset), true
}
