package models

import (
	"fmt"
	"time"
)

// Recurrence kinds for a blocked-time rule.
const (
	RecurrenceNone   = "none"
	RecurrenceDaily  = "daily"
	RecurrenceWeekly = "weekly"
)

// BlockedTime is a user-declared unavailability rule. Start/End form the
// template occurrence anchored at its original date; daily and weekly rules
// recur indefinitely from that anchor and are expanded lazily within a
// bounded query window.
type BlockedTime struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	Start       time.Time `bson:"start" json:"start"`
	End         time.Time `bson:"end" json:"end"`
	Recurrence  string    `bson:"recurrence" json:"recurrence"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}

// Validate enforces the construction-time invariants so that expansion
// itself never has to fail.
func (b BlockedTime) Validate() error {
	if b.UserID == "" {
		return fmt.Errorf("blocked time requires a user id")
	}
	if !b.Start.Before(b.End) {
		return fmt.Errorf("blocked time start %s must be before end %s", b.Start.Format(time.RFC3339), b.End.Format(time.RFC3339))
	}
	switch b.Recurrence {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly:
		return nil
	default:
		return fmt.Errorf("unknown recurrence kind %q", b.Recurrence)
	}
}

// Template returns the rule's anchor occurrence in UTC.
func (b BlockedTime) Template() Interval {
	return Interval{Start: b.Start.UTC(), End: b.End.UTC()}
}
