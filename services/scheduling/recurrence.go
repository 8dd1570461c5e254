package scheduling

import (
	"github.com/teambition/rrule-go"

	"calendra/models"
)

// ExpandRule materializes the occurrences of a blocked-time rule that
// intersect the half-open query window. It is a pure function of its inputs
// and never fails: rules with a non-positive duration or an unknown
// recurrence kind are rejected at construction (models.BlockedTime.Validate),
// not here.
//
// Expansion happens in UTC. Daily and weekly rules step whole UTC calendar
// days from the rule's anchor date, so occurrences do not drift across
// daylight-saving boundaries.
func ExpandRule(rule models.BlockedTime, window models.Interval) []models.Interval {
	tmpl := rule.Template()
	dur := tmpl.Duration()
	if dur <= 0 {
		return nil
	}

	if rule.Recurrence == models.RecurrenceNone {
		if tmpl.Overlaps(window) {
			return []models.Interval{tmpl}
		}
		return nil
	}

	freq := rrule.DAILY
	if rule.Recurrence == models.RecurrenceWeekly {
		freq = rrule.WEEKLY
	}
	r, err := rrule.NewRRule(rrule.ROption{Freq: freq, Dtstart: tmpl.Start})
	if err != nil {
		return nil
	}

	// An occurrence [s, s+dur) intersects [window.Start, window.End) iff
	// s > window.Start-dur and s < window.End. Between with inc=false is
	// exactly that open range, and it naturally yields nothing before the
	// rule's anchor.
	starts := r.Between(window.Start.Add(-dur), window.End, false)
	if len(starts) == 0 {
		return nil
	}
	occurrences := make([]models.Interval, 0, len(starts))
	for _, s := range starts {
		occurrences = append(occurrences, models.Interval{Start: s, End: s.Add(dur)})
	}
	return occurrences
}
