package scheduling

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"calendra/models"
)

// ScoringConfig holds the tunable policy constants used to rank candidate
// slots. The defaults are chosen so that a single busy optional attendee
// always outweighs the preferred-hours bonus.
type ScoringConfig struct {
	// PreferredStartHour/PreferredEndHour bound the preferred-hours band in
	// whole UTC hours of day, e.g. 9 and 17 for 09:00-17:00.
	PreferredStartHour int
	PreferredEndHour   int
	// PreferredHoursBonus is added when a slot lies entirely inside the band.
	PreferredHoursBonus float64
	// OptionalAttendeePenalty is subtracted per optional attendee who is
	// busy during the slot.
	OptionalAttendeePenalty float64
}

// DefaultScoringConfig returns the stock policy constants.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		PreferredStartHour:      9,
		PreferredEndHour:        17,
		PreferredHoursBonus:     0.05,
		OptionalAttendeePenalty: 0.15,
	}
}

// SuggestionRequest describes one suggestion query. Required and optional
// attendees are disjoint sets: required attendees constrain the free region,
// optional attendees only penalize scores.
type SuggestionRequest struct {
	OwnerID           string
	RequiredAttendees []string
	OptionalAttendees []string
	Duration          time.Duration
	Window            models.Interval
	Limit             int
}

// SuggestionRanker generates and scores candidate slots inside the combined
// free region of the owner and required attendees.
type SuggestionRanker struct {
	Availability *AvailabilityCalculator
	Scoring      ScoringConfig
}

// Suggest returns up to Limit scored suggestions, best first. An empty
// result is a valid outcome, not an error.
func (r *SuggestionRanker) Suggest(ctx context.Context, req SuggestionRequest) ([]models.Suggestion, error) {
	if req.OwnerID == "" {
		return nil, invalidInputf("owner id is required")
	}
	if req.Duration <= 0 {
		return nil, invalidInputf("desired duration must be positive, got %s", req.Duration)
	}
	if req.Limit <= 0 {
		return nil, invalidInputf("limit must be positive, got %d", req.Limit)
	}
	if !req.Window.Start.Before(req.Window.End) {
		return nil, invalidInputf("query window %s is empty or inverted", req.Window)
	}

	participants := append([]string{req.OwnerID}, req.RequiredAttendees...)
	free, err := r.Availability.CombinedFree(ctx, participants, req.Window, "")
	if err != nil {
		return nil, err
	}

	// Earliest-first packing: one candidate at the start of each free
	// interval long enough for the request. No fragmentation search beyond
	// that, keeping slot generation linear in free intervals.
	var slots []models.Interval
	for _, iv := range free {
		if iv.Duration() >= req.Duration {
			slots = append(slots, models.Interval{Start: iv.Start, End: iv.Start.Add(req.Duration)})
		}
	}
	if len(slots) == 0 {
		return nil, nil
	}

	// Optional attendees enter through the soft path only: their busy
	// timelines are fetched once over the whole window and checked per slot.
	optionalBusy := make(map[string][]models.Interval, len(req.OptionalAttendees))
	for _, userID := range req.OptionalAttendees {
		if _, dup := optionalBusy[userID]; dup {
			continue
		}
		timeline, err := r.Availability.BusyTimeline(ctx, userID, req.Window, "")
		if err != nil {
			return nil, err
		}
		optionalBusy[userID] = timeline
	}

	suggestions := make([]models.Suggestion, 0, len(slots))
	for _, slot := range slots {
		suggestions = append(suggestions, r.score(slot, req, optionalBusy))
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		if suggestions[i].Score != suggestions[j].Score {
			return suggestions[i].Score > suggestions[j].Score
		}
		return suggestions[i].Slot.Start.Before(suggestions[j].Slot.Start)
	})
	if len(suggestions) > req.Limit {
		suggestions = suggestions[:req.Limit]
	}
	return suggestions, nil
}

func (r *SuggestionRanker) score(slot models.Interval, req SuggestionRequest, optionalBusy map[string][]models.Interval) models.Suggestion {
	// Base score decreases linearly with the slot's offset from the window
	// start: 1 at the opening instant, approaching 0 at the close.
	offset := slot.Start.Sub(req.Window.Start)
	base := 1 - float64(offset)/float64(req.Window.Duration())
	score := base

	var busyOptional []string
	for userID, timeline := range optionalBusy {
		if len(Intersect([]models.Interval{slot}, timeline)) > 0 {
			busyOptional = append(busyOptional, userID)
		}
	}
	sort.Strings(busyOptional)
	score -= r.Scoring.OptionalAttendeePenalty * float64(len(busyOptional))

	preferred := r.withinPreferredHours(slot)
	if preferred {
		score += r.Scoring.PreferredHoursBonus
	}

	return models.Suggestion{
		Slot:                  slot,
		Score:                 score,
		Explanation:           r.explain(slot, req, busyOptional, preferred),
		BusyOptionalAttendees: busyOptional,
	}
}

// withinPreferredHours reports whether the slot lies entirely inside the
// preferred band of its own UTC day.
func (r *SuggestionRanker) withinPreferredHours(slot models.Interval) bool {
	day := time.Date(slot.Start.Year(), slot.Start.Month(), slot.Start.Day(), 0, 0, 0, 0, time.UTC)
	bandStart := day.Add(time.Duration(r.Scoring.PreferredStartHour) * time.Hour)
	bandEnd := day.Add(time.Duration(r.Scoring.PreferredEndHour) * time.Hour)
	return !slot.Start.Before(bandStart) && !slot.End.After(bandEnd)
}

// explain builds the explanation deterministically from the scoring factors:
// same inputs, same string.
func (r *SuggestionRanker) explain(slot models.Interval, req SuggestionRequest, busyOptional []string, preferred bool) string {
	parts := []string{
		fmt.Sprintf("earliest free slot for all required attendees at %s", slot.Start.UTC().Format("15:04")),
	}
	if preferred {
		parts = append(parts, fmt.Sprintf("within preferred hours (%02d:00-%02d:00)", r.Scoring.PreferredStartHour, r.Scoring.PreferredEndHour))
	} else {
		parts = append(parts, fmt.Sprintf("outside preferred hours (%02d:00-%02d:00)", r.Scoring.PreferredStartHour, r.Scoring.PreferredEndHour))
	}
	switch n := len(busyOptional); {
	case n == 1:
		parts = append(parts, fmt.Sprintf("1 optional attendee is busy: %s", busyOptional[0]))
	case n > 1:
		parts = append(parts, fmt.Sprintf("%d optional attendees are busy: %s", n, strings.Join(busyOptional, ", ")))
	case len(req.OptionalAttendees) > 0:
		parts = append(parts, "all optional attendees are free")
	}
	return strings.Join(parts, "; ")
}
