package scheduling

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"calendra/models"
)

func newTestRanker(events *fakeEventRepo, blocked *fakeBlockedRepo) *SuggestionRanker {
	return &SuggestionRanker{
		Availability: &AvailabilityCalculator{Events: events, Blocked: blocked},
		Scoring:      DefaultScoringConfig(),
	}
}

func TestSuggest_InvalidInputBeforeStoreAccess(t *testing.T) {
	events := newFakeEventRepo()
	blocked := newFakeBlockedRepo()
	ranker := newTestRanker(events, blocked)
	window := models.Interval{Start: day(2, 9, 0), End: day(2, 17, 0)}

	cases := []struct {
		name string
		req  SuggestionRequest
	}{
		{"missing owner", SuggestionRequest{Duration: time.Hour, Window: window, Limit: 5}},
		{"zero duration", SuggestionRequest{OwnerID: "u1", Window: window, Limit: 5}},
		{"negative duration", SuggestionRequest{OwnerID: "u1", Duration: -time.Hour, Window: window, Limit: 5}},
		{"zero limit", SuggestionRequest{OwnerID: "u1", Duration: time.Hour, Window: window}},
		{"inverted window", SuggestionRequest{OwnerID: "u1", Duration: time.Hour, Window: models.Interval{Start: window.End, End: window.Start}, Limit: 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ranker.Suggest(context.Background(), tc.req)
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("err = %v, want *InvalidInputError", err)
			}
		})
	}
	if events.listCalls != 0 || blocked.listCalls != 0 {
		t.Fatalf("stores queried %d/%d times, want 0 for invalid input", events.listCalls, blocked.listCalls)
	}
}

func TestSuggest_EmptyResultIsNotAnError(t *testing.T) {
	// Owner is booked solid for the whole window.
	events := newFakeEventRepo(event("e1", "u1", day(2, 9, 0), day(2, 17, 0)))
	ranker := newTestRanker(events, newFakeBlockedRepo())

	got, err := ranker.Suggest(context.Background(), SuggestionRequest{
		OwnerID:  "u1",
		Duration: 30 * time.Minute,
		Window:   models.Interval{Start: day(2, 9, 0), End: day(2, 17, 0)},
		Limit:    5,
	})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Suggest = %v, want empty", got)
	}
}

func TestSuggest_SlotsMeetDurationAndRanking(t *testing.T) {
	events := newFakeEventRepo(
		event("e1", "u1", day(2, 10, 0), day(2, 11, 0)),
		event("e2", "u1", day(2, 13, 0), day(2, 14, 0)),
	)
	ranker := newTestRanker(events, newFakeBlockedRepo())

	got, err := ranker.Suggest(context.Background(), SuggestionRequest{
		OwnerID:  "u1",
		Duration: time.Hour,
		Window:   models.Interval{Start: day(2, 9, 0), End: day(2, 17, 0)},
		Limit:    10,
	})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d suggestions %v, want 3", len(got), got)
	}
	for i, s := range got {
		if s.Slot.Duration() != time.Hour {
			t.Fatalf("suggestion %d has duration %v, want 1h", i, s.Slot.Duration())
		}
		if i > 0 && got[i-1].Score < s.Score {
			t.Fatalf("suggestions not sorted by score: %v before %v", got[i-1], s)
		}
	}
	// All slots score equally except for earliness, so the earliest wins.
	if !got[0].Slot.Start.Equal(day(2, 9, 0)) {
		t.Fatalf("top suggestion starts at %v, want 09:00", got[0].Slot.Start)
	}
}

func TestSuggest_LimitTruncates(t *testing.T) {
	events := newFakeEventRepo(
		event("e1", "u1", day(2, 10, 0), day(2, 10, 30)),
		event("e2", "u1", day(2, 12, 0), day(2, 12, 30)),
		event("e3", "u1", day(2, 14, 0), day(2, 14, 30)),
	)
	ranker := newTestRanker(events, newFakeBlockedRepo())

	got, err := ranker.Suggest(context.Background(), SuggestionRequest{
		OwnerID:  "u1",
		Duration: 30 * time.Minute,
		Window:   models.Interval{Start: day(2, 9, 0), End: day(2, 17, 0)},
		Limit:    2,
	})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(got))
	}
}

// A slot where an optional attendee is busy must rank below a slightly later
// slot where everyone is free: the per-attendee penalty (0.15) outweighs the
// earliness gap between the two candidates (0.125 here).
func TestSuggest_OptionalAttendeePenalty(t *testing.T) {
	events := newFakeEventRepo(
		event("e1", "u1", day(2, 9, 0), day(2, 14, 0)),
		event("e2", "u1", day(2, 14, 30), day(2, 15, 0)),
		event("e3", "opt1", day(2, 14, 0), day(2, 15, 0)),
	)
	ranker := newTestRanker(events, newFakeBlockedRepo())

	got, err := ranker.Suggest(context.Background(), SuggestionRequest{
		OwnerID:           "u1",
		OptionalAttendees: []string{"opt1"},
		Duration:          30 * time.Minute,
		Window:            models.Interval{Start: day(2, 9, 0), End: day(2, 17, 0)},
		Limit:             5,
	})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	// Candidates: 14:00 (opt1 busy) and 15:00 (everyone free).
	if len(got) != 2 {
		t.Fatalf("got %d suggestions %v, want 2", len(got), got)
	}
	top := got[0]
	if !top.Slot.Start.Equal(day(2, 15, 0)) {
		t.Fatalf("top suggestion starts at %v, want 15:00 over the penalized 14:00 slot", top.Slot.Start)
	}
	if len(top.BusyOptionalAttendees) != 0 {
		t.Fatalf("top suggestion has busy optional attendees %v, want none", top.BusyOptionalAttendees)
	}
	if !contains(got[1].BusyOptionalAttendees, "opt1") {
		t.Fatalf("penalized slot should list opt1 busy, got %v", got[1].BusyOptionalAttendees)
	}
}

func TestSuggest_RequiredAttendeeConstrainsHard(t *testing.T) {
	events := newFakeEventRepo(event("e1", "req1", day(2, 9, 0), day(2, 12, 0)))
	ranker := newTestRanker(events, newFakeBlockedRepo())

	got, err := ranker.Suggest(context.Background(), SuggestionRequest{
		OwnerID:           "u1",
		RequiredAttendees: []string{"req1"},
		Duration:          time.Hour,
		Window:            models.Interval{Start: day(2, 9, 0), End: day(2, 13, 0)},
		Limit:             5,
	})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d suggestions %v, want 1", len(got), got)
	}
	if !got[0].Slot.Start.Equal(day(2, 12, 0)) {
		t.Fatalf("slot starts at %v, want 12:00 after req1 frees up", got[0].Slot.Start)
	}
}

func TestSuggest_ExplanationsDeterministic(t *testing.T) {
	events := newFakeEventRepo(
		event("e1", "u1", day(2, 9, 30), day(2, 10, 0)),
		event("e2", "opt1", day(2, 9, 0), day(2, 10, 0)),
	)
	ranker := newTestRanker(events, newFakeBlockedRepo())
	req := SuggestionRequest{
		OwnerID:           "u1",
		OptionalAttendees: []string{"opt1", "opt2"},
		Duration:          30 * time.Minute,
		Window:            models.Interval{Start: day(2, 9, 0), End: day(2, 11, 0)},
		Limit:             5,
	}

	first, err := ranker.Suggest(context.Background(), req)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	second, err := ranker.Suggest(context.Background(), req)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("result sizes differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Explanation != second[i].Explanation {
			t.Fatalf("explanation %d differs: %q vs %q", i, first[i].Explanation, second[i].Explanation)
		}
		if first[i].Explanation == "" {
			t.Fatalf("suggestion %d has empty explanation", i)
		}
	}

	// The 09:00 slot collides with opt1 only; the explanation names the user.
	for _, s := range first {
		if s.Slot.Start.Equal(day(2, 9, 0)) {
			if !strings.Contains(s.Explanation, "1 optional attendee is busy: opt1") {
				t.Fatalf("explanation %q does not name the busy optional attendee", s.Explanation)
			}
		}
		if s.Slot.Start.Equal(day(2, 10, 0)) {
			if !strings.Contains(s.Explanation, "all optional attendees are free") {
				t.Fatalf("explanation %q should report all optional attendees free", s.Explanation)
			}
		}
	}
}

func TestSuggest_PreferredHoursBonusBreaksEarlinessSlowly(t *testing.T) {
	// Two free runs: 07:00 (outside preferred hours) and 09:00 (inside).
	// With an 8h window the earliness gap between them is 0.25, larger than
	// the 0.05 bonus, so the earlier slot still wins; the bonus only shows in
	// the explanations.
	events := newFakeEventRepo(event("e1", "u1", day(2, 8, 0), day(2, 9, 0)))
	ranker := newTestRanker(events, newFakeBlockedRepo())

	got, err := ranker.Suggest(context.Background(), SuggestionRequest{
		OwnerID:  "u1",
		Duration: time.Hour,
		Window:   models.Interval{Start: day(2, 7, 0), End: day(2, 15, 0)},
		Limit:    5,
	})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d suggestions %v, want 2", len(got), got)
	}
	if !got[0].Slot.Start.Equal(day(2, 7, 0)) {
		t.Fatalf("top suggestion starts at %v, want 07:00", got[0].Slot.Start)
	}
	if !strings.Contains(got[0].Explanation, "outside preferred hours") {
		t.Fatalf("explanation %q should flag the 07:00 slot as outside preferred hours", got[0].Explanation)
	}
	if !strings.Contains(got[1].Explanation, "within preferred hours") {
		t.Fatalf("explanation %q should flag the 09:00 slot as within preferred hours", got[1].Explanation)
	}
}
