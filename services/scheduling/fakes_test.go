package scheduling

import (
	"context"
	"errors"
	"time"

	blockedRepo "calendra/database/repository/blocked"
	eventRepo "calendra/database/repository/event"
	"calendra/models"
)

type fakeEventRepo struct {
	events    map[string]*models.Event
	listCalls int
	failList  error
}

func newFakeEventRepo(events ...models.Event) *fakeEventRepo {
	r := &fakeEventRepo{events: make(map[string]*models.Event)}
	for i := range events {
		ev := events[i]
		r.events[ev.ID] = &ev
	}
	return r
}

func (r *fakeEventRepo) Create(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = "ev-" + time.Now().Format("150405.000000000")
	}
	cp := *event
	r.events[event.ID] = &cp
	return nil
}

func (r *fakeEventRepo) Update(ctx context.Context, event *models.Event) error {
	existing, ok := r.events[event.ID]
	if !ok || existing.UserID != event.UserID {
		return eventRepo.ErrNotFound
	}
	cp := *event
	r.events[event.ID] = &cp
	return nil
}

func (r *fakeEventRepo) Delete(ctx context.Context, userID, eventID string) error {
	existing, ok := r.events[eventID]
	if !ok || existing.UserID != userID {
		return eventRepo.ErrNotFound
	}
	delete(r.events, eventID)
	return nil
}

func (r *fakeEventRepo) GetByID(ctx context.Context, eventID string) (*models.Event, error) {
	existing, ok := r.events[eventID]
	if !ok {
		return nil, eventRepo.ErrNotFound
	}
	cp := *existing
	return &cp, nil
}

func (r *fakeEventRepo) ListByUserAndWindow(ctx context.Context, userID string, window models.Interval) ([]models.Event, error) {
	r.listCalls++
	if r.failList != nil {
		return nil, r.failList
	}
	var out []models.Event
	for _, ev := range r.events {
		if ev.UserID != userID && !contains(ev.RequiredAttendees, userID) {
			continue
		}
		if ev.Interval().Overlaps(window) {
			out = append(out, *ev)
		}
	}
	return out, nil
}

type fakeBlockedRepo struct {
	rules     map[string]*models.BlockedTime
	listCalls int
	failList  error
}

func newFakeBlockedRepo(rules ...models.BlockedTime) *fakeBlockedRepo {
	r := &fakeBlockedRepo{rules: make(map[string]*models.BlockedTime)}
	for i := range rules {
		rule := rules[i]
		r.rules[rule.ID] = &rule
	}
	return r
}

func (r *fakeBlockedRepo) Create(ctx context.Context, rule *models.BlockedTime) error {
	if rule.ID == "" {
		rule.ID = "bt-" + time.Now().Format("150405.000000000")
	}
	cp := *rule
	r.rules[rule.ID] = &cp
	return nil
}

func (r *fakeBlockedRepo) Update(ctx context.Context, rule *models.BlockedTime) error {
	existing, ok := r.rules[rule.ID]
	if !ok || existing.UserID != rule.UserID {
		return blockedRepo.ErrNotFound
	}
	cp := *rule
	r.rules[rule.ID] = &cp
	return nil
}

func (r *fakeBlockedRepo) Delete(ctx context.Context, userID, ruleID string) error {
	existing, ok := r.rules[ruleID]
	if !ok || existing.UserID != userID {
		return blockedRepo.ErrNotFound
	}
	delete(r.rules, ruleID)
	return nil
}

func (r *fakeBlockedRepo) GetByID(ctx context.Context, ruleID string) (*models.BlockedTime, error) {
	existing, ok := r.rules[ruleID]
	if !ok {
		return nil, blockedRepo.ErrNotFound
	}
	cp := *existing
	return &cp, nil
}

func (r *fakeBlockedRepo) ListActiveInWindow(ctx context.Context, userID string, window models.Interval) ([]models.BlockedTime, error) {
	r.listCalls++
	if r.failList != nil {
		return nil, r.failList
	}
	var out []models.BlockedTime
	for _, rule := range r.rules {
		if rule.UserID != userID {
			continue
		}
		if rule.Recurrence == models.RecurrenceNone && !rule.Template().Overlaps(window) {
			continue
		}
		if rule.Recurrence != models.RecurrenceNone && !rule.Start.Before(window.End) {
			continue
		}
		out = append(out, *rule)
	}
	return out, nil
}

type fakeReminderScheduler struct {
	scheduled map[string]time.Time
	cancelled []string
}

func newFakeReminderScheduler() *fakeReminderScheduler {
	return &fakeReminderScheduler{scheduled: make(map[string]time.Time)}
}

func (s *fakeReminderScheduler) Schedule(ctx context.Context, event *models.Event, fireAt time.Time) error {
	s.scheduled[event.ID] = fireAt
	return nil
}

func (s *fakeReminderScheduler) Cancel(ctx context.Context, eventID string) error {
	s.cancelled = append(s.cancelled, eventID)
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

var errStoreDown = errors.New("store down")

func newTestService(events *fakeEventRepo, blocked *fakeBlockedRepo) (*DefaultSchedulingService, *fakeReminderScheduler) {
	availability := &AvailabilityCalculator{Events: events, Blocked: blocked}
	reminders := newFakeReminderScheduler()
	svc := &DefaultSchedulingService{
		Events:       events,
		Blocked:      blocked,
		Availability: availability,
		Conflicts:    &ConflictDetector{Availability: availability},
		Ranker:       &SuggestionRanker{Availability: availability, Scoring: DefaultScoringConfig()},
		Reminders:    reminders,
	}
	return svc, reminders
}
