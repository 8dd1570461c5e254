package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"calendra/models"
	"calendra/utils"
)

// TimelineCache is a short-TTL cache of computed busy timelines. Entries are
// keyed by user, window, and a per-user generation counter; every write for
// a user bumps the counter, which orphans all of that user's cached entries
// without any key scanning.
type TimelineCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewTimelineCache builds a cache over the given client. A nil client
// disables caching entirely.
func NewTimelineCache(client *redis.Client, ttl time.Duration) *TimelineCache {
	return &TimelineCache{Client: client, TTL: ttl}
}

func (c *TimelineCache) enabled() bool {
	return c != nil && c.Client != nil && c.TTL > 0
}

// generation reads the user's invalidation counter. A missing counter is
// generation zero; a failed read means the current generation is unknown, so
// no cache key can be trusted.
func (c *TimelineCache) generation(ctx context.Context, userID string) (int64, bool) {
	gen, err := c.Client.Get(ctx, "busygen:"+userID).Int64()
	if err == redis.Nil {
		return 0, true
	}
	if err != nil {
		return 0, false
	}
	return gen, true
}

func (c *TimelineCache) key(userID string, gen int64, window models.Interval) string {
	return fmt.Sprintf("busy:%s:%d:%d:%d", userID, gen, window.Start.Unix(), window.End.Unix())
}

// Get returns the cached timeline for the user and window, if present. An
// unreadable generation counter is a miss: serving an entry keyed by a
// guessed generation could resurrect a timeline that was already
// invalidated.
func (c *TimelineCache) Get(ctx context.Context, userID string, window models.Interval) ([]models.Interval, bool) {
	if !c.enabled() {
		return nil, false
	}
	gen, ok := c.generation(ctx, userID)
	if !ok {
		return nil, false
	}
	raw, err := c.Client.Get(ctx, c.key(userID, gen, window)).Bytes()
	if err != nil {
		return nil, false
	}
	var timeline []models.Interval
	if err := json.Unmarshal(raw, &timeline); err != nil {
		return nil, false
	}
	return timeline, true
}

// Put stores a computed timeline. Failures are logged and swallowed; the
// cache is an optimization, never a source of truth.
func (c *TimelineCache) Put(ctx context.Context, userID string, window models.Interval, timeline []models.Interval) {
	if !c.enabled() {
		return
	}
	gen, ok := c.generation(ctx, userID)
	if !ok {
		return
	}
	raw, err := json.Marshal(timeline)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, c.key(userID, gen, window), raw, c.TTL).Err(); err != nil {
		utils.GetLogger().Debug("timeline cache put failed", zap.String("userID", userID), zap.Error(err))
	}
}

// Invalidate drops every cached timeline for the user by bumping their
// generation counter.
func (c *TimelineCache) Invalidate(ctx context.Context, userID string) {
	if !c.enabled() {
		return
	}
	if err := c.Client.Incr(ctx, "busygen:"+userID).Err(); err != nil {
		utils.GetLogger().Warn("timeline cache invalidation failed", zap.String("userID", userID), zap.Error(err))
	}
}
