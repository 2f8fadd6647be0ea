package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tutorhub/internal/pkg/errs"
	"tutorhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const ratingStatsKeyPrefix = "tutor:rating-stats:"

// CacheObserver receives one event per cache operation: hit, miss, set, del.
type CacheObserver func(event string)

// RatingStatsCache is a cache-aside store for tutor rating aggregates.
// Entries carry a TTL as a backstop; writers invalidate after commit.
type RatingStatsCache struct {
	client  *redis.Client
	ttl     time.Duration
	observe CacheObserver
}

func NewRatingStatsCache(client *redis.Client, ttl time.Duration, observe CacheObserver) *RatingStatsCache {
	if observe == nil {
		observe = func(string) {}
	}
	return &RatingStatsCache{client: client, ttl: ttl, observe: observe}
}

func ratingStatsKey(tutorProfileID uuid.UUID) string {
	return ratingStatsKeyPrefix + tutorProfileID.String()
}

func (c *RatingStatsCache) Get(ctx context.Context, tutorProfileID uuid.UUID) (*queries.TutorRatingStats, bool, error) {
	data, err := c.client.Get(ctx, ratingStatsKey(tutorProfileID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			c.observe("miss")
			return nil, false, nil
		}
		return nil, false, errs.Wrap(err, "failed to read rating stats from cache")
	}

	var stats queries.TutorRatingStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, false, errs.Wrap(err, "failed to decode cached rating stats")
	}
	c.observe("hit")
	return &stats, true, nil
}

func (c *RatingStatsCache) Set(ctx context.Context, tutorProfileID uuid.UUID, stats *queries.TutorRatingStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return errs.Wrap(err, "failed to encode rating stats for cache")
	}
	if err := c.client.Set(ctx, ratingStatsKey(tutorProfileID), data, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to write rating stats to cache")
	}
	c.observe("set")
	return nil
}

func (c *RatingStatsCache) Invalidate(ctx context.Context, tutorProfileID uuid.UUID) error {
	if err := c.client.Del(ctx, ratingStatsKey(tutorProfileID)).Err(); err != nil {
		return errs.Wrap(err, "failed to invalidate rating stats cache")
	}
	c.observe("del")
	return nil
}
