package queries

import (
	"context"
	"log/slog"
	"time"

	"tutorhub/internal/infra"
	"tutorhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrTutorNotFound = errs.New("tutor profile not found")

// TutorRatingStats is the derived aggregate as read from the tutor profile.
type TutorRatingStats struct {
	TutorProfileID uuid.UUID `json:"tutor_profile_id"`
	Rating         float64   `json:"rating"`
	TotalReviews   int32     `json:"total_reviews"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type TutorStatsReadStore interface {
	GetRatingStats(ctx context.Context, tutorProfileID uuid.UUID) (*TutorRatingStats, error)
}

// RatingStatsCache is the read-side cache for tutor aggregates. Writers
// invalidate it after commit; readers populate it on miss.
type RatingStatsCache interface {
	Get(ctx context.Context, tutorProfileID uuid.UUID) (*TutorRatingStats, bool, error)
	Set(ctx context.Context, tutorProfileID uuid.UUID, stats *TutorRatingStats) error
	Invalidate(ctx context.Context, tutorProfileID uuid.UUID) error
}

type TutorQueries interface {
	GetRatingStats(ctx context.Context, tutorProfileID uuid.UUID) (*TutorRatingStats, error)
}

type tutorQueriesImpl struct {
	readStore TutorStatsReadStore
	cache     RatingStatsCache
}

func NewTutorQueries(readStore TutorStatsReadStore, cache RatingStatsCache) TutorQueries {
	return &tutorQueriesImpl{readStore: readStore, cache: cache}
}

func (q *tutorQueriesImpl) GetRatingStats(ctx context.Context, tutorProfileID uuid.UUID) (*TutorRatingStats, error) {
	if stats, ok, err := q.cache.Get(ctx, tutorProfileID); err == nil && ok {
		return stats, nil
	} else if err != nil {
		slog.Warn("tutor stats cache read failed", "error", err.Error())
	}

	stats, err := q.readStore.GetRatingStats(ctx, tutorProfileID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrTutorNotFound)
		}
		return nil, err
	}

	if err := q.cache.Set(ctx, tutorProfileID, stats); err != nil {
		slog.Warn("tutor stats cache write failed", "error", err.Error())
	}
	return stats, nil
}
