package readstore

import (
	"context"

	"tutorhub/internal/infra"
	"tutorhub/internal/usecase/queries"

	"github.com/google/uuid"
)

const getTutorRatingStatsSQL = `
SELECT id, rating, total_reviews, updated_at
FROM tutor_profiles
WHERE id = $1`

type TutorStatsReadStore struct {
	db infra.DBTX
}

func NewTutorStatsReadStore(db infra.DBTX) *TutorStatsReadStore {
	return &TutorStatsReadStore{db: db}
}

func (s *TutorStatsReadStore) GetRatingStats(ctx context.Context, tutorProfileID uuid.UUID) (*queries.TutorRatingStats, error) {
	var stats queries.TutorRatingStats
	err := s.db.QueryRow(ctx, getTutorRatingStatsSQL, tutorProfileID).Scan(
		&stats.TutorProfileID,
		&stats.Rating,
		&stats.TotalReviews,
		&stats.UpdatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get tutor rating stats", err)
	}
	return &stats, nil
}
