package repository

import (
	"context"

	"tutorhub/internal/infra"

	"github.com/google/uuid"
)

const lockTutorProfileSQL = `
SELECT id FROM tutor_profiles WHERE id = $1 FOR UPDATE`

const recalcTutorRatingStatsSQL = `
UPDATE tutor_profiles tp
SET rating        = COALESCE(ROUND(s.avg_rating, 1), 0),
    total_reviews = s.total,
    updated_at    = now()
FROM (
    SELECT COUNT(*)              AS total,
           AVG(rating)::numeric  AS avg_rating
    FROM reviews
    WHERE tutor_profile_id = $1
) s
WHERE tp.id = $1`

type TutorStatsRepository struct{}

func NewTutorStatsRepository() *TutorStatsRepository {
	return &TutorStatsRepository{}
}

// Recalc serializes concurrent recomputes for one tutor: the row lock is
// taken first, so by the time the recompute statement snapshots, every
// earlier writer for this tutor has committed and its review is visible to
// the full scan. Recomputing from the scan (not from the previous aggregate)
// keeps the pair exact regardless of interleaving.
func (r *TutorStatsRepository) Recalc(ctx context.Context, db infra.DBTX, tutorProfileID uuid.UUID) error {
	var locked uuid.UUID
	if err := db.QueryRow(ctx, lockTutorProfileSQL, tutorProfileID).Scan(&locked); err != nil {
		return infra.WrapRepoErr("failed to lock tutor profile", err)
	}

	if _, err := db.Exec(ctx, recalcTutorRatingStatsSQL, tutorProfileID); err != nil {
		return infra.WrapRepoErr("failed to recalc tutor rating stats", err)
	}
	return nil
}
