package repository

import (
	"context"
	"time"

	"tutorhub/internal/domain/review"
	"tutorhub/internal/infra"

	"github.com/google/uuid"
)

const createReviewSQL = `
INSERT INTO reviews (id, booking_id, user_id, tutor_profile_id, rating, comment, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, created_at`

type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

// Create inserts a review under the booking_id uniqueness constraint. A
// 23505 from a concurrent insert surfaces as KindDuplicateKey and aborts the
// surrounding transaction before the aggregate recompute runs.
func (r *ReviewRepository) Create(ctx context.Context, db infra.DBTX, rev *review.Review) (uuid.UUID, time.Time, error) {
	var (
		id        uuid.UUID
		createdAt time.Time
	)
	err := db.QueryRow(ctx, createReviewSQL,
		rev.ID(),
		rev.BookingID(),
		rev.UserID(),
		rev.TutorProfileID(),
		rev.Rating().Value(),
		rev.Comment().String(),
		rev.CreatedAt(),
	).Scan(&id, &createdAt)
	if err != nil {
		return uuid.Nil, time.Time{}, infra.WrapRepoErr("failed to create review", err)
	}
	return id, createdAt, nil
}
