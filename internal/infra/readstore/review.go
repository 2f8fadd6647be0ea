package readstore

import (
	"context"
	"time"

	"tutorhub/internal/infra"
	"tutorhub/internal/usecase/queries"

	"github.com/google/uuid"
)

const findReviewByIDSQL = `
SELECT rv.id,
       rv.booking_id,
       rv.user_id,
       u.email,
       rv.tutor_profile_id,
       tp.headline,
       rv.rating,
       rv.comment,
       rv.created_at
FROM reviews rv
JOIN users u           ON u.id = rv.user_id
JOIN tutor_profiles tp ON tp.id = rv.tutor_profile_id
WHERE rv.id = $1`

// Keyset pagination over (created_at DESC, id DESC); the composite
// comparison matches idx_reviews_tutor_profile_created.
const findReviewsByTutorKeysetSQL = `
SELECT rv.id,
       u.email,
       rv.rating,
       rv.comment,
       rv.created_at
FROM reviews rv
JOIN users u ON u.id = rv.user_id
WHERE rv.tutor_profile_id = $1
  AND ($2::timestamptz IS NULL OR (rv.created_at, rv.id) < ($2, $3::uuid))
ORDER BY rv.created_at DESC, rv.id DESC
LIMIT $4`

type ReviewReadStore struct {
	db infra.DBTX
}

func NewReviewReadStore(db infra.DBTX) *ReviewReadStore {
	return &ReviewReadStore{db: db}
}

func (s *ReviewReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReviewView, error) {
	var view queries.ReviewView
	err := s.db.QueryRow(ctx, findReviewByIDSQL, id).Scan(
		&view.ID,
		&view.BookingID,
		&view.UserID,
		&view.UserEmail,
		&view.TutorProfileID,
		&view.TutorHeadline,
		&view.Rating,
		&view.Comment,
		&view.CreatedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find review", err)
	}
	return &view, nil
}

func (s *ReviewReadStore) FindByTutorKeyset(ctx context.Context, tutorProfileID uuid.UUID, lastCreatedAt *time.Time, lastID *uuid.UUID, limit int32) ([]*queries.ReviewListItem, error) {
	rows, err := s.db.Query(ctx, findReviewsByTutorKeysetSQL, tutorProfileID, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews", err)
	}
	defer rows.Close()

	items := make([]*queries.ReviewListItem, 0, limit)
	for rows.Next() {
		var item queries.ReviewListItem
		if err := rows.Scan(&item.ID, &item.UserEmail, &item.Rating, &item.Comment, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan review row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate review rows", err)
	}
	return items, nil
}
