package readstore

import (
	"context"

	"tutorhub/internal/domain/booking"
	"tutorhub/internal/infra"
	"tutorhub/internal/usecase/shared"

	"github.com/google/uuid"
)

const findBookingForReviewSQL = `
SELECT b.id,
       b.student_id,
       b.tutor_profile_id,
       b.status,
       rv.id AS review_id
FROM bookings b
LEFT JOIN reviews rv ON rv.booking_id = b.id
WHERE b.id = $1`

type BookingReadStore struct {
	db infra.DBTX
}

func NewBookingReadStore(db infra.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

// FindForReview reads the booking with its review marker in one round trip
// so the command layer runs all eligibility checks off a single snapshot.
func (s *BookingReadStore) FindForReview(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	var (
		snap     shared.BookingSnapshot
		status   string
		reviewID *uuid.UUID
	)
	err := s.db.QueryRow(ctx, findBookingForReviewSQL, id).Scan(
		&snap.ID,
		&snap.StudentID,
		&snap.TutorProfileID,
		&status,
		&reviewID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}
	snap.Status = booking.Status(status)
	snap.ReviewID = reviewID
	return &snap, nil
}
