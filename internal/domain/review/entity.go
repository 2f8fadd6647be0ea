package review

import (
	"time"

	"github.com/google/uuid"
)

// Review is immutable once created: this service creates exactly one review
// per booking and never edits or deletes it.
type Review struct {
	id             uuid.UUID
	bookingID      uuid.UUID
	userID         uuid.UUID
	tutorProfileID uuid.UUID
	rating         Rating
	comment        Comment
	createdAt      time.Time
}

func NewReview(userID, tutorProfileID, bookingID uuid.UUID, rating Rating, comment Comment, now time.Time) (*Review, error) {
	if bookingID == uuid.Nil {
		return nil, ErrMissingBookingID
	}

	return &Review{
		id:             uuid.New(),
		bookingID:      bookingID,
		userID:         userID,
		tutorProfileID: tutorProfileID,
		rating:         rating,
		comment:        comment,
		createdAt:      now,
	}, nil
}

func (r *Review) ID() uuid.UUID             { return r.id }
func (r *Review) BookingID() uuid.UUID      { return r.bookingID }
func (r *Review) UserID() uuid.UUID         { return r.userID }
func (r *Review) TutorProfileID() uuid.UUID { return r.tutorProfileID }
func (r *Review) Rating() Rating            { return r.rating }
func (r *Review) Comment() Comment          { return r.comment }
func (r *Review) CreatedAt() time.Time      { return r.createdAt }
