package queries

import (
	"context"
	"time"

	"tutorhub/internal/infra"
	"tutorhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReviewNotFound = errs.New("review not found")
	ErrInvalidCursor  = errs.New("invalid cursor")
)

// ReviewView is the read-optimized review detail.
type ReviewView struct {
	ID             uuid.UUID `json:"id"`
	BookingID      uuid.UUID `json:"booking_id"`
	UserID         uuid.UUID `json:"user_id"`
	UserEmail      string    `json:"user_email"`
	TutorProfileID uuid.UUID `json:"tutor_profile_id"`
	TutorHeadline  string    `json:"tutor_headline"`
	Rating         int32     `json:"rating"`
	Comment        string    `json:"comment"`
	CreatedAt      time.Time `json:"created_at"`
}

type ReviewListItem struct {
	ID        uuid.UUID `json:"id"`
	UserEmail string    `json:"user_email"`
	Rating    int32     `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	FindByTutorKeyset(ctx context.Context, tutorProfileID uuid.UUID, lastCreatedAt *time.Time, lastID *uuid.UUID, limit int32) ([]*ReviewListItem, error)
}

type ReviewQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	ListByTutor(ctx context.Context, tutorProfileID uuid.UUID, cursor *Cursor, limit int) ([]*ReviewListItem, *Cursor, error)
}

type reviewQueriesImpl struct {
	readStore ReviewReadStore
}

func NewReviewQueries(readStore ReviewReadStore) ReviewQueries {
	return &reviewQueriesImpl{readStore: readStore}
}

func (q *reviewQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error) {
	rv, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReviewNotFound)
		}
		return nil, err
	}
	return rv, nil
}

func (q *reviewQueriesImpl) ListByTutor(ctx context.Context, tutorProfileID uuid.UUID, cursor *Cursor, limit int) ([]*ReviewListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var lastCreatedAt *time.Time
	var lastID *uuid.UUID
	if cursor != nil && cursor.After != "" {
		t, id, err := DecodeAfterCursor(cursor.After)
		if err != nil {
			return nil, nil, errs.Mark(err, ErrInvalidCursor)
		}
		lastCreatedAt = &t
		lastID = &id
	}

	// Fetch one extra row to know whether a next page exists.
	rows, err := q.readStore.FindByTutorKeyset(ctx, tutorProfileID, lastCreatedAt, lastID, int32(limit+1))
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
