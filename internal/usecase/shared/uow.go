package shared

import (
	"context"
	"time"

	"tutorhub/internal/domain/booking"
	"tutorhub/internal/domain/review"
	"tutorhub/internal/infra"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Reviews() ReviewRepository
	TutorStats() TutorStatsRepository
	Reads() CommandReads
	DB() infra.DBTX
}

type CommandReads interface {
	BookingForReview(ctx context.Context, bookingID uuid.UUID) (*BookingSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
}

// BookingSnapshot is the composed read backing the review eligibility checks:
// booking, tutor-profile reference and any existing review come from a single
// query so there is no read-skew window between the checks.
type BookingSnapshot struct {
	ID             uuid.UUID
	StudentID      uuid.UUID
	TutorProfileID uuid.UUID
	Status         booking.Status
	ReviewID       *uuid.UUID
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
}

type ReviewRepository interface {
	Create(ctx context.Context, db infra.DBTX, rev *review.Review) (uuid.UUID, time.Time, error)
}

type TutorStatsRepository interface {
	// Recalc recomputes (rating, total_reviews) for one tutor from a full
	// scan of that tutor's reviews, under an exclusive per-tutor lock. Must
	// run in the same transaction as the review insert.
	Recalc(ctx context.Context, db infra.DBTX, tutorProfileID uuid.UUID) error
}
