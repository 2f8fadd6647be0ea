package commands

import (
	"context"
	"log/slog"
	"time"

	domreview "tutorhub/internal/domain/review"
	"tutorhub/internal/infra"
	"tutorhub/internal/pkg/clock"
	"tutorhub/internal/pkg/errs"
	"tutorhub/internal/pkg/sanitize"
	"tutorhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound     = errs.New("booking not found")
	ErrNotBookingStudent   = errs.New("only the student can review this booking")
	ErrBookingNotCompleted = errs.New("can only review completed bookings")
	ErrAlreadyReviewed     = errs.New("already reviewed")
)

type CreateReviewRequest struct {
	BookingID uuid.UUID
	Rating    int
	Comment   string
}

type CreateReviewResult struct {
	ReviewID       uuid.UUID
	BookingID      uuid.UUID
	TutorProfileID uuid.UUID
	Rating         int
	Comment        string
	CreatedAt      time.Time
}

type ReviewCommands interface {
	Create(ctx context.Context, req CreateReviewRequest, userID uuid.UUID) (*CreateReviewResult, error)
}

// StatsCacheInvalidator drops the cached rating stats for a tutor after a
// review commits. Best effort: a miss on the next read repopulates it.
type StatsCacheInvalidator interface {
	Invalidate(ctx context.Context, tutorProfileID uuid.UUID) error
}

type reviewCommandsImpl struct {
	uow        shared.UnitOfWork
	clock      clock.Clock
	sanitizer  sanitize.Sanitizer
	statsCache StatsCacheInvalidator
}

func NewReviewCommands(uow shared.UnitOfWork, clk clock.Clock, sanitizer sanitize.Sanitizer, statsCache StatsCacheInvalidator) ReviewCommands {
	return &reviewCommandsImpl{uow: uow, clock: clk, sanitizer: sanitizer, statsCache: statsCache}
}

// Create runs the whole review workflow: validation, the eligibility checks
// against a single composed booking read, then the review insert and the
// tutor aggregate recompute as one atomic unit. The eligibility checks are
// advisory; the reviews.booking_id unique constraint is what actually wins
// the race when two requests review the same booking concurrently.
func (uc *reviewCommandsImpl) Create(ctx context.Context, req CreateReviewRequest, userID uuid.UUID) (*CreateReviewResult, error) {
	rating, err := domreview.NewRating(req.Rating)
	if err != nil {
		return nil, err
	}
	comment := domreview.NewComment(uc.sanitizer.Sanitize(req.Comment))

	var result *CreateReviewResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		bk, derr := tx.Reads().BookingForReview(ctx, req.BookingID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return errs.Mark(derr, ErrBookingNotFound)
			}
			return derr
		}
		if bk.StudentID != userID {
			return ErrNotBookingStudent
		}
		if !bk.Status.IsCompleted() {
			return ErrBookingNotCompleted
		}
		if bk.ReviewID != nil {
			return ErrAlreadyReviewed
		}

		rev, derr := domreview.NewReview(userID, bk.TutorProfileID, req.BookingID, rating, comment, uc.clock.Now())
		if derr != nil {
			return derr
		}

		id, createdAt, derr := tx.Reviews().Create(ctx, tx.DB(), rev)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				// A concurrent request won the insert race after our check.
				return errs.Mark(derr, ErrAlreadyReviewed)
			}
			return derr
		}

		if derr = tx.TutorStats().Recalc(ctx, tx.DB(), bk.TutorProfileID); derr != nil {
			return derr
		}

		result = &CreateReviewResult{
			ReviewID:       id,
			BookingID:      req.BookingID,
			TutorProfileID: bk.TutorProfileID,
			Rating:         rating.Value(),
			Comment:        comment.String(),
			CreatedAt:      createdAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if cerr := uc.statsCache.Invalidate(ctx, result.TutorProfileID); cerr != nil {
		slog.Warn("failed to invalidate tutor stats cache",
			"tutor_profile_id", result.TutorProfileID.String(),
			"error", cerr.Error())
	}

	return result, nil
}
