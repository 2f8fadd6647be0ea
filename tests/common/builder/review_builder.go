//go:build unit || e2e

package builder

import (
	"time"

	reqdto "tutorhub/internal/handler/dto/request"
	"tutorhub/internal/usecase/commands"
	"tutorhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	UserID         uuid.UUID
	UserEmail      string
	BookingID      uuid.UUID
	TutorProfileID uuid.UUID
	TutorHeadline  string
	Rating         int
	Comment        string
	CreatedAt      time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{
		UserID:         uuid.New(),
		UserEmail:      "student@example.com",
		BookingID:      uuid.New(),
		TutorProfileID: uuid.New(),
		TutorHeadline:  "Algebra tutor",
		Rating:         5,
		Comment:        "Excellent session!",
		CreatedAt:      time.Now(),
	}
}

func (r *ReviewBuilder) WithUserID(userID uuid.UUID) *ReviewBuilder {
	r.UserID = userID
	return r
}

func (r *ReviewBuilder) WithBookingID(bookingID uuid.UUID) *ReviewBuilder {
	r.BookingID = bookingID
	return r
}

func (r *ReviewBuilder) WithTutorProfileID(tutorProfileID uuid.UUID) *ReviewBuilder {
	r.TutorProfileID = tutorProfileID
	return r
}

func (r *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	r.Rating = rating
	return r
}

func (r *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	r.Comment = comment
	return r
}

func (r *ReviewBuilder) BuildCreateRequestDTO() reqdto.CreateReviewRequest {
	return reqdto.CreateReviewRequest{
		BookingID: r.BookingID,
		Rating:    r.Rating,
		Comment:   r.Comment,
	}
}

func (r *ReviewBuilder) BuildCreateResult() *commands.CreateReviewResult {
	return &commands.CreateReviewResult{
		ReviewID:       uuid.New(),
		BookingID:      r.BookingID,
		TutorProfileID: r.TutorProfileID,
		Rating:         r.Rating,
		Comment:        r.Comment,
		CreatedAt:      r.CreatedAt,
	}
}

func (r *ReviewBuilder) BuildViewQuery() *queries.ReviewView {
	return &queries.ReviewView{
		ID:             uuid.New(),
		BookingID:      r.BookingID,
		UserID:         r.UserID,
		UserEmail:      r.UserEmail,
		TutorProfileID: r.TutorProfileID,
		TutorHeadline:  r.TutorHeadline,
		Rating:         int32(r.Rating),
		Comment:        r.Comment,
		CreatedAt:      r.CreatedAt,
	}
}

func (r *ReviewBuilder) BuildListItem() *queries.ReviewListItem {
	return &queries.ReviewListItem{
		ID:        uuid.New(),
		UserEmail: r.UserEmail,
		Rating:    int32(r.Rating),
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func (r *ReviewBuilder) BuildRatingStats() *queries.TutorRatingStats {
	return &queries.TutorRatingStats{
		TutorProfileID: r.TutorProfileID,
		Rating:         4.3,
		TotalReviews:   4,
		UpdatedAt:      r.CreatedAt,
	}
}
