package response

import (
	"tutorhub/internal/usecase/commands"
	"tutorhub/internal/usecase/queries"
)

type ReviewCreatedResponse struct {
	Success bool          `json:"success"`
	Review  CreatedReview `json:"review"`
}

type CreatedReview struct {
	ID        string `json:"id"`
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt int64  `json:"created_at"`
}

func FromCreateReviewResult(r *commands.CreateReviewResult, userID string) *ReviewCreatedResponse {
	return &ReviewCreatedResponse{
		Success: true,
		Review: CreatedReview{
			ID:        r.ReviewID.String(),
			BookingID: r.BookingID.String(),
			UserID:    userID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt.Unix(),
		},
	}
}

type ReviewResponse struct {
	ID             string `json:"id"`
	BookingID      string `json:"booking_id"`
	UserID         string `json:"user_id"`
	UserEmail      string `json:"user_email"`
	TutorProfileID string `json:"tutor_profile_id"`
	TutorHeadline  string `json:"tutor_headline"`
	Rating         int32  `json:"rating"`
	Comment        string `json:"comment"`
	CreatedAt      int64  `json:"created_at"`
}

func FromReviewView(v *queries.ReviewView) *ReviewResponse {
	return &ReviewResponse{
		ID:             v.ID.String(),
		BookingID:      v.BookingID.String(),
		UserID:         v.UserID.String(),
		UserEmail:      v.UserEmail,
		TutorProfileID: v.TutorProfileID.String(),
		TutorHeadline:  v.TutorHeadline,
		Rating:         v.Rating,
		Comment:        v.Comment,
		CreatedAt:      v.CreatedAt.Unix(),
	}
}

type ReviewListItemResponse struct {
	ID        string `json:"id"`
	UserEmail string `json:"user_email"`
	Rating    int32  `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt int64  `json:"created_at"`
}

func FromReviewList(items []*queries.ReviewListItem) []*ReviewListItemResponse {
	res := make([]*ReviewListItemResponse, len(items))
	for i, it := range items {
		res[i] = &ReviewListItemResponse{
			ID:        it.ID.String(),
			UserEmail: it.UserEmail,
			Rating:    it.Rating,
			Comment:   it.Comment,
			CreatedAt: it.CreatedAt.Unix(),
		}
	}
	return res
}
