package response

import (
	"tutorhub/internal/usecase/queries"
)

type TutorRatingStatsResponse struct {
	TutorProfileID string  `json:"tutor_profile_id"`
	Rating         float64 `json:"rating"`
	TotalReviews   int32   `json:"total_reviews"`
	UpdatedAt      int64   `json:"updated_at"`
}

func FromTutorRatingStats(s *queries.TutorRatingStats) *TutorRatingStatsResponse {
	return &TutorRatingStatsResponse{
		TutorProfileID: s.TutorProfileID.String(),
		Rating:         s.Rating,
		TotalReviews:   s.TotalReviews,
		UpdatedAt:      s.UpdatedAt.Unix(),
	}
}
