package tutor

import "math"

// RatingStats is the derived (rating, totalReviews) pair stored on a tutor
// profile. It is recomputed from the full review set on every review insert,
// never updated incrementally, so rounding error cannot accumulate.
type RatingStats struct {
	Rating       float64
	TotalReviews int
}

// Recompute derives the aggregate from the complete set of ratings for one
// tutor. This is the in-memory mirror of the SQL recompute statement and must
// agree with it exactly.
func Recompute(ratings []int) RatingStats {
	if len(ratings) == 0 {
		return RatingStats{}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))

	return RatingStats{
		Rating:       RoundHalfUp(avg),
		TotalReviews: len(ratings),
	}
}

// RoundHalfUp rounds to one decimal with ties going up, matching Postgres
// ROUND(numeric, 1) for the non-negative averages stored here.
func RoundHalfUp(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
