//go:build e2e

package review_test

import (
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	resdto "tutorhub/internal/handler/dto/response"
	"tutorhub/tests/common/authtest"
	"tutorhub/tests/common/builder"
	"tutorhub/tests/common/dbtest"
	"tutorhub/tests/common/httptest"
	"tutorhub/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/sync/errgroup"
)

type ReviewE2ETestSuite struct {
	e2e.SharedSuite
}

func TestReviewE2E(t *testing.T) {
	suite.Run(t, new(ReviewE2ETestSuite))
}

// seedTutor creates a tutor user with a profile and returns the profile ID.
func (s *ReviewE2ETestSuite) seedTutor(email string) uuid.UUID {
	tutorUserID := dbtest.CreateTestUser(s.T(), s.DB, email, "tutor")
	return dbtest.CreateTestTutorProfile(s.T(), s.DB, tutorUserID, "Algebra tutor")
}

// seedBookingScenario creates a student, a tutor profile and a booking
// between them, then logs the student in.
func (s *ReviewE2ETestSuite) seedBookingScenario(studentEmail, status string) (token string, tutorProfileID, bookingID uuid.UUID) {
	tutorProfileID = s.seedTutor("tutor+" + studentEmail)
	studentID, token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, studentEmail, "student")
	bookingID = dbtest.CreateTestBooking(s.T(), s.DB, studentID, tutorProfileID, status)
	return token, tutorProfileID, bookingID
}

func (s *ReviewE2ETestSuite) TestCreateReview() {
	s.Run("creates review and updates tutor aggregate", func() {
		token, tutorProfileID, bookingID := s.seedBookingScenario("alice@example.com", "completed")

		req := builder.NewReviewBuilder().
			WithBookingID(bookingID).
			WithRating(5).
			WithComment("Great explanation of quadratic equations").
			BuildCreateRequestDTO()
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reviews", req, token)

		var resp resdto.ReviewCreatedResponse
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
		require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &resp))
		assert.True(s.T(), resp.Review.ID != "", "review id missing")
		assert.Equal(s.T(), bookingID.String(), resp.Review.BookingID)
		assert.Equal(s.T(), 5, resp.Review.Rating)

		require.Equal(s.T(), 1, dbtest.CountReviewsForBooking(s.T(), s.DB, bookingID))
		rating, total := dbtest.GetTutorAggregate(s.T(), s.DB, tutorProfileID)
		assert.InDelta(s.T(), 5.0, rating, 0.001)
		assert.Equal(s.T(), 1, total)
	})

	s.Run("rounds aggregate to one decimal half away from zero", func() {
		tutorProfileID := s.seedTutor("tutor-rounding@example.com")

		// [4, 4, 4, 5] averages to 4.25, which must surface as 4.3
		ratings := []int{4, 4, 4, 5}
		for i, rating := range ratings {
			email := fmt.Sprintf("student%d@example.com", i)
			studentID, token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, email, "student")
			bookingID := dbtest.CreateTestBooking(s.T(), s.DB, studentID, tutorProfileID, "completed")

			req := builder.NewReviewBuilder().
				WithBookingID(bookingID).
				WithRating(rating).
				BuildCreateRequestDTO()
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reviews", req, token)
			require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
		}

		rating, total := dbtest.GetTutorAggregate(s.T(), s.DB, tutorProfileID)
		assert.InDelta(s.T(), 4.3, rating, 0.001)
		assert.Equal(s.T(), 4, total)
	})

	s.Run("rejects unauthenticated request", func() {
		_, _, bookingID := s.seedBookingScenario("bob@example.com", "completed")

		req := builder.NewReviewBuilder().WithBookingID(bookingID).BuildCreateRequestDTO()
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reviews", req, "")

		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")
	})

	s.Run("returns 404 for unknown booking", func() {
		token, _, _ := s.seedBookingScenario("carol@example.com", "completed")

		req := builder.NewReviewBuilder().WithBookingID(uuid.New()).BuildCreateRequestDTO()
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reviews", req, token)

		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
	})

	s.Run("rejects review from a different student", func() {
		_, _, bookingID := s.seedBookingScenario("dave@example.com", "completed")
		_, otherToken := authtest.CreateAndLogin(s.T(), s.DB, s.Router, "mallory@example.com", "student")

		req := builder.NewReviewBuilder().WithBookingID(bookingID).BuildCreateRequestDTO()
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reviews", req, otherToken)

		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "Only the booking's student")
	})

	s.Run("rejects review for non-completed booking", func() {
		for _, status := range []string{"pending", "confirmed", "cancelled"} {
			token, _, bookingID := s.seedBookingScenario(status+"@example.com", status)

			req := builder.NewReviewBuilder().WithBookingID(bookingID).BuildCreateRequestDTO()
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reviews", req, token)

			httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "completed bookings")
		}
	})

	s.Run("rejects second review for the same booking", func() {
		token, tutorProfileID, bookingID := s.seedBookingScenario("erin@example.com", "completed")

		req := builder.NewReviewBuilder().WithBookingID(bookingID).WithRating(4).BuildCreateRequestDTO()
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reviews", req, token)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reviews", req, token)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "already been reviewed")

		require.Equal(s.T(), 1, dbtest.CountReviewsForBooking(s.T(), s.DB, bookingID))
		rating, total := dbtest.GetTutorAggregate(s.T(), s.DB, tutorProfileID)
		assert.InDelta(s.T(), 4.0, rating, 0.001)
		assert.Equal(s.T(), 1, total)
	})

	s.Run("rejects out-of-range rating", func() {
		token, _, bookingID := s.seedBookingScenario("frank@example.com", "completed")

		for _, rating := range []int{-1, 6, 100} {
			req := builder.NewReviewBuilder().WithBookingID(bookingID).WithRating(rating).BuildCreateRequestDTO()
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reviews", req, token)
			require.Equal(s.T(), http.StatusBadRequest, w.Code, w.Body.String())
		}
		require.Equal(s.T(), 0, dbtest.CountReviewsForBooking(s.T(), s.DB, bookingID))
	})
}

func (s *ReviewE2ETestSuite) TestConcurrentReviews() {
	s.Run("aggregate stays exact under concurrent creates", func() {
		tutorProfileID := s.seedTutor("tutor-concurrent@example.com")

		// Averages to exactly 3.5
		ratings := []int{5, 5, 4, 4, 3, 3, 2, 2}

		type scenario struct {
			token     string
			bookingID uuid.UUID
			rating    int
		}
		scenarios := make([]scenario, len(ratings))
		for i, rating := range ratings {
			email := fmt.Sprintf("concurrent%d@example.com", i)
			studentID, token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, email, "student")
			bookingID := dbtest.CreateTestBooking(s.T(), s.DB, studentID, tutorProfileID, "completed")
			scenarios[i] = scenario{token: token, bookingID: bookingID, rating: rating}
		}

		var g errgroup.Group
		for _, sc := range scenarios {
			g.Go(func() error {
				req := builder.NewReviewBuilder().
					WithBookingID(sc.bookingID).
					WithRating(sc.rating).
					BuildCreateRequestDTO()
				w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reviews", req, sc.token)
				if w.Code != http.StatusCreated {
					return fmt.Errorf("unexpected status %d: %s", w.Code, w.Body.String())
				}
				return nil
			})
		}
		require.NoError(s.T(), g.Wait())

		rating, total := dbtest.GetTutorAggregate(s.T(), s.DB, tutorProfileID)
		assert.InDelta(s.T(), 3.5, rating, 0.001)
		assert.Equal(s.T(), len(ratings), total)
	})

	s.Run("exactly one of two racing reviews for the same booking wins", func() {
		token, tutorProfileID, bookingID := s.seedBookingScenario("racer@example.com", "completed")

		var created, rejected atomic.Int32
		var g errgroup.Group
		for range 2 {
			g.Go(func() error {
				req := builder.NewReviewBuilder().WithBookingID(bookingID).WithRating(5).BuildCreateRequestDTO()
				w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reviews", req, token)
				switch w.Code {
				case http.StatusCreated:
					created.Add(1)
				case http.StatusBadRequest:
					rejected.Add(1)
				default:
					return fmt.Errorf("unexpected status %d: %s", w.Code, w.Body.String())
				}
				return nil
			})
		}
		require.NoError(s.T(), g.Wait())

		assert.Equal(s.T(), int32(1), created.Load())
		assert.Equal(s.T(), int32(1), rejected.Load())
		require.Equal(s.T(), 1, dbtest.CountReviewsForBooking(s.T(), s.DB, bookingID))

		rating, total := dbtest.GetTutorAggregate(s.T(), s.DB, tutorProfileID)
		assert.InDelta(s.T(), 5.0, rating, 0.001)
		assert.Equal(s.T(), 1, total)
	})
}

func (s *ReviewE2ETestSuite) TestGetReview() {
	s.Run("returns review detail", func() {
		token, tutorProfileID, bookingID := s.seedBookingScenario("grace@example.com", "completed")

		req := builder.NewReviewBuilder().
			WithBookingID(bookingID).
			WithRating(4).
			WithComment("Clear and patient").
			BuildCreateRequestDTO()
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reviews", req, token)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		var created resdto.ReviewCreatedResponse
		require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &created))

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reviews/"+created.Review.ID, nil, "")
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var view resdto.ReviewResponse
		require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &view))

		expected := &resdto.ReviewResponse{
			ID:             created.Review.ID,
			BookingID:      bookingID.String(),
			UserEmail:      "grace@example.com",
			TutorProfileID: tutorProfileID.String(),
			TutorHeadline:  "Algebra tutor",
			Rating:         int32(4),
			Comment:        "Clear and patient",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(resdto.ReviewResponse{}, "UserID", "CreatedAt"),
		}
		if diff := cmp.Diff(expected, &view, opts...); diff != "" {
			s.T().Errorf("Review response mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("returns 404 for unknown review", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reviews/"+uuid.NewString(), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Review not found")
	})

	s.Run("returns 400 for malformed id", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/reviews/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid id")
	})
}

func (s *ReviewE2ETestSuite) TestListTutorReviews() {
	type listResponse struct {
		Reviews    []resdto.ReviewListItemResponse `json:"reviews"`
		NextCursor string                          `json:"next_cursor"`
	}

	s.Run("paginates with keyset cursor", func() {
		tutorProfileID := s.seedTutor("tutor-list@example.com")

		for i, rating := range []int{5, 3, 4} {
			email := fmt.Sprintf("lister%d@example.com", i)
			studentID, token := authtest.CreateAndLogin(s.T(), s.DB, s.Router, email, "student")
			bookingID := dbtest.CreateTestBooking(s.T(), s.DB, studentID, tutorProfileID, "completed")

			req := builder.NewReviewBuilder().WithBookingID(bookingID).WithRating(rating).BuildCreateRequestDTO()
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reviews", req, token)
			require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
		}

		path := fmt.Sprintf("/api/tutors/%s/reviews?limit=2", tutorProfileID)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, path, nil, "")
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var first listResponse
		require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &first))
		require.Len(s.T(), first.Reviews, 2)
		require.NotEmpty(s.T(), first.NextCursor)

		path = fmt.Sprintf("/api/tutors/%s/reviews?limit=2&after=%s", tutorProfileID, first.NextCursor)
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, path, nil, "")
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var second listResponse
		require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &second))
		require.Len(s.T(), second.Reviews, 1)
		assert.Empty(s.T(), second.NextCursor)

		seen := map[string]bool{}
		for _, it := range append(first.Reviews, second.Reviews...) {
			seen[it.ID] = true
		}
		assert.Len(s.T(), seen, 3, "pages must not overlap")
	})

	s.Run("returns empty page for tutor without reviews", func() {
		tutorProfileID := s.seedTutor("tutor-empty@example.com")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf("/api/tutors/%s/reviews", tutorProfileID), nil, "")
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var resp listResponse
		require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &resp))
		assert.Empty(s.T(), resp.Reviews)
		assert.Empty(s.T(), resp.NextCursor)
	})

	s.Run("rejects malformed cursor", func() {
		tutorProfileID := s.seedTutor("tutor-badcursor@example.com")

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf("/api/tutors/%s/reviews?after=%s", tutorProfileID, "not-a-cursor"), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid cursor")
	})
}

func (s *ReviewE2ETestSuite) TestTutorRatingStats() {
	s.Run("reflects new reviews across cached reads", func() {
		token, tutorProfileID, bookingID := s.seedBookingScenario("henry@example.com", "completed")

		path := fmt.Sprintf("/api/tutors/%s/rating-stats", tutorProfileID)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, path, nil, "")
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var before resdto.TutorRatingStatsResponse
		require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &before))
		assert.InDelta(s.T(), 0.0, before.Rating, 0.001)
		assert.Equal(s.T(), int32(0), before.TotalReviews)

		req := builder.NewReviewBuilder().WithBookingID(bookingID).WithRating(4).BuildCreateRequestDTO()
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/reviews", req, token)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())

		// The create must have invalidated the cached entry from the first read
		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, path, nil, "")
		require.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

		var after resdto.TutorRatingStatsResponse
		require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &after))
		assert.Equal(s.T(), tutorProfileID.String(), after.TutorProfileID)
		assert.InDelta(s.T(), 4.0, after.Rating, 0.001)
		assert.Equal(s.T(), int32(1), after.TotalReviews)
	})

	s.Run("returns 404 for unknown tutor profile", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet,
			fmt.Sprintf("/api/tutors/%s/rating-stats", uuid.NewString()), nil, "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Tutor profile not found")
	})
}
