//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"

	"tutorhub/internal/domain/user"
	"tutorhub/internal/handler/api"
	resdto "tutorhub/internal/handler/dto/response"
	"tutorhub/internal/pkg/errs"
	"tutorhub/internal/usecase/commands"
	"tutorhub/internal/usecase/queries"
	"tutorhub/tests/common/builder"
	"tutorhub/tests/common/httptest"
	"tutorhub/tests/common/testutil"
	commandsmock "tutorhub/tests/mock/commands"
	queriesmock "tutorhub/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReviewHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockCtrl         *gomock.Controller
	mockCommands     *commandsmock.MockReviewCommands
	mockQueries      *queriesmock.MockReviewQueries
	mockTutorQueries *queriesmock.MockTutorQueries
	handler          *api.ReviewHandler
}

func (s *ReviewHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReviewCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReviewQueries(s.mockCtrl)
	s.mockTutorQueries = queriesmock.NewMockTutorQueries(s.mockCtrl)
	s.handler = api.NewReviewHandler(s.mockCommands, s.mockQueries, s.mockTutorQueries)

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}
		c.Set("user_id", uuid.New())
		c.Set("user_role", user.RoleStudent)
		c.Next()
	}

	s.router.POST("/reviews", authMiddleware, s.handler.Create)
	s.router.GET("/reviews/:id", s.handler.Get)
	s.router.GET("/tutors/:id/reviews", s.handler.ListByTutor)
	s.router.GET("/tutors/:id/rating-stats", s.handler.TutorRatingStats)
}

func (s *ReviewHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReviewHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReviewHandlerTestSuite))
}

type testCaseReview struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReviewHandlerTestSuite) TestCreate() {
	url := "/reviews"

	rb := builder.NewReviewBuilder()
	reqBody := rb.BuildCreateRequestDTO()
	expectedResult := rb.BuildCreateResult()

	validationCases := []testCaseReview{
		{name: "rating boundary OK (1)", mutate: testutil.Field("rating", 1), expectCode: http.StatusCreated},
		{name: "rating boundary OK (5)", mutate: testutil.Field("rating", 5), expectCode: http.StatusCreated},
		{name: "rating boundary invalid (0)", mutate: testutil.Field("rating", 0), expectCode: http.StatusBadRequest},
		{name: "rating boundary invalid (6)", mutate: testutil.Field("rating", 6), expectCode: http.StatusBadRequest},
		{name: "missing field: booking_id (required)", mutate: testutil.Field("booking_id", nil), expectCode: http.StatusBadRequest},
		{name: "missing field: rating (required)", mutate: testutil.Field("rating", nil), expectCode: http.StatusBadRequest},
		{name: "comment omitted is allowed", mutate: testutil.Field("comment", nil), expectCode: http.StatusCreated},
		{name: "comment over cap is accepted (truncated downstream)", mutate: testutil.Field("comment", strings.Repeat("a", 5001)), expectCode: http.StatusCreated},
	}

	s.Run("success: returns 201 Created with success envelope", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(expectedResult, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var resp resdto.ReviewCreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &resp)
		s.True(resp.Success)
		s.Equal(expectedResult.ReviewID.String(), resp.Review.ID)
		s.Equal(expectedResult.BookingID.String(), resp.Review.BookingID)
		s.Equal(expectedResult.Rating, resp.Review.Rating)
	})

	s.Run("unauthorized: returns 401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})

	for _, tc := range validationCases {
		s.Run(tc.name, func() {
			if tc.expectCode == http.StatusCreated {
				s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(expectedResult, nil).Times(1)
			}
			body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
			s.Equal(tc.expectCode, rec.Code, "response: %s", rec.Body.String())
		})
	}

	// Not-found and duplicate reach the handler as marks over the storage
	// error, the way the command layer produces them; the guard errors come
	// back as bare sentinels.
	commandErrCases := []struct {
		name       string
		err        error
		expectCode int
		expectMsg  string
	}{
		{name: "booking not found", err: errs.Mark(errs.New("failed to find booking"), commands.ErrBookingNotFound), expectCode: http.StatusNotFound, expectMsg: "Booking not found"},
		{name: "not the booking's student", err: commands.ErrNotBookingStudent, expectCode: http.StatusForbidden, expectMsg: "student"},
		{name: "booking not completed", err: commands.ErrBookingNotCompleted, expectCode: http.StatusBadRequest, expectMsg: "completed"},
		{name: "already reviewed", err: commands.ErrAlreadyReviewed, expectCode: http.StatusBadRequest, expectMsg: "already"},
		{name: "duplicate insert race", err: errs.Mark(errs.New("failed to create review"), commands.ErrAlreadyReviewed), expectCode: http.StatusBadRequest, expectMsg: "already"},
	}

	for _, tc := range commandErrCases {
		s.Run("command error: "+tc.name, func() {
			s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil, tc.err).Times(1)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, tc.expectMsg)
		})
	}
}

// ================================================================================
// TestGet
// ================================================================================

func (s *ReviewHandlerTestSuite) TestGet() {
	view := builder.NewReviewBuilder().BuildViewQuery()

	s.Run("success: returns 200 with review view", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reviews/"+view.ID.String(), nil, "")

		var resp resdto.ReviewResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(view.ID.String(), resp.ID)
		s.Equal(view.UserEmail, resp.UserEmail)
	})

	s.Run("not found: returns 404", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), id).
			Return(nil, errs.Mark(errs.New("failed to find review"), queries.ErrReviewNotFound))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reviews/"+id.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Review not found")
	})

	s.Run("invalid id: returns 400", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reviews/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

// ================================================================================
// TestListByTutor
// ================================================================================

func (s *ReviewHandlerTestSuite) TestListByTutor() {
	tutorID := uuid.New()
	items := []*queries.ReviewListItem{
		builder.NewReviewBuilder().BuildListItem(),
		builder.NewReviewBuilder().WithRating(4).BuildListItem(),
	}

	s.Run("success: returns reviews with next cursor", func() {
		next := &queries.Cursor{After: "djE6MTcw"}
		s.mockQueries.EXPECT().ListByTutor(gomock.Any(), tutorID, gomock.Nil(), 20).Return(items, next, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/tutors/"+tutorID.String()+"/reviews", nil, "")

		var resp struct {
			Reviews    []*resdto.ReviewListItemResponse `json:"reviews"`
			NextCursor string                           `json:"next_cursor"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Len(resp.Reviews, 2)
		s.Equal(next.After, resp.NextCursor)
	})

	s.Run("invalid cursor: returns 400", func() {
		s.mockQueries.EXPECT().ListByTutor(gomock.Any(), tutorID, &queries.Cursor{After: "garbage"}, 20).
			Return(nil, nil, errs.Mark(errs.New("invalid cursor encoding"), queries.ErrInvalidCursor))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/tutors/"+tutorID.String()+"/reviews?after=garbage", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid cursor")
	})
}

// ================================================================================
// TestTutorRatingStats
// ================================================================================

func (s *ReviewHandlerTestSuite) TestTutorRatingStats() {
	stats := builder.NewReviewBuilder().BuildRatingStats()

	s.Run("success: returns aggregate", func() {
		s.mockTutorQueries.EXPECT().GetRatingStats(gomock.Any(), stats.TutorProfileID).Return(stats, nil)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/tutors/"+stats.TutorProfileID.String()+"/rating-stats", nil, "")

		var resp resdto.TutorRatingStatsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
		s.Equal(stats.TutorProfileID.String(), resp.TutorProfileID)
		s.InDelta(stats.Rating, resp.Rating, 1e-9)
		s.Equal(stats.TotalReviews, resp.TotalReviews)
	})

	s.Run("unknown tutor: returns 404", func() {
		id := uuid.New()
		s.mockTutorQueries.EXPECT().GetRatingStats(gomock.Any(), id).
			Return(nil, errs.Mark(errs.New("failed to load tutor rating stats"), queries.ErrTutorNotFound))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/tutors/"+id.String()+"/rating-stats", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Tutor profile not found")
	})
}
