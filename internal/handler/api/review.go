package api

import (
	"errors"
	"net/http"
	"strconv"

	domreview "tutorhub/internal/domain/review"
	reqdto "tutorhub/internal/handler/dto/request"
	resdto "tutorhub/internal/handler/dto/response"
	"tutorhub/internal/handler/httperr"
	"tutorhub/internal/handler/middleware"
	"tutorhub/internal/pkg/errs"
	"tutorhub/internal/usecase/commands"
	"tutorhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	cmds   commands.ReviewCommands
	q      queries.ReviewQueries
	tutorQ queries.TutorQueries
}

func NewReviewHandler(cmds commands.ReviewCommands, q queries.ReviewQueries, tutorQ queries.TutorQueries) *ReviewHandler {
	return &ReviewHandler{cmds: cmds, q: q, tutorQ: tutorQ}
}

// @Summary Create review
// @Description Create a review for a completed booking and update the tutor aggregate
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateReviewRequest true "Create review request"
// @Success 201 {object} resdto.ReviewCreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user id in context"), "Unauthorized", nil)
		return
	}

	var req reqdto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), req.ToCommand(), userID)
	if err != nil {
		switch {
		case errs.Is(err, domreview.ErrRatingOutOfRange):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Rating must be between 1 and 5", nil)
		case errs.Is(err, commands.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errs.Is(err, commands.ErrNotBookingStudent):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Only the booking's student can leave a review", nil)
		case errs.Is(err, commands.ErrBookingNotCompleted):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Can only review completed bookings", nil)
		case errs.Is(err, commands.ErrAlreadyReviewed):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Booking has already been reviewed", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCreateReviewResult(result, userID.String()))
}

// @Summary Get review
// @Description Get a review by ID
// @Tags reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} resdto.ReviewResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reviews/{id} [get]
func (h *ReviewHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, queries.ErrReviewNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Review not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReviewView(view))
}

// @Summary List tutor reviews
// @Description List reviews for a tutor with keyset pagination
// @Tags reviews
// @Produce json
// @Param id path string true "Tutor profile ID"
// @Param limit query int false "Max items (default 20)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} map[string]any
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /tutors/{id}/reviews [get]
func (h *ReviewHandler) ListByTutor(c *gin.Context) {
	tutorProfileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid tutor profile id", nil)
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		if iv, e := strconv.Atoi(v); e == nil {
			limit = queries.ValidateLimit(iv)
		}
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	items, next, err := h.q.ListByTutor(c.Request.Context(), tutorProfileID, cursor, limit)
	if err != nil {
		if errs.Is(err, queries.ErrInvalidCursor) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid cursor", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	resp := gin.H{"reviews": resdto.FromReviewList(items)}
	if next != nil {
		resp["next_cursor"] = next.After
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary Tutor rating stats
// @Description Get the derived rating aggregate for a tutor
// @Tags reviews
// @Produce json
// @Param id path string true "Tutor profile ID"
// @Success 200 {object} resdto.TutorRatingStatsResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /tutors/{id}/rating-stats [get]
func (h *ReviewHandler) TutorRatingStats(c *gin.Context) {
	tutorProfileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid tutor profile id", nil)
		return
	}

	stats, err := h.tutorQ.GetRatingStats(c.Request.Context(), tutorProfileID)
	if err != nil {
		if errs.Is(err, queries.ErrTutorNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Tutor profile not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromTutorRatingStats(stats))
}
