//go:build unit

package review_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"tutorhub/internal/domain/review"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRating(t *testing.T) {
	testCases := []struct {
		name          string
		value         int
		expectedError error
	}{
		{name: "minimum rating is valid", value: 1},
		{name: "maximum rating is valid", value: 5},
		{name: "mid-range rating is valid", value: 3},
		{name: "zero is rejected", value: 0, expectedError: review.ErrRatingOutOfRange},
		{name: "six is rejected", value: 6, expectedError: review.ErrRatingOutOfRange},
		{name: "negative is rejected", value: -1, expectedError: review.ErrRatingOutOfRange},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rating, err := review.NewRating(tc.value)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.value, rating.Value())
		})
	}
}

func TestNewComment(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "text is kept as is", input: "Very helpful session", expected: "Very helpful session"},
		{name: "surrounding whitespace is trimmed", input: "  good  ", expected: "good"},
		{name: "empty comment becomes placeholder", input: "", expected: review.EmptyCommentPlaceholder},
		{name: "whitespace-only comment becomes placeholder", input: "   \t\n", expected: review.EmptyCommentPlaceholder},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, review.NewComment(tc.input).String())
		})
	}

	t.Run("overlong comment is truncated to the cap", func(t *testing.T) {
		long := strings.Repeat("a", review.MaxCommentLength+100)
		got := review.NewComment(long).String()
		assert.Len(t, got, review.MaxCommentLength)
	})

	t.Run("cap counts runes, not bytes", func(t *testing.T) {
		// 2000 three-byte runes: 6000 bytes but only 2000 characters,
		// so nothing gets cut and the string stays valid UTF-8.
		multibyte := strings.Repeat("あ", 2000)
		got := review.NewComment(multibyte).String()
		assert.Equal(t, multibyte, got)
		assert.True(t, utf8.ValidString(got))
	})

	t.Run("overlong multibyte comment is cut on a rune boundary", func(t *testing.T) {
		long := strings.Repeat("あ", review.MaxCommentLength+1)
		got := review.NewComment(long).String()
		assert.Equal(t, review.MaxCommentLength, utf8.RuneCountInString(got))
		assert.True(t, utf8.ValidString(got))
	})
}

func TestNewReview(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rating, err := review.NewRating(4)
	require.NoError(t, err)
	comment := review.NewComment("solid explanation")

	t.Run("valid review carries all fields", func(t *testing.T) {
		userID := uuid.New()
		tutorProfileID := uuid.New()
		bookingID := uuid.New()

		rev, err := review.NewReview(userID, tutorProfileID, bookingID, rating, comment, now)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, rev.ID())
		assert.Equal(t, bookingID, rev.BookingID())
		assert.Equal(t, userID, rev.UserID())
		assert.Equal(t, tutorProfileID, rev.TutorProfileID())
		assert.Equal(t, 4, rev.Rating().Value())
		assert.Equal(t, "solid explanation", rev.Comment().String())
		assert.Equal(t, now, rev.CreatedAt())
	})

	t.Run("nil booking id is rejected", func(t *testing.T) {
		_, err := review.NewReview(uuid.New(), uuid.New(), uuid.Nil, rating, comment, now)
		assert.ErrorIs(t, err, review.ErrMissingBookingID)
	})
}
