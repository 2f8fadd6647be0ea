package review

import "strings"

const (
	// Runes, not bytes. Truncating on a byte count could split a multi-byte
	// rune and produce invalid UTF-8, which Postgres rejects.
	MaxCommentLength = 5000

	// Stored in place of an absent comment, matching what review listings
	// render for comment-less reviews.
	EmptyCommentPlaceholder = "no comment"
)

type Rating struct {
	value int
}

func NewRating(v int) (Rating, error) {
	if v < 1 || v > 5 {
		return Rating{}, ErrRatingOutOfRange
	}
	return Rating{value: v}, nil
}

func (r Rating) Value() int { return r.value }

type Comment struct {
	text string
}

// NewComment normalizes an already-sanitized comment: empty input becomes the
// placeholder, anything over MaxCommentLength is truncated. It never rejects.
func NewComment(sanitized string) Comment {
	t := strings.TrimSpace(sanitized)
	if t == "" {
		return Comment{text: EmptyCommentPlaceholder}
	}
	if runes := []rune(t); len(runes) > MaxCommentLength {
		t = string(runes[:MaxCommentLength])
	}
	return Comment{text: t}
}

func (c Comment) String() string { return c.text }
