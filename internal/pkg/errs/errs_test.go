//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"tutorhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSeesMarkedSentinel(t *testing.T) {
	sentinel := errs.New("booking not found")
	cause := errs.Wrap(errors.New("no rows in result set"), "failed to find booking")

	marked := errs.Mark(cause, sentinel)

	assert.True(t, errs.Is(marked, sentinel), "mark must match the sentinel")
	assert.True(t, errs.Is(errs.Wrap(marked, "outer"), sentinel), "mark must survive further wrapping")
	assert.False(t, errs.Is(marked, errs.New("other")), "unrelated sentinel must not match")

	// Marks live outside the unwrap chain, so the standard comparison cannot
	// see them. Anything matching sentinels attached with Mark goes through
	// errs.Is.
	assert.False(t, errors.Is(marked, sentinel))
}

func TestIsMatchesPlainWrapChain(t *testing.T) {
	sentinel := errs.New("invalid cursor")
	wrapped := errs.Wrap(sentinel, "decoding page token")

	assert.True(t, errs.Is(wrapped, sentinel))
	assert.True(t, errs.Is(sentinel, sentinel))
	assert.False(t, errs.Is(nil, sentinel))
}

func TestMarkNilCauseReturnsSentinel(t *testing.T) {
	sentinel := errs.New("already reviewed")
	require.Equal(t, sentinel, errs.Mark(nil, sentinel))
}
