//go:build unit

package sanitize_test

import (
	"testing"

	"tutorhub/internal/pkg/sanitize"

	"github.com/stretchr/testify/assert"
)

func TestHTMLSanitizer_Sanitize(t *testing.T) {
	s := sanitize.NewHTMLSanitizer()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text passes through",
			input:    "Great lesson, very patient tutor.",
			expected: "Great lesson, very patient tutor.",
		},
		{
			name:     "script tags are stripped",
			input:    `Nice <script>alert("xss")</script> session`,
			expected: "Nice  session",
		},
		{
			name:     "all markup is removed",
			input:    `<b>bold</b> and <a href="http://example.com">link</a>`,
			expected: "bold and link",
		},
		{
			name:     "empty input stays empty",
			input:    "",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, s.Sanitize(tc.input))
		})
	}
}
