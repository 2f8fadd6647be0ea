package sanitize

import "github.com/microcosm-cc/bluemonday"

// Sanitizer strips unsafe content from user-supplied text before it is
// persisted. Review comments are the only caller today.
type Sanitizer interface {
	Sanitize(text string) string
}

type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

func NewHTMLSanitizer() Sanitizer {
	return &HTMLSanitizer{policy: bluemonday.StrictPolicy()}
}

func (s *HTMLSanitizer) Sanitize(text string) string {
	return s.policy.Sanitize(text)
}
