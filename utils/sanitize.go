package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Study notes are plain text, not user-authored HTML, so the strict policy
// strips all markup instead of allowing a UGC subset.
var sanitizer = bluemonday.StrictPolicy()

// Sanitize strips HTML from free-form user input before it is persisted.
func Sanitize(input string) string {
	return strings.TrimSpace(sanitizer.Sanitize(input))
}
