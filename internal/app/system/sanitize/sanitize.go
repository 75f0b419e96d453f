// internal/app/system/sanitize/sanitize.go

// Package sanitize strips markup from user-supplied free-text fields
// (group, court and schedule names) before they are stored. The API
// returns these strings to three different clients, so nothing that a
// browser could interpret may survive.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

// Text removes all HTML from s and trims the result.
func Text(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
