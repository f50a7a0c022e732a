// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips markup from free-text inputs before they are
// stored: answer texts, open-option override values, and configuration
// values all pass through here.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var strict = bluemonday.StrictPolicy()

// Strip removes all HTML from s, leaving plain text.
func Strip(s string) string {
	return strict.Sanitize(s)
}
