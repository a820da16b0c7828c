// Package validation checks and normalizes raw generation inputs against
// each tool's declared fields, and strips hostile markup from free text.
//
// The rules are derived from the tool definition itself: a select input's
// options are its closed value set, a file input's accept list is its MIME
// allow-list. Validation runs server-side on every request regardless of
// what the client already checked.
package validation

import (
	"regexp"
	"strings"
)

// Sanitization is advisory stripping, not rejection: legitimate plain text
// passes through unchanged apart from whitespace normalization.
var (
	scriptBlockPattern  = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script>`)
	htmlTagPattern      = regexp.MustCompile(`<[^>]*>`)
	eventHandlerPattern = regexp.MustCompile(`(?i)on\w+\s*=\s*["'][^"']*["']`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
)

// SanitizeText strips script blocks, HTML tags, and inline event-handler
// attributes from input, then collapses runs of whitespace to single
// spaces. It never fails; hostile markup simply comes out defanged.
func SanitizeText(input string) string {
	out := scriptBlockPattern.ReplaceAllString(input, "")
	out = htmlTagPattern.ReplaceAllString(out, "")
	out = eventHandlerPattern.ReplaceAllString(out, "")
	out = whitespacePattern.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}
