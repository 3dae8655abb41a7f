// Package sanitize strips markup from user-supplied text.
package sanitize

import (
	"html"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripHTML removes HTML tags and decodes entities from the input.
func StripHTML(s string) string {
	stripped := tagPattern.ReplaceAllString(s, "")
	return strings.TrimSpace(html.UnescapeString(stripped))
}
