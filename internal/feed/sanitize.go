package feed

import (
	"regexp"
	"strings"
)

// PreviewLength bounds the plain-text content preview.
const PreviewLength = 300

const ellipsis = "..."

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)

	// fixed set of named entities seen in company feeds; not a general decoder
	entityReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
	)
)

// Sanitize reduces an arbitrary feed value to a bounded plain-text preview:
// markup tags are stripped, whitespace runs collapse to a single space, a
// small set of named entities is decoded, and the result is trimmed and
// truncated to PreviewLength with an ellipsis marker. Malformed input
// degrades to the empty string; Sanitize never errors.
func Sanitize(v any) string {
	s := stringify(v)
	s = tagRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = entityReplacer.Replace(s)
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) <= PreviewLength {
		return s
	}
	return string(runes[:PreviewLength]) + ellipsis
}
