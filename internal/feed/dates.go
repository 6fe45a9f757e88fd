package feed

import (
	"strings"
	"time"
)

// layouts seen across company feeds, most common first
var dateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ParseDate parses a loosely-formatted timestamp string.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NormalizeDate returns the first candidate that parses to a valid calendar
// date, or now when none do, so that sorting by publish time is always
// well-defined.
func NormalizeDate(now time.Time, candidates ...string) time.Time {
	for _, c := range candidates {
		if t, ok := ParseDate(c); ok {
			return t
		}
	}
	return now
}
