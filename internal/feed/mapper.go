package feed

import (
	"strings"
	"time"
)

// placeholder title for records whose source item carries none
const untitled = "Untitled"

// MapItem converts one raw item into an UpdateRecord using the source's
// field-priority lists. It is a pure transform: coalesce each logical field,
// sanitize the title and content, normalize the publish date (falling back
// to now), and fall back to the source's canonical author.
//
// The second return value reports whether the record passes the quality
// filter (non-empty title and content after sanitization). Whether to drop
// failing records is a per-company policy, so the decision is left to the
// caller; the returned record is always usable either way.
func MapItem(item Item, cfg MapConfig, now time.Time) (UpdateRecord, bool) {
	pri := cfg.Priorities.withDefaults()

	title := Sanitize(Coalesce(item, pri.Title, ""))
	content := Sanitize(Coalesce(item, pri.Content, ""))
	link := strings.TrimSpace(Coalesce(item, pri.Link, ""))

	author := strings.TrimSpace(Sanitize(Coalesce(item, pri.Author, "")))
	if author == "" {
		author = cfg.FallbackAuthor
	}

	candidates := make([]string, 0, len(pri.Date))
	for _, key := range pri.Date {
		if v, ok := item[key]; ok {
			candidates = append(candidates, stringify(v))
		}
	}
	published := NormalizeDate(now, candidates...)

	ok := title != "" && content != ""
	if title == "" {
		title = untitled
	}

	return UpdateRecord{
		Title:       title,
		Content:     content,
		SourceURL:   link,
		PublishedAt: published.UTC().Format(time.RFC3339),
		Author:      author,
		Kind:        cfg.Kind,
		publishedMs: published.UnixMilli(),
	}, ok
}

// MapItems maps a batch of raw items. When filterEmpty is set, items failing
// the quality filter are dropped; otherwise every item yields a record.
func MapItems(items []Item, cfg MapConfig, now time.Time, filterEmpty bool) []UpdateRecord {
	records := make([]UpdateRecord, 0, len(items))
	for _, item := range items {
		rec, ok := MapItem(item, cfg, now)
		if filterEmpty && !ok {
			continue
		}
		records = append(records, rec)
	}
	return records
}
