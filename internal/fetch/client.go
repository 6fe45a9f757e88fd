package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/RobertVMill/tech-news-tracker/internal/feed"

	"github.com/mmcdole/gofeed"
)

// cap on upstream response bodies; company blog feeds are far smaller
const maxResponseSize = 10 * 1024 * 1024

type Client struct {
	http      *http.Client
	parser    *gofeed.Parser
	userAgent string
}

func New(timeout time.Duration) *Client {
	return &Client{
		http:      &http.Client{Timeout: timeout},
		parser:    gofeed.NewParser(),
		userAgent: "tech-news-tracker/1.0 (company feed reader)",
	}
}

// FetchFeed retrieves and parses an RSS or Atom feed, projecting each entry
// into the permissive feed.Item shape for the mapper.
func (c *Client) FetchFeed(ctx context.Context, url string) ([]feed.Item, error) {
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	parsed, err := c.parser.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", url, err)
	}

	items := make([]feed.Item, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		items = append(items, itemToRaw(item))
	}
	return items, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/html, */*")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if int64(len(body)) > maxResponseSize {
		return nil, fmt.Errorf("fetch %s: response exceeds %d bytes", url, maxResponseSize)
	}
	return body, nil
}

// itemToRaw flattens a gofeed entry into the loose key space the per-source
// priority lists select from. Keys mirror the names company feeds actually
// use, so one priority vocabulary covers RSS, Atom and scraped sources.
func itemToRaw(item *gofeed.Item) feed.Item {
	raw := feed.Item{}

	setIf(raw, "title", item.Title)
	setIf(raw, "link", item.Link)
	setIf(raw, "description", item.Description)
	setIf(raw, "content", item.Content)
	setIf(raw, "pubDate", item.Published)
	setIf(raw, "updated", item.Updated)

	if item.Link == "" && len(item.Links) > 0 {
		setIf(raw, "link", item.Links[0])
	}

	if item.Author != nil {
		setIf(raw, "author", item.Author.Name)
	}
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		setIf(raw, "creator", item.DublinCoreExt.Creator[0])
	}

	if item.PublishedParsed != nil {
		raw["isoDate"] = item.PublishedParsed.UTC().Format(time.RFC3339)
	} else if item.UpdatedParsed != nil {
		raw["isoDate"] = item.UpdatedParsed.UTC().Format(time.RFC3339)
	}

	for key, val := range item.Custom {
		if _, exists := raw[key]; !exists {
			setIf(raw, key, val)
		}
	}
	return raw
}

func setIf(raw feed.Item, key, val string) {
	if val != "" {
		raw[key] = val
	}
}
