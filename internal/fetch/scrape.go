package fetch

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/RobertVMill/tech-news-tracker/internal/feed"

	"golang.org/x/net/html"
)

// ScrapePage extracts update items from a public blog index page for
// companies whose feed is unavailable or blocked. It looks for <article>
// elements first, then falls back to h2/h3 headings that wrap a link.
// A page with no recognizable items yields an empty slice, not an error.
func (c *Client) ScrapePage(ctx context.Context, pageURL string) ([]feed.Item, error) {
	body, err := c.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse page url: %w", err)
	}

	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html %s: %w", pageURL, err)
	}

	items := collectArticles(doc, base)
	if len(items) == 0 {
		items = collectHeadingLinks(doc, base)
	}
	return items, nil
}

// collectArticles builds one item per <article> subtree.
func collectArticles(doc *html.Node, base *url.URL) []feed.Item {
	var items []feed.Item
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "article" {
			if item := articleToItem(n, base); item != nil {
				items = append(items, item)
			}
			return false // don't descend into nested articles
		}
		return true
	})
	return items
}

func articleToItem(article *html.Node, base *url.URL) feed.Item {
	anchor := findNode(article, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "a" && attr(n, "href") != ""
	})
	if anchor == nil {
		return nil
	}

	item := feed.Item{}
	if title := strings.TrimSpace(textContent(anchor)); title != "" {
		item["title"] = title
	}
	if href := resolveHref(attr(anchor, "href"), base); href != "" {
		item["link"] = href
	}

	if p := findNode(article, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "p"
	}); p != nil {
		if desc := strings.TrimSpace(textContent(p)); desc != "" {
			item["description"] = desc
		}
	}

	if t := findNode(article, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "time"
	}); t != nil {
		if dt := attr(t, "datetime"); dt != "" {
			item["pubDate"] = dt
		} else if text := strings.TrimSpace(textContent(t)); text != "" {
			item["pubDate"] = text
		}
	}
	return item
}

// collectHeadingLinks is the looser fallback: every h2/h3 containing a link
// becomes a title-and-link item.
func collectHeadingLinks(doc *html.Node, base *url.URL) []feed.Item {
	var items []feed.Item
	walk(doc, func(n *html.Node) bool {
		if n.Type == html.ElementNode && (n.Data == "h2" || n.Data == "h3") {
			anchor := findNode(n, func(c *html.Node) bool {
				return c.Type == html.ElementNode && c.Data == "a" && attr(c, "href") != ""
			})
			if anchor != nil {
				title := strings.TrimSpace(textContent(anchor))
				href := resolveHref(attr(anchor, "href"), base)
				if title != "" && href != "" {
					items = append(items, feed.Item{"title": title, "link": href})
				}
			}
			return false
		}
		return true
	})
	return items
}

// walk visits nodes depth-first; fn returning false prunes the subtree.
func walk(n *html.Node, fn func(*html.Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) bool {
		if found != nil {
			return false
		}
		if match(c) {
			found = c
			return false
		}
		return true
	})
	return found
}

func textContent(n *html.Node) string {
	var b strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		return true
	})
	return b.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func resolveHref(href string, base *url.URL) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
