package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <channel>
    <title>Example Blog</title>
    <link>https://example.com</link>
    <description>test feed</description>
    <item>
      <title>First Post</title>
      <link>https://example.com/post/1</link>
      <dc:creator>Jane Doe</dc:creator>
      <pubDate>Tue, 02 Jan 2024 10:00:00 +0000</pubDate>
      <description>&lt;p&gt;First body&lt;/p&gt;</description>
    </item>
    <item>
      <title>Second Post</title>
      <link>https://example.com/post/2</link>
      <pubDate>Mon, 01 Jan 2024 10:00:00 +0000</pubDate>
      <description>Second body</description>
    </item>
  </channel>
</rss>`

const atomFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Dev Feed</title>
  <updated>2024-01-03T00:00:00Z</updated>
  <entry>
    <id>tag:example.com,2024:1</id>
    <title>Release 1.2</title>
    <link href="https://example.com/releases/1.2"/>
    <author><name>Release Bot</name></author>
    <published>2024-01-03T09:00:00Z</published>
    <content type="html">release notes</content>
  </entry>
</feed>`

func feedServer(t *testing.T, contentType, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchFeedRSS(t *testing.T) {
	srv := feedServer(t, "application/rss+xml", rssFixture)
	c := New(5 * time.Second)

	items, err := c.FetchFeed(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "First Post", items[0]["title"])
	assert.Equal(t, "https://example.com/post/1", items[0]["link"])
	assert.Equal(t, "Jane Doe", items[0]["creator"])
	assert.Equal(t, "Tue, 02 Jan 2024 10:00:00 +0000", items[0]["pubDate"])
	assert.Equal(t, "2024-01-02T10:00:00Z", items[0]["isoDate"])
	assert.Contains(t, items[0]["description"], "First body")

	_, hasCreator := items[1]["creator"]
	assert.False(t, hasCreator, "second item has no dc:creator")
}

func TestFetchFeedAtom(t *testing.T) {
	srv := feedServer(t, "application/atom+xml", atomFixture)
	c := New(5 * time.Second)

	items, err := c.FetchFeed(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Release 1.2", items[0]["title"])
	assert.Equal(t, "https://example.com/releases/1.2", items[0]["link"])
	assert.Equal(t, "Release Bot", items[0]["author"])
	assert.Equal(t, "release notes", items[0]["content"])
}

func TestFetchFeedUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()
	c := New(5 * time.Second)

	_, err := c.FetchFeed(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestFetchFeedNotAFeed(t *testing.T) {
	srv := feedServer(t, "text/html", "<html><body>not xml</body></html>")
	c := New(5 * time.Second)

	_, err := c.FetchFeed(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse feed")
}

func TestFetchFeedContextCancelled(t *testing.T) {
	srv := feedServer(t, "application/rss+xml", rssFixture)
	c := New(5 * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.FetchFeed(ctx, srv.URL)
	assert.Error(t, err)
}
