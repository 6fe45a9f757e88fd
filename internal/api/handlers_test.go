package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/RobertVMill/tech-news-tracker/internal/company"
	"github.com/RobertVMill/tech-news-tracker/internal/earnings"
	"github.com/RobertVMill/tech-news-tracker/internal/feed"
	"github.com/RobertVMill/tech-news-tracker/internal/fetch"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type updatesResponse struct {
	Updates []struct {
		Title       string `json:"title"`
		Content     string `json:"content"`
		SourceURL   string `json:"source_url"`
		PublishedAt string `json:"published_at"`
		Author      string `json:"author"`
		Type        string `json:"type"`
	} `json:"updates"`
	Error   string `json:"error"`
	Details string `json:"details"`
}

func rssItem(title, content, date string) string {
	return fmt.Sprintf(`<item>
		<title>%s</title>
		<link>https://example.com/p</link>
		<description>%s</description>
		<pubDate>%s</pubDate>
	</item>`, title, content, date)
}

func rssDoc(items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>t</title><link>https://example.com</link><description>d</description>` +
		strings.Join(items, "\n") + `</channel></rss>`
}

func serveRSS(t *testing.T, doc string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(doc))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newRouter(reg *company.Registry) *gin.Engine {
	svc := company.NewService(fetch.New(5*time.Second), reg)
	h := NewHandlers(svc, earnings.DefaultCalendar())

	g := gin.New()
	g.GET("/api/companies", h.ListCompanies)
	g.GET("/api/company-updates/:company", h.CompanyUpdates)
	g.GET("/api/earnings-calendar", h.EarningsCalendar)
	g.GET("/api/sources", h.NewsSources)
	return g
}

func doGET(t *testing.T, g *gin.Engine, path string) (*httptest.ResponseRecorder, updatesResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	g.ServeHTTP(w, req)

	var body updatesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestCompanyUpdatesMergedAcrossFeeds(t *testing.T) {
	blog := serveRSS(t, rssDoc(
		rssItem("b-newer", "body", "Tue, 02 Jan 2024 00:00:00 +0000"),
		rssItem("b-older", "body", "Mon, 01 Jan 2024 00:00:00 +0000"),
	))
	dev := serveRSS(t, rssDoc(
		rssItem("d-newest", "body", "Wed, 03 Jan 2024 00:00:00 +0000"),
	))

	g := newRouter(company.NewRegistry([]company.Company{{
		Slug: "acme",
		Name: "Acme",
		Sources: []company.Source{
			{URL: blog.URL, Kind: feed.KindBlog},
			{URL: dev.URL, Kind: feed.KindDeveloper},
		},
	}}))

	w, body := doGET(t, g, "/api/company-updates/acme")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body.Updates, 3)

	assert.Equal(t, "d-newest", body.Updates[0].Title)
	assert.Equal(t, "developer", body.Updates[0].Type)
	assert.Equal(t, "b-newer", body.Updates[1].Title)
	assert.Equal(t, "b-older", body.Updates[2].Title)
}

func TestCompanyUpdatesSanitizesAndTruncates(t *testing.T) {
	long := strings.Repeat("x", 400)
	srv := serveRSS(t, rssDoc(rssItem("&lt;b&gt;Hi&lt;/b&gt; there", long, "Tue, 02 Jan 2024 00:00:00 +0000")))

	g := newRouter(company.NewRegistry([]company.Company{{
		Slug:    "acme",
		Name:    "Acme",
		Sources: []company.Source{{URL: srv.URL, Kind: feed.KindBlog}},
	}}))

	w, body := doGET(t, g, "/api/company-updates/acme")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body.Updates, 1)

	assert.Equal(t, "Hi there", body.Updates[0].Title)
	assert.Equal(t, strings.Repeat("x", 300)+"...", body.Updates[0].Content)
	assert.Equal(t, "Acme", body.Updates[0].Author, "author falls back to the company name")
}

func TestCompanyUpdatesDatelessItemGetsFetchTime(t *testing.T) {
	srv := serveRSS(t, rssDoc(`<item><title>undated</title><description>body</description></item>`))

	g := newRouter(company.NewRegistry([]company.Company{{
		Slug:    "acme",
		Name:    "Acme",
		Sources: []company.Source{{URL: srv.URL, Kind: feed.KindBlog}},
	}}))

	w, body := doGET(t, g, "/api/company-updates/acme")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body.Updates, 1)

	published, err := time.Parse(time.RFC3339, body.Updates[0].PublishedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), published, 5*time.Second)
}

func TestCompanyUpdatesUpstreamFailure(t *testing.T) {
	ok := serveRSS(t, rssDoc(rssItem("fine", "body", "Tue, 02 Jan 2024 00:00:00 +0000")))
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	t.Cleanup(broken.Close)

	g := newRouter(company.NewRegistry([]company.Company{{
		Slug: "acme",
		Name: "Acme",
		Sources: []company.Source{
			{URL: ok.URL, Kind: feed.KindBlog},
			{URL: broken.URL, Kind: feed.KindDeveloper},
		},
	}}))

	w, body := doGET(t, g, "/api/company-updates/acme")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to fetch updates", body.Error)
	assert.NotEmpty(t, body.Details)
	assert.Empty(t, body.Updates, "no partial data on failure")
}

func TestCompanyUpdatesQualityFilterEmpty(t *testing.T) {
	srv := serveRSS(t, rssDoc(
		`<item><description>no title 1</description></item>`,
		`<item><description>no title 2</description></item>`,
	))

	g := newRouter(company.NewRegistry([]company.Company{{
		Slug:        "acme",
		Name:        "Acme",
		FilterEmpty: true,
		Sources:     []company.Source{{URL: srv.URL, Kind: feed.KindBlog}},
	}}))

	w, body := doGET(t, g, "/api/company-updates/acme")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "No updates available", body.Error)
}

func TestCompanyUpdatesUnknownCompany(t *testing.T) {
	g := newRouter(company.DefaultRegistry())

	w, body := doGET(t, g, "/api/company-updates/initech")
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Unknown company", body.Error)
}

func TestCompanyUpdatesEmptyFeedNoFilter(t *testing.T) {
	srv := serveRSS(t, rssDoc())

	g := newRouter(company.NewRegistry([]company.Company{{
		Slug:    "acme",
		Name:    "Acme",
		Sources: []company.Source{{URL: srv.URL, Kind: feed.KindBlog}},
	}}))

	w, body := doGET(t, g, "/api/company-updates/acme")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body.Updates)
	assert.Empty(t, body.Error)
}

func TestListCompanies(t *testing.T) {
	g := newRouter(company.DefaultRegistry())

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/companies", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Companies []struct {
			Slug string `json:"slug"`
			Name string `json:"name"`
		} `json:"companies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Companies, 8)
	assert.Equal(t, "google", body.Companies[0].Slug)
}

func TestEarningsCalendarSplit(t *testing.T) {
	svc := company.NewService(fetch.New(time.Second), company.DefaultRegistry())
	h := NewHandlers(svc, earnings.DefaultCalendar())
	h.now = func() time.Time { return time.Date(2024, 4, 28, 0, 0, 0, 0, time.UTC) }

	g := gin.New()
	g.GET("/api/earnings-calendar", h.EarningsCalendar)

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/earnings-calendar", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Upcoming []earnings.Call `json:"upcoming"`
		Recent   []earnings.Call `json:"recent"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Upcoming, 3)
	assert.Len(t, body.Recent, 2)
	assert.Equal(t, "Meta", body.Recent[0].Company, "recent sorted ascending")
}

func TestNewsSources(t *testing.T) {
	g := newRouter(company.DefaultRegistry())

	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sources", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Sources []NewsSource `json:"sources"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Sources, 5)
	assert.Equal(t, "TechCrunch", body.Sources[0].Name)
}
