package company

import (
	"strings"

	"github.com/RobertVMill/tech-news-tracker/internal/feed"
)

// Source is one upstream feed (or scraped page) belonging to a company.
type Source struct {
	URL  string    `yaml:"url"`
	Kind feed.Kind `yaml:"kind"`

	// Scrape marks URL as a public HTML page rather than an RSS/Atom feed.
	Scrape bool `yaml:"scrape"`

	// ScrapeFallbackURL, when set, is an HTML page scraped if the feed
	// fetch fails (some companies block their feed endpoint).
	ScrapeFallbackURL string `yaml:"scrape_fallback_url"`

	Fields feed.FieldPriorities `yaml:"fields"`
}

// Company is one entry in the per-company configuration table.
type Company struct {
	Slug    string   `yaml:"slug"`
	Name    string   `yaml:"name"`
	Sources []Source `yaml:"sources"`

	// FilterEmpty drops records with no usable title or content and turns
	// an empty result into a no-updates error. Off for companies whose
	// endpoints historically returned 200 with an empty list.
	FilterEmpty bool `yaml:"filter_empty"`
}

// Registry holds the company table in a stable display order.
type Registry struct {
	companies map[string]Company
	order     []string
}

func NewRegistry(companies []Company) *Registry {
	r := &Registry{companies: make(map[string]Company, len(companies))}
	for _, c := range companies {
		slug := strings.ToLower(c.Slug)
		if _, exists := r.companies[slug]; !exists {
			r.order = append(r.order, slug)
		}
		r.companies[slug] = c
	}
	return r
}

func (r *Registry) Lookup(slug string) (Company, bool) {
	c, ok := r.companies[strings.ToLower(strings.TrimSpace(slug))]
	return c, ok
}

func (r *Registry) Companies() []Company {
	out := make([]Company, 0, len(r.order))
	for _, slug := range r.order {
		out = append(out, r.companies[slug])
	}
	return out
}

// DefaultRegistry returns the built-in company table. A deployment can
// replace it wholesale with a companies.yaml file (see internal/config).
func DefaultRegistry() *Registry {
	return NewRegistry([]Company{
		{
			Slug: "google",
			Name: "Google",
			Sources: []Source{
				{URL: "https://blog.google/rss/", Kind: feed.KindBlog},
				{URL: "https://android-developers.googleblog.com/feeds/posts/default", Kind: feed.KindDeveloper},
			},
		},
		{
			Slug:        "apple",
			Name:        "Apple",
			FilterEmpty: true,
			Sources: []Source{
				{URL: "https://www.apple.com/newsroom/rss-feed.rss", Kind: feed.KindBlog},
			},
		},
		{
			Slug:        "microsoft",
			Name:        "Microsoft",
			FilterEmpty: true,
			Sources: []Source{
				{URL: "https://blogs.microsoft.com/feed/", Kind: feed.KindBlog},
				{URL: "https://github.com/microsoft/vscode/releases.atom", Kind: feed.KindDeveloper},
			},
		},
		{
			Slug: "meta",
			Name: "Meta",
			Sources: []Source{
				{URL: "https://about.fb.com/news/feed/", Kind: feed.KindBlog},
			},
		},
		{
			Slug: "amazon",
			Name: "Amazon",
			Sources: []Source{
				{URL: "https://blog.aboutamazon.com/feed", Kind: feed.KindBlog},
			},
		},
		{
			Slug: "openai",
			Name: "OpenAI",
			Sources: []Source{
				{
					URL:               "https://openai.com/blog/rss.xml",
					Kind:              feed.KindBlog,
					ScrapeFallbackURL: "https://openai.com/news/",
				},
			},
		},
		{
			Slug: "nvidia",
			Name: "NVIDIA",
			Sources: []Source{
				{URL: "https://blogs.nvidia.com/feed/", Kind: feed.KindBlog},
			},
		},
		{
			Slug: "tesla",
			Name: "Tesla",
			Sources: []Source{
				{URL: "https://www.tesla.com/blog/rss.xml", Kind: feed.KindBlog},
			},
		},
	})
}
