package feed

// Item is one raw entry from an upstream feed or scraped page. Upstream
// shapes are inconsistent and untrusted, so the boundary type is a permissive
// map; it is converted into an UpdateRecord by MapItem and never escapes
// past the mapper.
type Item map[string]any

// Kind tags which of a company's feeds a record came from.
type Kind string

const (
	KindBlog      Kind = "blog"
	KindDeveloper Kind = "developer"
)

// UpdateRecord is the normalized output unit shown to clients.
type UpdateRecord struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	SourceURL   string `json:"source_url"`
	PublishedAt string `json:"published_at"`
	Author      string `json:"author"`
	Kind        Kind   `json:"type"`

	// epoch milliseconds of PublishedAt, used as the sort key
	publishedMs int64
}

// FieldPriorities lists, per logical field, the raw item keys to try in
// order. Nil slices fall back to the defaults observed across company feeds.
type FieldPriorities struct {
	Title   []string `yaml:"title"`
	Content []string `yaml:"content"`
	Link    []string `yaml:"link"`
	Author  []string `yaml:"author"`
	Date    []string `yaml:"date"`
}

func defaultPriorities() FieldPriorities {
	return FieldPriorities{
		Title:   []string{"title"},
		Content: []string{"contentSnippet", "content", "description", "summary"},
		Link:    []string{"link", "url"},
		Author:  []string{"creator", "author"},
		Date:    []string{"pubDate", "published", "isoDate", "updated"},
	}
}

func (p FieldPriorities) withDefaults() FieldPriorities {
	def := defaultPriorities()
	if p.Title == nil {
		p.Title = def.Title
	}
	if p.Content == nil {
		p.Content = def.Content
	}
	if p.Link == nil {
		p.Link = def.Link
	}
	if p.Author == nil {
		p.Author = def.Author
	}
	if p.Date == nil {
		p.Date = def.Date
	}
	return p
}

// MapConfig parameterizes MapItem for one source.
type MapConfig struct {
	Priorities     FieldPriorities
	FallbackAuthor string
	Kind           Kind
}
