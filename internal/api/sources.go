package api

// NewsSource is one entry in the curated reading directory.
type NewsSource struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

var newsSources = []NewsSource{
	{
		Name:        "TechCrunch",
		URL:         "https://techcrunch.com",
		Description: "Leading technology media property, dedicated to obsessively profiling startups, reviewing new Internet products, and breaking tech news.",
		Category:    "Tech News",
	},
	{
		Name:        "The Verge",
		URL:         "https://www.theverge.com",
		Description: "Covers the intersection of technology, science, art, and culture.",
		Category:    "Tech News",
	},
	{
		Name:        "Hacker News",
		URL:         "https://news.ycombinator.com",
		Description: "Social news website focusing on computer science and entrepreneurship.",
		Category:    "Tech Community",
	},
	{
		Name:        "MIT Technology Review",
		URL:         "https://www.technologyreview.com",
		Description: "Independent media company founded at MIT, covering the newest technologies and their commercial, social, and political impacts.",
		Category:    "Tech Analysis",
	},
	{
		Name:        "Wired",
		URL:         "https://www.wired.com",
		Description: "In-depth coverage of current and future trends in technology.",
		Category:    "Tech Culture",
	},
}
