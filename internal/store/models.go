package store

import "time"

type Profile struct {
	ID              string
	Email           string
	AuthProvider    *string // identity provider name (nil for legacy rows)
	ProviderSubject *string // provider's user ID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Article struct {
	ID         string
	UserID     string
	Title      string
	Content    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	References []Reference
}

// Reference is an optional link attached to an article.
type Reference struct {
	ID        string
	ArticleID string
	URL       string
	Content   string
}
