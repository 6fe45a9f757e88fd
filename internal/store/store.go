package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

type Store interface {
	CreateProfile(ctx context.Context, profile *Profile) error
	GetProfileByID(ctx context.Context, id string) (*Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*Profile, error)
	GetProfileByProvider(ctx context.Context, provider, subject string) (*Profile, error)

	CreateArticle(ctx context.Context, article *Article) error
	GetArticleByID(ctx context.Context, id string) (*Article, error)
	ListArticles(ctx context.Context) ([]Article, error)
	ListArticlesByUserID(ctx context.Context, userID string) ([]Article, error)
	CountArticlesByUserID(ctx context.Context, userID string) (int, error)
	DeleteArticle(ctx context.Context, id string) error

	Close() error
}

// supported DSN formats:
//
//	Local sqlite: "file:./data/technews.db" or ":memory:"
//	TursoDB: "libsql://[db-name]-[org].turso.io?authToken=..."
//
// NOTE: all formats are handled by the libsql driver which supports both local and remote.
func NewStore(dsn string) (Store, error) {
	switch {
	case strings.HasPrefix(dsn, "file:"), dsn == ":memory:", strings.HasPrefix(dsn, ":memory:"), strings.HasPrefix(dsn, "libsql://"):
		s, err := NewSQLStore(dsn)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported database DSN: %s (expected file:, :memory:, or libsql://)", dsn)
	}
}
