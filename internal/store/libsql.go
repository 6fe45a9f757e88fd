package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/tursodatabase/go-libsql"
)

type SQLStore struct {
	db *sql.DB
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		auth_provider TEXT,
		provider_subject TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_provider
		ON profiles (auth_provider, provider_subject)`,
	`CREATE TABLE IF NOT EXISTS articles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_user ON articles (user_id)`,
	`CREATE TABLE IF NOT EXISTS article_references (
		id TEXT PRIMARY KEY,
		article_id TEXT NOT NULL REFERENCES articles(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		content TEXT NOT NULL DEFAULT ''
	)`,
}

// Local sqlite: "file:./data/technews.db" or ":memory:"
// TursoDB: "libsql://[db-name]-[org].turso.io?authToken=..."
func NewSQLStore(dsn string) (*SQLStore, error) {
	db, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// enable foreign keys for SQLite; remote Turso may not support the PRAGMA
	db.Exec("PRAGMA foreign_keys=ON")

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLStore{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLStore) ensureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// returns the database connection for migrations and tests
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// --- Profile operations ---

func (s *SQLStore) CreateProfile(ctx context.Context, profile *Profile) error {
	query := `
		INSERT INTO profiles (id, email, auth_provider, provider_subject, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		profile.ID,
		profile.Email,
		profile.AuthProvider,
		profile.ProviderSubject,
		profile.CreatedAt.Format(time.RFC3339),
		profile.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *SQLStore) GetProfileByID(ctx context.Context, id string) (*Profile, error) {
	query := `
		SELECT id, email, auth_provider, provider_subject, created_at, updated_at
		FROM profiles WHERE id = ?
	`
	return s.scanProfile(s.db.QueryRowContext(ctx, query, id))
}

func (s *SQLStore) GetProfileByEmail(ctx context.Context, email string) (*Profile, error) {
	query := `
		SELECT id, email, auth_provider, provider_subject, created_at, updated_at
		FROM profiles WHERE email = ?
	`
	return s.scanProfile(s.db.QueryRowContext(ctx, query, email))
}

func (s *SQLStore) GetProfileByProvider(ctx context.Context, provider, subject string) (*Profile, error) {
	query := `
		SELECT id, email, auth_provider, provider_subject, created_at, updated_at
		FROM profiles WHERE auth_provider = ? AND provider_subject = ?
	`
	return s.scanProfile(s.db.QueryRowContext(ctx, query, provider, subject))
}

func (s *SQLStore) scanProfile(row *sql.Row) (*Profile, error) {
	var profile Profile
	var createdAt, updatedAt string
	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&profile.AuthProvider,
		&profile.ProviderSubject,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	profile.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	profile.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &profile, nil
}

// --- Article operations ---

// CreateArticle inserts the article and its references in one transaction.
func (s *SQLStore) CreateArticle(ctx context.Context, article *Article) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO articles (id, user_id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		article.ID,
		article.UserID,
		article.Title,
		article.Content,
		article.CreatedAt.Format(time.RFC3339),
		article.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert article: %w", err)
	}

	refQuery := `
		INSERT INTO article_references (id, article_id, url, content)
		VALUES (?, ?, ?, ?)
	`
	for _, ref := range article.References {
		if _, err := tx.ExecContext(ctx, refQuery, ref.ID, article.ID, ref.URL, ref.Content); err != nil {
			return fmt.Errorf("insert reference: %w", err)
		}
	}

	return tx.Commit()
}

func (s *SQLStore) GetArticleByID(ctx context.Context, id string) (*Article, error) {
	query := `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM articles WHERE id = ?
	`
	var article Article
	var createdAt, updatedAt string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID,
		&article.UserID,
		&article.Title,
		&article.Content,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan article: %w", err)
	}
	article.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	article.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	refs, err := s.listReferences(ctx, id)
	if err != nil {
		return nil, err
	}
	article.References = refs
	return &article, nil
}

func (s *SQLStore) ListArticles(ctx context.Context) ([]Article, error) {
	query := `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM articles ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()
	return scanArticles(rows)
}

func (s *SQLStore) ListArticlesByUserID(ctx context.Context, userID string) ([]Article, error) {
	query := `
		SELECT id, user_id, title, content, created_at, updated_at
		FROM articles WHERE user_id = ? ORDER BY created_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()
	return scanArticles(rows)
}

func (s *SQLStore) CountArticlesByUserID(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM articles WHERE user_id = ?`
	var count int
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

func (s *SQLStore) DeleteArticle(ctx context.Context, id string) error {
	query := `DELETE FROM articles WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) listReferences(ctx context.Context, articleID string) ([]Reference, error) {
	query := `
		SELECT id, article_id, url, content
		FROM article_references WHERE article_id = ? ORDER BY rowid
	`
	rows, err := s.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("query references: %w", err)
	}
	defer rows.Close()

	var refs []Reference
	for rows.Next() {
		var ref Reference
		if err := rows.Scan(&ref.ID, &ref.ArticleID, &ref.URL, &ref.Content); err != nil {
			return nil, fmt.Errorf("scan reference: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func scanArticles(rows *sql.Rows) ([]Article, error) {
	var articles []Article
	for rows.Next() {
		var article Article
		var createdAt, updatedAt string
		err := rows.Scan(
			&article.ID,
			&article.UserID,
			&article.Title,
			&article.Content,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		article.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		article.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		articles = append(articles, article)
	}
	return articles, rows.Err()
}

// isUniqueConstraintError checks if the error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed")
}
