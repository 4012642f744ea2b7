package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/content-engagement-api/internal/database"
	"github.com/content-engagement-api/internal/models"
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

const articleColumns = `id, slug, title, abstract_markdown, abstract, content_markdown, content,
	status, on_top, tags, author_id, raw_views, visitor_views, likes, created_at, modified_at`

// Create inserts a new article and fills in its assigned id
func (r *articleRepo) Create(ctx context.Context, article *models.Article) error {
	tagsJSON, _ := json.Marshal(article.Tags)
	if article.Tags == nil {
		tagsJSON = []byte("[]")
	}

	now := time.Now().UTC()
	article.CreatedAt = now
	article.ModifiedAt = now

	query := `
		INSERT INTO articles (slug, title, abstract_markdown, abstract, content_markdown, content,
			status, on_top, tags, author_id, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		article.Slug, article.Title, article.AbstractMarkdown, article.Abstract,
		article.ContentMarkdown, article.Content, article.Status, article.OnTop,
		tagsJSON, article.AuthorID, article.CreatedAt, article.ModifiedAt,
	).Scan(&article.ID)
}

// Update rewrites an existing article, derived fields included
func (r *articleRepo) Update(ctx context.Context, article *models.Article) error {
	tagsJSON, _ := json.Marshal(article.Tags)
	if article.Tags == nil {
		tagsJSON = []byte("[]")
	}

	article.ModifiedAt = time.Now().UTC()

	query := `
		UPDATE articles
		SET slug = $2, title = $3, abstract_markdown = $4, abstract = $5,
			content_markdown = $6, content = $7, status = $8, on_top = $9,
			tags = $10, modified_at = $11
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		article.ID, article.Slug, article.Title, article.AbstractMarkdown, article.Abstract,
		article.ContentMarkdown, article.Content, article.Status, article.OnTop,
		tagsJSON, article.ModifiedAt,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves an article by ID
func (r *articleRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetBySlug retrieves an article by slug
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := `SELECT ` + articleColumns + ` FROM articles WHERE slug = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, slug))
}

// SlugExists checks if an article with the given slug exists
func (r *articleRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM articles WHERE slug = $1)", slug).Scan(&exists)
	return exists, err
}

// ListPublished returns a page of published articles, pinned first then
// newest first, matching the content feed ordering.
func (r *articleRepo) ListPublished(ctx context.Context, offset, limit int) ([]*models.Article, error) {
	query := `
		SELECT ` + articleColumns + ` FROM articles
		WHERE status = $1
		ORDER BY on_top DESC, created_at DESC
		OFFSET $2 LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, models.StatusPublished, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListPopular returns the most viewed published articles
func (r *articleRepo) ListPopular(ctx context.Context, limit int) ([]*models.Article, error) {
	query := `
		SELECT ` + articleColumns + ` FROM articles
		WHERE status = $1
		ORDER BY raw_views DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, models.StatusPublished, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// CountPublished returns the number of published articles
func (r *articleRepo) CountPublished(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM articles WHERE status = $1", models.StatusPublished).Scan(&count)
	return count, err
}

// AddView bumps both view counters in one statement so concurrent requests
// for the same article from different visitors cannot lose updates.
func (r *articleRepo) AddView(ctx context.Context, id int64, visitorDelta int) (int64, int64, error) {
	query := `
		UPDATE articles
		SET raw_views = raw_views + 1, visitor_views = visitor_views + $2
		WHERE id = $1
		RETURNING raw_views, visitor_views
	`
	var raw, visitors int64
	err := r.db.QueryRowContext(ctx, query, id, visitorDelta).Scan(&raw, &visitors)
	if err == sql.ErrNoRows {
		return 0, 0, ErrNotFound
	}
	if err != nil {
		return 0, 0, err
	}
	return raw, visitors, nil
}

// AddLike bumps the like counter atomically
func (r *articleRepo) AddLike(ctx context.Context, id int64) (int64, error) {
	var likes int64
	err := r.db.QueryRowContext(ctx,
		"UPDATE articles SET likes = likes + 1 WHERE id = $1 RETURNING likes", id).Scan(&likes)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return likes, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *articleRepo) scanOne(row rowScanner) (*models.Article, error) {
	var article models.Article
	var tagsJSON []byte

	err := row.Scan(
		&article.ID, &article.Slug, &article.Title, &article.AbstractMarkdown, &article.Abstract,
		&article.ContentMarkdown, &article.Content, &article.Status, &article.OnTop,
		&tagsJSON, &article.AuthorID, &article.RawViews, &article.VisitorViews, &article.Likes,
		&article.CreatedAt, &article.ModifiedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	json.Unmarshal(tagsJSON, &article.Tags)
	return &article, nil
}

func (r *articleRepo) scanAll(rows *sql.Rows) ([]*models.Article, error) {
	var articles []*models.Article
	for rows.Next() {
		article, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, rows.Err()
}
