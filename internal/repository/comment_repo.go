package repository

import (
	"context"
	"database/sql"

	"github.com/content-engagement-api/internal/database"
	"github.com/content-engagement-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

const commentColumns = `id, author_name, author_email, author_site, author_avatar,
	content_markdown, content, posted_at, visible, ip, target_kind, target_id, parent_id`

// Create inserts a new comment and fills in its assigned id
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	var ip interface{}
	if comment.IP != "" {
		ip = comment.IP
	}

	query := `
		INSERT INTO comments (author_name, author_email, author_site, author_avatar,
			content_markdown, content, posted_at, visible, ip, target_kind, target_id, parent_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		comment.AuthorName, comment.AuthorEmail, comment.AuthorSite, comment.AuthorAvatar,
		comment.ContentMarkdown, comment.Content, comment.PostedAt, comment.Visible,
		ip, comment.TargetKind, comment.TargetID, comment.ParentID,
	).Scan(&comment.ID)
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	return scanComment(r.db.QueryRowContext(ctx, query, id))
}

// ListByTarget returns every comment attached to the target, newest first.
// Both target kinds share the table; the kind filter is part of the query so
// an article page never loads guestbook rows and vice versa.
func (r *commentRepo) ListByTarget(ctx context.Context, target models.TargetRef, visibleOnly bool) ([]*models.Comment, error) {
	query := `
		SELECT ` + commentColumns + ` FROM comments
		WHERE target_kind = $1 AND target_id = $2 AND ($3 = FALSE OR visible = TRUE)
		ORDER BY posted_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, target.Kind, target.ID, visibleOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// CountByTarget returns the number of comments attached to the target
func (r *commentRepo) CountByTarget(ctx context.Context, target models.TargetRef, visibleOnly bool) (int, error) {
	query := `
		SELECT COUNT(*) FROM comments
		WHERE target_kind = $1 AND target_id = $2 AND ($3 = FALSE OR visible = TRUE)
	`
	var count int
	err := r.db.QueryRowContext(ctx, query, target.Kind, target.ID, visibleOnly).Scan(&count)
	return count, err
}

// SetVisible flips the moderation flag on a single comment
func (r *commentRepo) SetVisible(ctx context.Context, id int64, visible bool) error {
	res, err := r.db.ExecContext(ctx, "UPDATE comments SET visible = $2 WHERE id = $1", id, visible)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a comment; the parent_id FK cascade removes its subtree
func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanComment(row rowScanner) (*models.Comment, error) {
	var comment models.Comment
	var ip sql.NullString

	err := row.Scan(
		&comment.ID, &comment.AuthorName, &comment.AuthorEmail, &comment.AuthorSite,
		&comment.AuthorAvatar, &comment.ContentMarkdown, &comment.Content,
		&comment.PostedAt, &comment.Visible, &ip,
		&comment.TargetKind, &comment.TargetID, &comment.ParentID,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if ip.Valid {
		comment.IP = ip.String
	}
	return &comment, nil
}
