package repository

import (
	"context"
	"errors"

	"github.com/content-engagement-api/internal/database"
	"github.com/content-engagement-api/internal/models"
)

// ErrNotFound is returned when an operation targets a missing row.
var ErrNotFound = errors.New("not found")

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	GetByID(ctx context.Context, id int64) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListPublished(ctx context.Context, offset, limit int) ([]*models.Article, error)
	ListPopular(ctx context.Context, limit int) ([]*models.Article, error)
	CountPublished(ctx context.Context) (int, error)
	// AddView bumps the raw view counter by one and the deduplicated visitor
	// counter by visitorDelta (0 or 1) in a single atomic update.
	AddView(ctx context.Context, id int64, visitorDelta int) (rawViews, visitorViews int64, err error)
	// AddLike bumps the like counter by one atomically.
	AddLike(ctx context.Context, id int64) (likes int64, err error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id int64) (*models.Comment, error)
	// ListByTarget returns all comments attached to one target, newest first.
	// The kind filter runs in the store, never as application post-filtering.
	ListByTarget(ctx context.Context, target models.TargetRef, visibleOnly bool) ([]*models.Comment, error)
	CountByTarget(ctx context.Context, target models.TargetRef, visibleOnly bool) (int, error)
	SetVisible(ctx context.Context, id int64, visible bool) error
	// Delete removes the comment and, through the parent FK cascade, its
	// whole subtree.
	Delete(ctx context.Context, id int64) error
}

// ProfileRepository defines the interface for author profile operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	GetByID(ctx context.Context, id int64) (*models.Profile, error)
	GetByUsername(ctx context.Context, username string) (*models.Profile, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
	Comment CommentRepository
	Profile ProfileRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
		Profile: NewProfileRepo(db),
	}
}
