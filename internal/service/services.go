package service

import (
	"context"
	"errors"

	"github.com/content-engagement-api/internal/config"
	"github.com/content-engagement-api/internal/models"
	"github.com/content-engagement-api/internal/notify"
	"github.com/content-engagement-api/internal/pagination"
	"github.com/content-engagement-api/internal/repository"
	"github.com/content-engagement-api/internal/search"
	"github.com/content-engagement-api/internal/session"
	"github.com/rs/zerolog"
)

// ErrThreadMismatch rejects a reply whose parent is attached to a different
// target; a thread can never cross target entities.
var ErrThreadMismatch = errors.New("parent comment belongs to a different target")

// ArticlePage is one listing page of published articles plus the pagination
// window to render under it.
type ArticlePage struct {
	Articles []*models.Article `json:"articles"`
	Page     int               `json:"page"`
	Window   pagination.Window `json:"window"`
}

// ContentService defines the interface for authored content operations.
// Saving always renders markup first and persists raw and derived fields as
// one unit; a document is never visible with stale derived HTML.
type ContentService interface {
	SaveArticle(ctx context.Context, article *models.Article) error
	SaveProfile(ctx context.Context, profile *models.Profile) error
	GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error)
	GetProfile(ctx context.Context, id int64) (*models.Profile, error)
	ListPage(ctx context.Context, page int) (*ArticlePage, error)
	ListPopular(ctx context.Context) ([]*models.Article, error)
}

// CommentService defines the interface for threaded discussion operations
type CommentService interface {
	Attach(ctx context.Context, sub *models.CommentSubmission) (*models.Comment, error)
	Thread(ctx context.Context, target models.TargetRef, visibleOnly bool) ([]*models.Comment, error)
	Moderate(ctx context.Context, id int64, visible bool) error
	Delete(ctx context.Context, id int64) error
}

// EngagementService defines the interface for per-visitor view/like counting
type EngagementService interface {
	RecordView(ctx context.Context, articleID int64, visitorID string) (totalViews int64, firstThisSession bool, err error)
	RecordLike(ctx context.Context, articleID int64, visitorID string) (liked bool, err error)
}

// Services holds all service interfaces
type Services struct {
	Content    ContentService
	Comment    CommentService
	Engagement EngagementService
}

// NewServices creates all services
func NewServices(
	repos *repository.Repositories,
	sessions session.Store,
	indexer search.Indexer,
	notifier notify.Notifier,
	cfg *config.Config,
	log zerolog.Logger,
) *Services {
	return &Services{
		Content:    newContentService(repos, indexer, &cfg.Blog, log),
		Comment:    newCommentService(repos, notifier, &cfg.Blog, log),
		Engagement: newEngagementService(repos.Article, sessions, log),
	}
}
