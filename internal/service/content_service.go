package service

import (
	"context"
	"fmt"

	"github.com/content-engagement-api/internal/config"
	"github.com/content-engagement-api/internal/models"
	"github.com/content-engagement-api/internal/pagination"
	"github.com/content-engagement-api/internal/render"
	"github.com/content-engagement-api/internal/repository"
	"github.com/content-engagement-api/internal/search"
	"github.com/content-engagement-api/internal/validation"
	"github.com/rs/zerolog"
)

// contentService owns the render-then-persist path for authored content
type contentService struct {
	articles repository.ArticleRepository
	profiles repository.ProfileRepository
	indexer  search.Indexer
	body     *render.Renderer // trusted author content, fenced code enabled
	summary  *render.Renderer // abstracts and profile info, fences literal
	cfg      *config.BlogConfig
	log      zerolog.Logger
}

func newContentService(repos *repository.Repositories, indexer search.Indexer, cfg *config.BlogConfig, log zerolog.Logger) *contentService {
	return &contentService{
		articles: repos.Article,
		profiles: repos.Profile,
		indexer:  indexer,
		body:     render.ForAuthors(),
		summary:  render.ForAuthorSummaries(),
		cfg:      cfg,
		log:      log.With().Str("service", "content").Logger(),
	}
}

// SaveArticle renders the markdown fields and persists the article as one
// unit, then hands the rendered document to the search indexer.
func (s *contentService) SaveArticle(ctx context.Context, article *models.Article) error {
	if article.Status == "" {
		article.Status = models.StatusDraft
	}
	if err := validation.ValidateArticle(article).OrNil(); err != nil {
		return err
	}

	article.Content = s.body.Render(article.ContentMarkdown)
	article.Abstract = renderOptional(s.summary, article.AbstractMarkdown)

	var err error
	if article.ID == 0 {
		err = s.articles.Create(ctx, article)
	} else {
		err = s.articles.Update(ctx, article)
	}
	if err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}

	// Emit only after the save committed; the indexer is fire-and-forget
	// from this core's perspective.
	doc := search.Document{
		ID:        article.ID,
		Title:     article.Title,
		PlainText: render.StripTags(article.Content),
		Tags:      article.Tags,
		Slug:      article.Slug,
	}
	if err := s.indexer.Index(ctx, doc); err != nil {
		s.log.Warn().Err(err).Int64("article_id", article.ID).Msg("Failed to index article")
	}

	return nil
}

// SaveProfile renders the profile info and persists it as one unit
func (s *contentService) SaveProfile(ctx context.Context, profile *models.Profile) error {
	profile.Info = renderOptional(s.summary, profile.InfoMarkdown)

	var err error
	if profile.ID == 0 {
		err = s.profiles.Create(ctx, profile)
	} else {
		err = s.profiles.Update(ctx, profile)
	}
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// GetArticleBySlug retrieves one published article. Drafts and retired
// documents are not publicly addressable and read as not found, so they can
// never accrue views through the public page.
func (s *contentService) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.articles.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article.Status != models.StatusPublished {
		return nil, repository.ErrNotFound
	}
	return article, nil
}

// GetProfile retrieves one author profile
func (s *contentService) GetProfile(ctx context.Context, id int64) (*models.Profile, error) {
	return s.profiles.GetByID(ctx, id)
}

// ListPage returns one listing page of published articles with its
// pagination window. A page outside [1, pages] is a not-found, matching the
// feed URL convention.
func (s *contentService) ListPage(ctx context.Context, page int) (*ArticlePage, error) {
	count, err := s.articles.CountPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}

	pages := pagination.PageCount(count, s.cfg.PageSize)
	if page < 1 || page > pages {
		return nil, repository.ErrNotFound
	}

	articles, err := s.articles.ListPublished(ctx, (page-1)*s.cfg.PageSize, s.cfg.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}

	return &ArticlePage{
		Articles: articles,
		Page:     page,
		Window:   pagination.Compute(page, pages, s.cfg.PageEdgeCount, s.cfg.PageDisplayCount),
	}, nil
}

// ListPopular returns the most viewed published articles
func (s *contentService) ListPopular(ctx context.Context) ([]*models.Article, error) {
	return s.articles.ListPopular(ctx, s.cfg.PopularCount)
}

// renderOptional preserves the absent-vs-empty distinction: a nil or empty
// raw field keeps the derived field absent, never an empty string.
func renderOptional(r *render.Renderer, raw *string) *string {
	if raw == nil || *raw == "" {
		return nil
	}
	html := r.Render(*raw)
	return &html
}
