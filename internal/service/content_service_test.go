package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/content-engagement-api/internal/config"
	"github.com/content-engagement-api/internal/mocks"
	"github.com/content-engagement-api/internal/models"
	"github.com/content-engagement-api/internal/repository"
	"github.com/content-engagement-api/internal/validation"
	"github.com/rs/zerolog"
)

type contentFixture struct {
	svc      *contentService
	articles *mocks.MockArticleRepository
	profiles *mocks.MockProfileRepository
	indexer  *mocks.MockIndexer
}

func newContentFixture() *contentFixture {
	repos, articles, _, profiles := mocks.NewMockRepositories()
	indexer := mocks.NewMockIndexer()
	cfg := &config.BlogConfig{PageSize: 2, PageEdgeCount: 2, PageDisplayCount: 4, PopularCount: 2}
	return &contentFixture{
		svc:      newContentService(repos, indexer, cfg, zerolog.Nop()),
		articles: articles,
		profiles: profiles,
		indexer:  indexer,
	}
}

func TestSaveArticleRendersAndIndexes(t *testing.T) {
	ctx := context.Background()
	f := newContentFixture()

	article := &models.Article{
		Slug:            "hello-world",
		Title:           "Hello",
		ContentMarkdown: "so **bold**",
		Tags:            []string{"go", "web"},
	}
	if err := f.svc.SaveArticle(ctx, article); err != nil {
		t.Fatalf("SaveArticle() error = %v", err)
	}

	if article.ID == 0 {
		t.Error("SaveArticle() did not assign an id")
	}
	if article.Status != models.StatusDraft {
		t.Errorf("Status = %q, want draft default", article.Status)
	}
	if article.Content != "<p>so <strong>bold</strong></p>" {
		t.Errorf("Content = %q, markdown was not rendered on save", article.Content)
	}

	if len(f.indexer.Documents) != 1 {
		t.Fatalf("indexed documents = %d, want 1", len(f.indexer.Documents))
	}
	doc := f.indexer.Documents[0]
	if doc.ID != article.ID || doc.Slug != "hello-world" || doc.Title != "Hello" {
		t.Errorf("indexed doc = %+v", doc)
	}
	// The indexer receives plain text, never markup.
	if doc.PlainText != "so bold" {
		t.Errorf("PlainText = %q, want %q", doc.PlainText, "so bold")
	}
}

func TestSaveArticleAbstract(t *testing.T) {
	ctx := context.Background()
	f := newContentFixture()

	base := func() *models.Article {
		return &models.Article{Slug: "a", Title: "a", ContentMarkdown: "x"}
	}

	t.Run("absent stays absent", func(t *testing.T) {
		article := base()
		if err := f.svc.SaveArticle(ctx, article); err != nil {
			t.Fatalf("SaveArticle() error = %v", err)
		}
		if article.Abstract != nil {
			t.Errorf("Abstract = %q, want nil", *article.Abstract)
		}
	})

	t.Run("empty collapses to absent", func(t *testing.T) {
		article := base()
		empty := ""
		article.AbstractMarkdown = &empty
		if err := f.svc.SaveArticle(ctx, article); err != nil {
			t.Fatalf("SaveArticle() error = %v", err)
		}
		if article.Abstract != nil {
			t.Errorf("Abstract = %q, want nil", *article.Abstract)
		}
	})

	t.Run("present is rendered", func(t *testing.T) {
		article := base()
		raw := "*short*"
		article.AbstractMarkdown = &raw
		if err := f.svc.SaveArticle(ctx, article); err != nil {
			t.Fatalf("SaveArticle() error = %v", err)
		}
		if article.Abstract == nil || *article.Abstract != "<p><em>short</em></p>" {
			t.Errorf("Abstract = %v, want rendered html", article.Abstract)
		}
	})
}

func TestSaveArticleValidation(t *testing.T) {
	ctx := context.Background()
	f := newContentFixture()

	article := &models.Article{Slug: "Not A Slug", Title: "t", ContentMarkdown: "x"}
	err := f.svc.SaveArticle(ctx, article)
	var verrs validation.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("SaveArticle() error = %v, want ValidationErrors", err)
	}
	if len(f.indexer.Documents) != 0 {
		t.Error("rejected article reached the indexer")
	}
}

func TestSaveArticleUpdate(t *testing.T) {
	ctx := context.Background()
	f := newContentFixture()

	article := &models.Article{Slug: "a", Title: "a", ContentMarkdown: "first", Status: models.StatusPublished}
	if err := f.svc.SaveArticle(ctx, article); err != nil {
		t.Fatalf("SaveArticle() error = %v", err)
	}

	article.ContentMarkdown = "second"
	if err := f.svc.SaveArticle(ctx, article); err != nil {
		t.Fatalf("SaveArticle() update error = %v", err)
	}
	if len(f.articles.Articles) != 1 {
		t.Errorf("stored articles = %d, update created a duplicate", len(f.articles.Articles))
	}
	if f.articles.Articles[article.ID].Content != "<p>second</p>" {
		t.Errorf("Content = %q after update", f.articles.Articles[article.ID].Content)
	}
}

func TestSaveProfileInfo(t *testing.T) {
	ctx := context.Background()
	f := newContentFixture()

	profile := &models.Profile{Username: "ana", Email: "ana@example.com"}
	if err := f.svc.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("SaveProfile() error = %v", err)
	}
	if profile.Info != nil {
		t.Errorf("Info = %q, want nil for absent markdown", *profile.Info)
	}

	raw := "**about me**"
	profile.InfoMarkdown = &raw
	if err := f.svc.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("SaveProfile() update error = %v", err)
	}
	if profile.Info == nil || *profile.Info != "<p><strong>about me</strong></p>" {
		t.Errorf("Info = %v, want rendered html", profile.Info)
	}
}

func TestGetArticleBySlugOnlyPublished(t *testing.T) {
	ctx := context.Background()
	f := newContentFixture()

	f.articles.Articles[1] = &models.Article{ID: 1, Slug: "live", Status: models.StatusPublished}
	f.articles.Articles[2] = &models.Article{ID: 2, Slug: "wip", Status: models.StatusDraft}
	f.articles.Articles[3] = &models.Article{ID: 3, Slug: "gone", Status: models.StatusRetired}

	article, err := f.svc.GetArticleBySlug(ctx, "live")
	if err != nil {
		t.Fatalf("GetArticleBySlug() error = %v", err)
	}
	if article.ID != 1 {
		t.Errorf("GetArticleBySlug() = article %d, want 1", article.ID)
	}

	for _, slug := range []string{"wip", "gone", "missing"} {
		if _, err := f.svc.GetArticleBySlug(ctx, slug); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("GetArticleBySlug(%q) error = %v, want ErrNotFound", slug, err)
		}
	}
}

func TestListPage(t *testing.T) {
	ctx := context.Background()
	f := newContentFixture()

	now := time.Now().UTC()
	for i, slug := range []string{"one", "two", "three"} {
		f.articles.Articles[int64(i+1)] = &models.Article{
			ID:        int64(i + 1),
			Slug:      slug,
			Status:    models.StatusPublished,
			CreatedAt: now.Add(time.Duration(i) * time.Hour),
		}
	}
	// Drafts never appear in listings.
	f.articles.Articles[4] = &models.Article{ID: 4, Slug: "hidden", Status: models.StatusDraft, CreatedAt: now}

	page, err := f.svc.ListPage(ctx, 1)
	if err != nil {
		t.Fatalf("ListPage() error = %v", err)
	}
	if len(page.Articles) != 2 {
		t.Fatalf("page 1 articles = %d, want 2", len(page.Articles))
	}
	// Newest first.
	if page.Articles[0].Slug != "three" || page.Articles[1].Slug != "two" {
		t.Errorf("page 1 = [%s %s], want [three two]", page.Articles[0].Slug, page.Articles[1].Slug)
	}
	if page.Window.Total != 2 || page.Window.Current != 1 {
		t.Errorf("Window = %+v, want 2 pages at page 1", page.Window)
	}

	page, err = f.svc.ListPage(ctx, 2)
	if err != nil {
		t.Fatalf("ListPage(2) error = %v", err)
	}
	if len(page.Articles) != 1 || page.Articles[0].Slug != "one" {
		t.Errorf("page 2 = %+v, want [one]", page.Articles)
	}

	for _, out := range []int{0, 3} {
		if _, err := f.svc.ListPage(ctx, out); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("ListPage(%d) error = %v, want ErrNotFound", out, err)
		}
	}
}

func TestListPagePinnedFirst(t *testing.T) {
	ctx := context.Background()
	f := newContentFixture()

	now := time.Now().UTC()
	f.articles.Articles[1] = &models.Article{ID: 1, Slug: "old-pinned", Status: models.StatusPublished, OnTop: true, CreatedAt: now.Add(-time.Hour)}
	f.articles.Articles[2] = &models.Article{ID: 2, Slug: "newer", Status: models.StatusPublished, CreatedAt: now}

	page, err := f.svc.ListPage(ctx, 1)
	if err != nil {
		t.Fatalf("ListPage() error = %v", err)
	}
	if page.Articles[0].Slug != "old-pinned" {
		t.Errorf("first listed = %q, pinned article must lead", page.Articles[0].Slug)
	}
}

func TestListPopular(t *testing.T) {
	ctx := context.Background()
	f := newContentFixture()

	f.articles.Articles[1] = &models.Article{ID: 1, Slug: "low", Status: models.StatusPublished, RawViews: 10}
	f.articles.Articles[2] = &models.Article{ID: 2, Slug: "high", Status: models.StatusPublished, RawViews: 100}
	f.articles.Articles[3] = &models.Article{ID: 3, Slug: "mid", Status: models.StatusPublished, RawViews: 50}

	popular, err := f.svc.ListPopular(ctx)
	if err != nil {
		t.Fatalf("ListPopular() error = %v", err)
	}
	if len(popular) != 2 {
		t.Fatalf("ListPopular() = %d articles, want the configured 2", len(popular))
	}
	if popular[0].Slug != "high" || popular[1].Slug != "mid" {
		t.Errorf("ListPopular() order = [%s %s], want [high mid]", popular[0].Slug, popular[1].Slug)
	}
}
