package mocks

import (
	"context"
	"sort"

	"github.com/content-engagement-api/internal/models"
	"github.com/content-engagement-api/internal/repository"
)

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles map[int64]*models.Article
	Err      error // forced error for failure-path tests
	nextID   int64
}

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{Articles: make(map[int64]*models.Article)}
}

func (m *MockArticleRepository) Create(ctx context.Context, article *models.Article) error {
	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	article.ID = m.nextID
	m.Articles[article.ID] = article
	return nil
}

func (m *MockArticleRepository) Update(ctx context.Context, article *models.Article) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Articles[article.ID]; !ok {
		return repository.ErrNotFound
	}
	m.Articles[article.ID] = article
	return nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	article, ok := m.Articles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return article, nil
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, article := range m.Articles {
		if article.Slug == slug {
			return article, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *MockArticleRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	for _, article := range m.Articles {
		if article.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockArticleRepository) ListPublished(ctx context.Context, offset, limit int) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	published := m.published()
	sort.Slice(published, func(i, j int) bool {
		if published[i].OnTop != published[j].OnTop {
			return published[i].OnTop
		}
		return published[i].CreatedAt.After(published[j].CreatedAt)
	})
	if offset >= len(published) {
		return nil, nil
	}
	end := offset + limit
	if end > len(published) {
		end = len(published)
	}
	return published[offset:end], nil
}

func (m *MockArticleRepository) ListPopular(ctx context.Context, limit int) ([]*models.Article, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	published := m.published()
	sort.Slice(published, func(i, j int) bool {
		return published[i].RawViews > published[j].RawViews
	})
	if limit < len(published) {
		published = published[:limit]
	}
	return published, nil
}

func (m *MockArticleRepository) CountPublished(ctx context.Context) (int, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.published()), nil
}

func (m *MockArticleRepository) AddView(ctx context.Context, id int64, visitorDelta int) (int64, int64, error) {
	if m.Err != nil {
		return 0, 0, m.Err
	}
	article, ok := m.Articles[id]
	if !ok {
		return 0, 0, repository.ErrNotFound
	}
	article.RawViews++
	article.VisitorViews += int64(visitorDelta)
	return article.RawViews, article.VisitorViews, nil
}

func (m *MockArticleRepository) AddLike(ctx context.Context, id int64) (int64, error) {
	if m.Err != nil {
		return 0, m.Err
	}
	article, ok := m.Articles[id]
	if !ok {
		return 0, repository.ErrNotFound
	}
	article.Likes++
	return article.Likes, nil
}

func (m *MockArticleRepository) published() []*models.Article {
	var published []*models.Article
	for _, article := range m.Articles {
		if article.Status == models.StatusPublished {
			published = append(published, article)
		}
	}
	return published
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	Comments map[int64]*models.Comment
	Err      error
	nextID   int64
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{Comments: make(map[int64]*models.Comment)}
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	comment.ID = m.nextID
	m.Comments[comment.ID] = comment
	return nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	comment, ok := m.Comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return comment, nil
}

func (m *MockCommentRepository) ListByTarget(ctx context.Context, target models.TargetRef, visibleOnly bool) ([]*models.Comment, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var list []*models.Comment
	for _, comment := range m.Comments {
		if comment.Target() != target {
			continue
		}
		if visibleOnly && !comment.Visible {
			continue
		}
		list = append(list, comment)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].PostedAt.Equal(list[j].PostedAt) {
			return list[i].PostedAt.After(list[j].PostedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list, nil
}

func (m *MockCommentRepository) CountByTarget(ctx context.Context, target models.TargetRef, visibleOnly bool) (int, error) {
	list, err := m.ListByTarget(ctx, target, visibleOnly)
	return len(list), err
}

func (m *MockCommentRepository) SetVisible(ctx context.Context, id int64, visible bool) error {
	if m.Err != nil {
		return m.Err
	}
	comment, ok := m.Comments[id]
	if !ok {
		return repository.ErrNotFound
	}
	comment.Visible = visible
	return nil
}

// Delete removes the comment and its descendants, mirroring the FK cascade.
func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Comments[id]; !ok {
		return repository.ErrNotFound
	}
	m.deleteSubtree(id)
	return nil
}

func (m *MockCommentRepository) deleteSubtree(id int64) {
	delete(m.Comments, id)
	for childID, child := range m.Comments {
		if child.ParentID != nil && *child.ParentID == id {
			m.deleteSubtree(childID)
		}
	}
}

// MockProfileRepository is a mock implementation of ProfileRepository
type MockProfileRepository struct {
	Profiles map[int64]*models.Profile
	Err      error
	nextID   int64
}

func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{Profiles: make(map[int64]*models.Profile)}
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	profile.ID = m.nextID
	m.Profiles[profile.ID] = profile
	return nil
}

func (m *MockProfileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Profiles[profile.ID]; !ok {
		return repository.ErrNotFound
	}
	m.Profiles[profile.ID] = profile
	return nil
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id int64) (*models.Profile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	profile, ok := m.Profiles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return profile, nil
}

func (m *MockProfileRepository) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, profile := range m.Profiles {
		if profile.Username == username {
			return profile, nil
		}
	}
	return nil, repository.ErrNotFound
}

// NewMockRepositories bundles fresh mocks in a repository.Repositories
func NewMockRepositories() (*repository.Repositories, *MockArticleRepository, *MockCommentRepository, *MockProfileRepository) {
	articles := NewMockArticleRepository()
	comments := NewMockCommentRepository()
	profiles := NewMockProfileRepository()
	return &repository.Repositories{
		Article: articles,
		Comment: comments,
		Profile: profiles,
	}, articles, comments, profiles
}
