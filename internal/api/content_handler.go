package api

import (
	"net/http"
	"strconv"

	"github.com/content-engagement-api/internal/config"
	"github.com/content-engagement-api/internal/models"
	"github.com/content-engagement-api/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ContentHandler handles article and profile endpoints, including the
// engagement counters on the article page.
type ContentHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "content").Logger(),
	}
}

// ListArticles handles GET /v1/articles?page=N
func (h *ContentHandler) ListArticles(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer"})
		return
	}

	result, err := h.services.Content.ListPage(c.Request.Context(), page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListPopular handles GET /v1/articles/popular
func (h *ContentHandler) ListPopular(c *gin.Context) {
	articles, err := h.services.Content.ListPopular(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// GetArticle handles GET /v1/articles/:slug. Fetching the page records a
// view for this visitor and returns the visible comment thread.
func (h *ContentHandler) GetArticle(c *gin.Context) {
	ctx := c.Request.Context()

	article, err := h.services.Content.GetArticleBySlug(ctx, c.Param("slug"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	views, firstView, err := h.services.Engagement.RecordView(ctx, article.ID, visitorID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	article.RawViews = views

	comments, err := h.services.Comment.Thread(ctx,
		models.TargetRef{Kind: models.TargetArticle, ID: article.ID}, true)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"article":    article,
		"comments":   comments,
		"first_view": firstView,
	})
}

// CreateArticle handles POST /v1/articles
func (h *ContentHandler) CreateArticle(c *gin.Context) {
	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article payload"})
		return
	}
	article.ID = 0

	if err := h.services.Content.SaveArticle(c.Request.Context(), &article); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, article)
}

// UpdateArticle handles PUT /v1/articles/:id
func (h *ContentHandler) UpdateArticle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	var article models.Article
	if err := c.ShouldBindJSON(&article); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid article payload"})
		return
	}
	article.ID = id

	if err := h.services.Content.SaveArticle(c.Request.Context(), &article); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

// LikeArticle handles POST /v1/articles/:id/like. The like is idempotent
// per visitor session.
func (h *ContentHandler) LikeArticle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	liked, err := h.services.Engagement.RecordLike(c.Request.Context(), id, visitorID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// GetProfile handles GET /v1/profiles/:id, the guestbook page: the profile
// plus the comment thread attached to it.
func (h *ContentHandler) GetProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	ctx := c.Request.Context()
	profile, err := h.services.Content.GetProfile(ctx, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	comments, err := h.services.Comment.Thread(ctx,
		models.TargetRef{Kind: models.TargetProfile, ID: profile.ID}, true)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":  profile,
		"comments": comments,
	})
}

// CreateProfile handles POST /v1/profiles
func (h *ContentHandler) CreateProfile(c *gin.Context) {
	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile payload"})
		return
	}
	profile.ID = 0

	if err := h.services.Content.SaveProfile(c.Request.Context(), &profile); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, profile)
}
