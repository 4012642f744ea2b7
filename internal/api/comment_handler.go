package api

import (
	"net/http"
	"strconv"

	"github.com/content-engagement-api/internal/models"
	"github.com/content-engagement-api/internal/service"
	"github.com/content-engagement-api/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// CommentHandler handles threaded discussion endpoints
type CommentHandler struct {
	services *service.Services
	sessions session.Store
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, sessions session.Store, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		sessions: sessions,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// CreateComment handles POST /v1/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	ctx := c.Request.Context()

	var sub models.CommentSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment payload"})
		return
	}
	sub.IP = c.ClientIP()

	comment, err := h.services.Comment.Attach(ctx, &sub)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.rememberAuthor(c, &sub)

	c.JSON(http.StatusCreated, comment)
}

// rememberAuthor stores the author identity for form prefill. The session is
// written back only when a field actually changed.
func (h *CommentHandler) rememberAuthor(c *gin.Context, sub *models.CommentSubmission) {
	ctx := c.Request.Context()
	visitor := visitorID(c)

	data, err := h.sessions.Get(ctx, visitor)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to load session for author prefill")
		return
	}
	data.RememberAuthor(session.AuthorIdentity{
		DisplayName: sub.AuthorName,
		Email:       sub.AuthorEmail,
		Site:        sub.AuthorSite,
		AvatarURL:   sub.AuthorAvatar,
	})
	if err := h.sessions.Put(ctx, visitor, data); err != nil {
		h.log.Warn().Err(err).Msg("Failed to persist author prefill")
	}
}

// GetCommentAuthor handles GET /v1/comments/author, the form prefill data
func (h *CommentHandler) GetCommentAuthor(c *gin.Context) {
	data, err := h.sessions.Get(c.Request.Context(), visitorID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, data.CommentAuthor)
}

// ListComments handles GET /v1/comments?target_kind=&target_id=
func (h *CommentHandler) ListComments(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Query("target_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "target_id must be an integer"})
		return
	}
	target := models.TargetRef{
		Kind: models.TargetKind(c.Query("target_kind")),
		ID:   targetID,
	}

	// Moderation screens pass include_hidden=true to see the full forest.
	includeHidden := c.DefaultQuery("include_hidden", "false") == "true"

	comments, err := h.services.Comment.Thread(c.Request.Context(), target, !includeHidden)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// ModerateComment handles PATCH /v1/comments/:id/visibility
func (h *CommentHandler) ModerateComment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	var req struct {
		Visible *bool `json:"visible"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Visible == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "visible is required"})
		return
	}

	if err := h.services.Comment.Moderate(c.Request.Context(), id, *req.Visible); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "visible": *req.Visible})
}

// DeleteComment handles DELETE /v1/comments/:id; the whole subtree goes
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be an integer"})
		return
	}

	if err := h.services.Comment.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
