package service

import (
	"context"
	"fmt"
	"time"

	"github.com/content-engagement-api/internal/config"
	"github.com/content-engagement-api/internal/models"
	"github.com/content-engagement-api/internal/notify"
	"github.com/content-engagement-api/internal/render"
	"github.com/content-engagement-api/internal/repository"
	"github.com/content-engagement-api/internal/validation"
	"github.com/rs/zerolog"
)

// commentService owns the threaded discussion forest
type commentService struct {
	comments repository.CommentRepository
	articles repository.ArticleRepository
	profiles repository.ProfileRepository
	notifier notify.Notifier
	reader   *render.Renderer // adversarial reader content
	cfg      *config.BlogConfig
	log      zerolog.Logger
}

func newCommentService(repos *repository.Repositories, notifier notify.Notifier, cfg *config.BlogConfig, log zerolog.Logger) *commentService {
	return &commentService{
		comments: repos.Comment,
		articles: repos.Article,
		profiles: repos.Profile,
		notifier: notifier,
		reader:   render.ForReaders(),
		cfg:      cfg,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// Attach validates a submission, renders it and inserts the new node, then
// emits the notifier event. Rendering happens here and is never redone.
func (s *commentService) Attach(ctx context.Context, sub *models.CommentSubmission) (*models.Comment, error) {
	if err := validation.ValidateComment(sub).OrNil(); err != nil {
		return nil, err
	}

	if err := s.targetExists(ctx, sub.Target); err != nil {
		return nil, err
	}

	var parent *models.Comment
	if sub.ParentID != nil {
		var err error
		parent, err = s.comments.GetByID(ctx, *sub.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load parent comment: %w", err)
		}
		if parent.Target() != sub.Target {
			return nil, ErrThreadMismatch
		}
	}

	comment := &models.Comment{
		AuthorName:      sub.AuthorName,
		AuthorEmail:     sub.AuthorEmail,
		AuthorSite:      sub.AuthorSite,
		AuthorAvatar:    sub.AuthorAvatar,
		ContentMarkdown: sub.Markdown,
		Content:         s.reader.Render(sub.Markdown),
		PostedAt:        time.Now().UTC(),
		Visible:         true,
		IP:              sub.IP,
		TargetKind:      sub.Target.Kind,
		TargetID:        sub.Target.ID,
		ParentID:        sub.ParentID,
	}

	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.emitCreated(ctx, comment, parent)

	return comment, nil
}

// Thread returns the comment forest for a target, newest roots first with
// nested structure preserved. With visibleOnly set, hidden nodes are dropped
// but their visible descendants are kept and promoted in their place:
// moderation is per-node, never transitive.
func (s *commentService) Thread(ctx context.Context, target models.TargetRef, visibleOnly bool) ([]*models.Comment, error) {
	if err := validation.ValidateTarget(target).OrNil(); err != nil {
		return nil, err
	}

	list, err := s.comments.ListByTarget(ctx, target, visibleOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return assembleForest(list), nil
}

// Moderate flips the visibility flag of one node
func (s *commentService) Moderate(ctx context.Context, id int64, visible bool) error {
	if err := s.comments.SetVisible(ctx, id, visible); err != nil {
		return err
	}
	s.log.Info().Int64("comment_id", id).Bool("visible", visible).Msg("Comment moderated")
	return nil
}

// Delete hard-deletes a node and its whole subtree. Soft-delete via Moderate
// is the primary moderation action; this is the irreversible one.
func (s *commentService) Delete(ctx context.Context, id int64) error {
	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Int64("comment_id", id).Msg("Comment subtree deleted")
	return nil
}

func (s *commentService) targetExists(ctx context.Context, target models.TargetRef) error {
	var err error
	switch target.Kind {
	case models.TargetArticle:
		_, err = s.articles.GetByID(ctx, target.ID)
	case models.TargetProfile:
		_, err = s.profiles.GetByID(ctx, target.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to load comment target: %w", err)
	}
	return nil
}

// emitCreated hands the event to the notifier synchronously, after the
// insert committed and never before.
func (s *commentService) emitCreated(ctx context.Context, comment *models.Comment, parent *models.Comment) {
	if !comment.Visible {
		return
	}
	ev := notify.Event{
		TargetKind:        comment.TargetKind,
		CommentAuthorName: comment.AuthorName,
		IsReply:           parent != nil,
	}
	if parent != nil {
		ev.ReplyToEmail = parent.AuthorEmail
	}
	if err := s.notifier.CommentCreated(ctx, ev); err != nil {
		s.log.Warn().Err(err).Int64("comment_id", comment.ID).Msg("Failed to emit comment event")
	}
}

// assembleForest nests a flat newest-first list into a forest. A node whose
// parent is missing from the list (hidden by moderation, or the parent of a
// cross-page slice) becomes a root so its subtree stays reachable.
func assembleForest(list []*models.Comment) []*models.Comment {
	byID := make(map[int64]*models.Comment, len(list))
	for _, c := range list {
		c.Replies = nil
		byID[c.ID] = c
	}

	roots := make([]*models.Comment, 0, len(list))
	for _, c := range list {
		if c.ParentID != nil {
			if parent, ok := byID[*c.ParentID]; ok {
				parent.Replies = append(parent.Replies, c)
				continue
			}
		}
		roots = append(roots, c)
	}
	return roots
}
