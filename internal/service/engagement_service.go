package service

import (
	"context"
	"fmt"

	"github.com/content-engagement-api/internal/repository"
	"github.com/content-engagement-api/internal/session"
	"github.com/rs/zerolog"
)

// engagementService counts views and likes per visitor without accounts.
//
// The session dedup sets are read-modify-write without any cross-request
// lock: two concurrent requests from the same visitor can both see an id as
// uncounted and double-increment the deduplicated counter. This is a known,
// accepted race; the row-level counter update itself is atomic, so requests
// from different visitors never lose updates.
type engagementService struct {
	articles repository.ArticleRepository
	sessions session.Store
	log      zerolog.Logger
}

func newEngagementService(articles repository.ArticleRepository, sessions session.Store, log zerolog.Logger) *engagementService {
	return &engagementService{
		articles: articles,
		sessions: sessions,
		log:      log.With().Str("service", "engagement").Logger(),
	}
}

// RecordView always bumps the raw view counter and bumps the deduplicated
// visitor counter only on the first view in this session. Returns the new
// raw view total.
func (s *engagementService) RecordView(ctx context.Context, articleID int64, visitorID string) (int64, bool, error) {
	data, err := s.sessions.Get(ctx, visitorID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to load session: %w", err)
	}

	first := data.MarkViewed(articleID)
	delta := 0
	if first {
		delta = 1
	}

	raw, _, err := s.articles.AddView(ctx, articleID, delta)
	if err != nil {
		// The counter never moved; leave the session unwritten too.
		return 0, false, err
	}

	if err := s.sessions.Put(ctx, visitorID, data); err != nil {
		s.log.Warn().Err(err).Str("visitor", visitorID).Msg("Failed to persist session")
	}

	return raw, first, nil
}

// RecordLike bumps the like counter once per session per article. A repeat
// like reports false and leaves the counter untouched.
func (s *engagementService) RecordLike(ctx context.Context, articleID int64, visitorID string) (bool, error) {
	data, err := s.sessions.Get(ctx, visitorID)
	if err != nil {
		return false, fmt.Errorf("failed to load session: %w", err)
	}

	if !data.MarkLiked(articleID) {
		return false, nil
	}

	if _, err := s.articles.AddLike(ctx, articleID); err != nil {
		return false, err
	}

	if err := s.sessions.Put(ctx, visitorID, data); err != nil {
		s.log.Warn().Err(err).Str("visitor", visitorID).Msg("Failed to persist session")
	}

	return true, nil
}
