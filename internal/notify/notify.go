// Package notify is the outbound boundary to the comment mailer. The core's
// only obligation is to emit a structured event synchronously after a
// successful attach; delivery itself belongs to the external notifier.
package notify

import (
	"context"

	"github.com/content-engagement-api/internal/models"
	"github.com/rs/zerolog"
)

// Event describes a newly created comment for the outbound mailer.
type Event struct {
	TargetKind        models.TargetKind `json:"target_kind"`
	CommentAuthorName string            `json:"comment_author_name"`
	IsReply           bool              `json:"is_reply"`
	ReplyToEmail      string            `json:"reply_to_email,omitempty"`
}

// Notifier consumes comment-created events.
type Notifier interface {
	CommentCreated(ctx context.Context, ev Event) error
}

// LogNotifier records events in the structured log. It stands in for the
// real mailer in deployments where outbound email is disabled.
type LogNotifier struct {
	log zerolog.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

// CommentCreated logs the event
func (n *LogNotifier) CommentCreated(_ context.Context, ev Event) error {
	n.log.Info().
		Str("target_kind", string(ev.TargetKind)).
		Str("author", ev.CommentAuthorName).
		Bool("is_reply", ev.IsReply).
		Str("reply_to", ev.ReplyToEmail).
		Msg("Comment created")
	return nil
}
