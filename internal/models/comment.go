package models

import (
	"strconv"
	"strings"
	"time"
)

// TargetKind identifies which entity type a comment is attached to. The set is
// closed: adding a kind is a schema change, not a free-text value.
type TargetKind string

const (
	TargetArticle TargetKind = "article"
	TargetProfile TargetKind = "user-profile"
)

// Valid reports whether k is one of the known target kinds.
func (k TargetKind) Valid() bool {
	return k == TargetArticle || k == TargetProfile
}

// TargetRef is the polymorphic reference a comment attaches to: a tagged
// (kind, id) pair, never a per-kind nullable foreign key.
type TargetRef struct {
	Kind TargetKind `json:"kind"`
	ID   int64      `json:"id"`
}

// avatarServicePrefixes are the recognized external avatar service URL
// prefixes whose size parameter can be rewritten.
var avatarServicePrefixes = []string{
	"http://www.gravatar.com/",
	"https://www.gravatar.com/",
}

// Comment represents one node of a threaded discussion. Rendering happens at
// creation time; afterwards only the Visible flag is mutated (moderation).
type Comment struct {
	ID              int64      `json:"id" db:"id"`
	AuthorName      string     `json:"author_name" db:"author_name"`
	AuthorEmail     string     `json:"author_email" db:"author_email"`
	AuthorSite      string     `json:"author_site,omitempty" db:"author_site"`
	AuthorAvatar    string     `json:"author_avatar,omitempty" db:"author_avatar"`
	ContentMarkdown string     `json:"content_markdown" db:"content_markdown"`
	Content         string     `json:"content" db:"content"`
	PostedAt        time.Time  `json:"posted_at" db:"posted_at"`
	Visible         bool       `json:"visible" db:"visible"`
	IP              string     `json:"-" db:"ip"`
	TargetKind      TargetKind `json:"target_kind" db:"target_kind"`
	TargetID        int64      `json:"target_id" db:"target_id"`
	ParentID        *int64     `json:"parent_id,omitempty" db:"parent_id"`

	// Replies is filled by thread assembly, newest first. Not persisted.
	Replies []*Comment `json:"replies,omitempty" db:"-"`
}

// Target returns the comment's target reference.
func (c *Comment) Target() TargetRef {
	return TargetRef{Kind: c.TargetKind, ID: c.TargetID}
}

// IsOwner reports whether the comment was written by the site owner, by
// comparing the author email against the configured administrator address.
// Used for UI emphasis only, never for trust decisions.
func (c *Comment) IsOwner(adminEmail string) bool {
	return adminEmail != "" && c.AuthorEmail == adminEmail
}

// AvatarURL returns the avatar URL scaled to size pixels. Recognized avatar
// service URLs get their query rewritten; arbitrary URLs are returned as-is.
func (c *Comment) AvatarURL(size int) string {
	for _, prefix := range avatarServicePrefixes {
		if strings.HasPrefix(c.AuthorAvatar, prefix) {
			base := c.AuthorAvatar
			if i := strings.IndexByte(base, '?'); i >= 0 {
				base = base[:i]
			}
			return base + "?s=" + strconv.Itoa(size) + "&d=404"
		}
	}
	return c.AuthorAvatar
}

// CommentSubmission carries the fields of a new comment before validation and
// rendering.
type CommentSubmission struct {
	AuthorName   string    `json:"author_name"`
	AuthorEmail  string    `json:"author_email"`
	AuthorSite   string    `json:"author_site"`
	AuthorAvatar string    `json:"author_avatar"`
	Markdown     string    `json:"content_markdown"`
	Target       TargetRef `json:"target"`
	ParentID     *int64    `json:"parent_id,omitempty"`
	IP           string    `json:"-"`
}
