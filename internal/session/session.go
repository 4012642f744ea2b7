// Package session holds the per-visitor engagement state: the dedup sets of
// content ids already counted for views and likes, and the comment author
// identity used to prefill future submissions. The payload is opaque to the
// rest of the system; the visitor id is always an explicit input, never
// ambient state.
package session

import (
	"context"
)

// AuthorIdentity is the remembered comment author, used to prefill the next
// submission form.
type AuthorIdentity struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
	Site        string `json:"site"`
	AvatarURL   string `json:"avatar_url"`
}

// Data is one visitor's session payload. Mutations mark the payload dirty;
// stores skip writes for clean payloads so unchanged sessions never churn.
type Data struct {
	ViewedContentIDs []int64        `json:"viewed-content-ids,omitempty"`
	LikedContentIDs  []int64        `json:"liked-content-ids,omitempty"`
	CommentAuthor    AuthorIdentity `json:"comment_author"`

	dirty bool
}

// MarkViewed records a view of id and reports whether this is the first view
// in this session.
func (d *Data) MarkViewed(id int64) bool {
	if contains(d.ViewedContentIDs, id) {
		return false
	}
	d.ViewedContentIDs = append(d.ViewedContentIDs, id)
	d.dirty = true
	return true
}

// MarkLiked records a like of id and reports whether the like counted; a
// second like of the same id in one session is a no-op.
func (d *Data) MarkLiked(id int64) bool {
	if contains(d.LikedContentIDs, id) {
		return false
	}
	d.LikedContentIDs = append(d.LikedContentIDs, id)
	d.dirty = true
	return true
}

// RememberAuthor stores the identity for form prefill. The payload is only
// marked dirty when a field actually changed.
func (d *Data) RememberAuthor(a AuthorIdentity) {
	if d.CommentAuthor == a {
		return
	}
	d.CommentAuthor = a
	d.dirty = true
}

// Dirty reports whether the payload has unwritten changes.
func (d *Data) Dirty() bool { return d.dirty }

func (d *Data) clearDirty() { d.dirty = false }

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Store reads and writes session payloads by visitor id.
//
// Session state is deliberately not a transactionally consistent resource:
// two concurrent requests from the same visitor may both load a payload that
// is missing a content id and double-count it. That race is accepted and
// bounded; the store-level counters themselves are updated atomically.
type Store interface {
	// Get returns the visitor's payload, or a fresh empty payload for a
	// visitor never seen before. Never returns nil with a nil error.
	Get(ctx context.Context, visitorID string) (*Data, error)
	// Put writes the payload back if it is dirty and clears the dirty flag.
	// Clean payloads are not written.
	Put(ctx context.Context, visitorID string, d *Data) error
}
