package session

import (
	"context"
	"testing"
)

func TestMarkViewed(t *testing.T) {
	d := &Data{}

	if !d.MarkViewed(7) {
		t.Error("MarkViewed(7) = false on first view, want true")
	}
	if !d.Dirty() {
		t.Error("Dirty() = false after first view")
	}
	if d.MarkViewed(7) {
		t.Error("MarkViewed(7) = true on repeat view, want false")
	}
	if !d.MarkViewed(8) {
		t.Error("MarkViewed(8) = false for a different id, want true")
	}
}

func TestMarkLiked(t *testing.T) {
	d := &Data{}

	if !d.MarkLiked(3) {
		t.Error("MarkLiked(3) = false on first like, want true")
	}
	if d.MarkLiked(3) {
		t.Error("MarkLiked(3) = true on repeat like, want false")
	}

	// Views and likes are independent sets.
	if !d.MarkViewed(3) {
		t.Error("MarkViewed(3) = false after a like for the same id, want true")
	}
}

func TestRememberAuthor(t *testing.T) {
	d := &Data{}
	author := AuthorIdentity{DisplayName: "ana", Email: "ana@example.com"}

	d.RememberAuthor(author)
	if !d.Dirty() {
		t.Error("Dirty() = false after storing a new identity")
	}
	d.clearDirty()

	d.RememberAuthor(author)
	if d.Dirty() {
		t.Error("Dirty() = true after storing an unchanged identity")
	}

	d.RememberAuthor(AuthorIdentity{DisplayName: "ana", Email: "other@example.com"})
	if !d.Dirty() {
		t.Error("Dirty() = false after the identity changed")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	d, err := store.Get(ctx, "v1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if len(d.ViewedContentIDs) != 0 || d.Dirty() {
		t.Fatalf("Get() for unknown visitor = %+v, want fresh clean payload", d)
	}

	d.MarkViewed(1)
	d.MarkLiked(2)
	d.RememberAuthor(AuthorIdentity{DisplayName: "ana"})
	if err := store.Put(ctx, "v1", d); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	if d.Dirty() {
		t.Error("Dirty() = true after Put")
	}

	got, err := store.Get(ctx, "v1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.MarkViewed(1) {
		t.Error("MarkViewed(1) = true after round trip, view not persisted")
	}
	if got.MarkLiked(2) {
		t.Error("MarkLiked(2) = true after round trip, like not persisted")
	}
	if got.CommentAuthor.DisplayName != "ana" {
		t.Errorf("CommentAuthor.DisplayName = %q, want %q", got.CommentAuthor.DisplayName, "ana")
	}
}

func TestMemoryStoreSkipsCleanPayloads(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	d, _ := store.Get(ctx, "v1")
	if err := store.Put(ctx, "v1", d); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	store.mu.RLock()
	_, stored := store.sessions["v1"]
	store.mu.RUnlock()
	if stored {
		t.Error("Put() wrote a clean payload")
	}
}

func TestMemoryStoreIsolatesVisitors(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	d, _ := store.Get(ctx, "v1")
	d.MarkViewed(1)
	if err := store.Put(ctx, "v1", d); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	other, _ := store.Get(ctx, "v2")
	if !other.MarkViewed(1) {
		t.Error("visitor v2 inherited v1's viewed set")
	}
}

// A payload fetched from the store must not alias stored state; mutating it
// without a Put leaves the store unchanged.
func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	d, _ := store.Get(ctx, "v1")
	d.MarkViewed(1)
	if err := store.Put(ctx, "v1", d); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	leaked, _ := store.Get(ctx, "v1")
	leaked.MarkViewed(2)

	fresh, _ := store.Get(ctx, "v1")
	if !fresh.MarkViewed(2) {
		t.Error("mutation through a returned payload leaked into the store")
	}
}
