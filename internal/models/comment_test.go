package models

import "testing"

func TestTargetKindValid(t *testing.T) {
	tests := []struct {
		kind     TargetKind
		expected bool
	}{
		{TargetArticle, true},
		{TargetProfile, true},
		{TargetKind("post"), false},
		{TargetKind(""), false},
	}

	for _, tt := range tests {
		if got := tt.kind.Valid(); got != tt.expected {
			t.Errorf("TargetKind(%q).Valid() = %v, want %v", tt.kind, got, tt.expected)
		}
	}
}

func TestCommentAvatarURL(t *testing.T) {
	tests := []struct {
		name     string
		avatar   string
		size     int
		expected string
	}{
		{
			name:     "gravatar without query gets size and fallback",
			avatar:   "https://www.gravatar.com/avatar/abc123",
			size:     40,
			expected: "https://www.gravatar.com/avatar/abc123?s=40&d=404",
		},
		{
			name:     "existing query is replaced",
			avatar:   "https://www.gravatar.com/avatar/abc123?s=80&d=mm",
			size:     40,
			expected: "https://www.gravatar.com/avatar/abc123?s=40&d=404",
		},
		{
			name:     "plain http gravatar is recognized",
			avatar:   "http://www.gravatar.com/avatar/abc123",
			size:     64,
			expected: "http://www.gravatar.com/avatar/abc123?s=64&d=404",
		},
		{
			name:     "unrecognized host is passed through",
			avatar:   "https://cdn.example.com/me.png?s=999",
			size:     40,
			expected: "https://cdn.example.com/me.png?s=999",
		},
		{
			name:     "empty avatar stays empty",
			avatar:   "",
			size:     40,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Comment{AuthorAvatar: tt.avatar}
			if got := c.AvatarURL(tt.size); got != tt.expected {
				t.Errorf("AvatarURL(%d) = %q, want %q", tt.size, got, tt.expected)
			}
		})
	}
}

func TestCommentIsOwner(t *testing.T) {
	c := &Comment{AuthorEmail: "admin@example.com"}

	if !c.IsOwner("admin@example.com") {
		t.Error("IsOwner() = false for the configured admin address")
	}
	if c.IsOwner("other@example.com") {
		t.Error("IsOwner() = true for a different address")
	}
	// An unset admin address must never match, not even an empty author email.
	if (&Comment{}).IsOwner("") {
		t.Error("IsOwner(\"\") = true with no admin configured")
	}
}

func TestCommentTarget(t *testing.T) {
	c := &Comment{TargetKind: TargetArticle, TargetID: 12}
	if got := c.Target(); got != (TargetRef{Kind: TargetArticle, ID: 12}) {
		t.Errorf("Target() = %+v", got)
	}
}
