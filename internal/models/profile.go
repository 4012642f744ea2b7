package models

import (
	"time"
)

// Profile represents a site author profile; its guestbook page is the second
// target kind comments can attach to. Info is derived from InfoMarkdown on
// every save and is nil exactly when InfoMarkdown is nil or empty.
type Profile struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	SmallAvatar  string    `json:"small_avatar,omitempty" db:"small_avatar"`
	InfoMarkdown *string   `json:"info_markdown,omitempty" db:"info_markdown"`
	Info         *string   `json:"info,omitempty" db:"info"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Summary returns the rendered info up to the page break marker.
func (p *Profile) Summary() string {
	if p.Info == nil {
		return ""
	}
	return summaryOf(*p.Info)
}
