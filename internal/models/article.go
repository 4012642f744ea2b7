package models

import (
	"strings"
	"time"
)

// ArticleStatus represents the publication state of an article
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusRetired   ArticleStatus = "retired"
)

// ValidStatuses defines allowed article statuses
var ValidStatuses = map[ArticleStatus]bool{
	StatusDraft:     true,
	StatusPublished: true,
	StatusRetired:   true,
}

// Article represents an authored content document. Content and Abstract are
// derived from their markdown counterparts on every save and are never edited
// directly; Abstract is nil exactly when AbstractMarkdown is nil or empty.
type Article struct {
	ID               int64         `json:"id" db:"id"`
	Slug             string        `json:"slug" db:"slug"`
	Title            string        `json:"title" db:"title"`
	AbstractMarkdown *string       `json:"abstract_markdown,omitempty" db:"abstract_markdown"`
	Abstract         *string       `json:"abstract,omitempty" db:"abstract"`
	ContentMarkdown  string        `json:"content_markdown" db:"content_markdown"`
	Content          string        `json:"content" db:"content"`
	Status           ArticleStatus `json:"status" db:"status"`
	OnTop            bool          `json:"on_top" db:"on_top"`
	Tags             []string      `json:"tags" db:"-"` // Stored as JSON string in DB
	AuthorID         int64         `json:"author_id" db:"author_id"`
	RawViews         int64         `json:"raw_views" db:"raw_views"`
	VisitorViews     int64         `json:"visitor_views" db:"visitor_views"`
	Likes            int64         `json:"likes" db:"likes"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	ModifiedAt       time.Time     `json:"modified_at" db:"modified_at"`
}

// pageBreak splits the rendered content into the part shown on listing pages
// and the rest of the document.
const pageBreak = "<p><!-- pagebreak --></p>"

// Summary returns the rendered content up to the page break marker, or the
// whole content when no marker is present.
func (a *Article) Summary() string {
	return summaryOf(a.Content)
}

func summaryOf(html string) string {
	if i := strings.Index(html, pageBreak); i >= 0 {
		return html[:i]
	}
	return html
}
