package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/content-engagement-api/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	urlRegex   = regexp.MustCompile(`^https?://\S+$`)
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidationErrors is the full set of rejections for one submission. A
// rejected submission is never partially applied.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e))
	for _, ve := range e {
		fields = append(fields, fmt.Sprintf("%s: %s", ve.Field, ve.Message))
	}
	return "validation failed: " + strings.Join(fields, "; ")
}

// OrNil returns the errors as an error value, or nil when empty.
func (e ValidationErrors) OrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ValidateTarget validates a polymorphic target reference
func ValidateTarget(target models.TargetRef) ValidationErrors {
	var errors ValidationErrors

	if !target.Kind.Valid() {
		errors = append(errors, ValidationError{
			Field:   "target.kind",
			Message: fmt.Sprintf("must be one of: %s, %s", models.TargetArticle, models.TargetProfile),
			Value:   string(target.Kind),
		})
	}
	if target.ID <= 0 {
		errors = append(errors, ValidationError{Field: "target.id", Message: "must be a positive id", Value: target.ID})
	}

	return errors
}

// ValidateComment validates a comment submission
func ValidateComment(sub *models.CommentSubmission) ValidationErrors {
	errors := ValidateTarget(sub.Target)

	if strings.TrimSpace(sub.AuthorName) == "" {
		errors = append(errors, ValidationError{Field: "author_name", Message: "author name is required"})
	} else if utf8.RuneCountInString(sub.AuthorName) > 50 {
		errors = append(errors, ValidationError{Field: "author_name", Message: "author name too long (max 50)", Value: sub.AuthorName})
	}

	if sub.AuthorEmail == "" {
		errors = append(errors, ValidationError{Field: "author_email", Message: "email is required"})
	} else if !emailRegex.MatchString(sub.AuthorEmail) {
		errors = append(errors, ValidationError{Field: "author_email", Message: "invalid email format", Value: sub.AuthorEmail})
	}

	if sub.AuthorSite != "" && !urlRegex.MatchString(sub.AuthorSite) {
		errors = append(errors, ValidationError{Field: "author_site", Message: "invalid URL", Value: sub.AuthorSite})
	}
	if sub.AuthorAvatar != "" && !urlRegex.MatchString(sub.AuthorAvatar) {
		errors = append(errors, ValidationError{Field: "author_avatar", Message: "invalid URL", Value: sub.AuthorAvatar})
	}

	if strings.TrimSpace(sub.Markdown) == "" {
		errors = append(errors, ValidationError{Field: "content_markdown", Message: "content is required"})
	}

	if sub.ParentID != nil && *sub.ParentID <= 0 {
		errors = append(errors, ValidationError{Field: "parent_id", Message: "must be a positive id", Value: *sub.ParentID})
	}

	return errors
}

// ValidateArticle validates an article before save
func ValidateArticle(article *models.Article) ValidationErrors {
	var errors ValidationErrors

	if strings.TrimSpace(article.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}
	if article.Slug == "" {
		errors = append(errors, ValidationError{Field: "slug", Message: "slug is required"})
	} else if !slugRegex.MatchString(article.Slug) {
		errors = append(errors, ValidationError{Field: "slug", Message: "invalid slug format", Value: article.Slug})
	}
	if strings.TrimSpace(article.ContentMarkdown) == "" {
		errors = append(errors, ValidationError{Field: "content_markdown", Message: "content is required"})
	}
	if !models.ValidStatuses[article.Status] {
		errors = append(errors, ValidationError{Field: "status", Message: "invalid status", Value: string(article.Status)})
	}

	return errors
}
