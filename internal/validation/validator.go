package validation

import (
	"regexp"
	"strings"

	"github.com/newsdesk-api/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// ValidateCommentSubmission validates the public comment form payload.
// The honeypot field is not validated here; the service short-circuits
// on it before validation runs.
func ValidateCommentSubmission(sub *models.CommentSubmission) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(sub.ArticleSlug) == "" {
		errors = append(errors, ValidationError{Field: "article_slug", Message: "article_slug is required"})
	} else if !slugRegex.MatchString(sub.ArticleSlug) {
		errors = append(errors, ValidationError{Field: "article_slug", Message: "invalid slug format", Value: sub.ArticleSlug})
	}

	if strings.TrimSpace(sub.Name) == "" {
		errors = append(errors, ValidationError{Field: "name", Message: "name is required"})
	}

	if strings.TrimSpace(sub.Content) == "" {
		errors = append(errors, ValidationError{Field: "content", Message: "content is required"})
	}

	if sub.Email != "" && !emailRegex.MatchString(sub.Email) {
		errors = append(errors, ValidationError{Field: "email", Message: "invalid email format", Value: sub.Email})
	}

	return errors
}

// ValidateArticleDraft validates a new draft article payload
func ValidateArticleDraft(draft *models.ArticleDraft) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(draft.Title) == "" {
		errors = append(errors, ValidationError{Field: "title", Message: "title is required"})
	}
	if strings.TrimSpace(draft.Body) == "" {
		errors = append(errors, ValidationError{Field: "body", Message: "body is required"})
	}

	return errors
}

// ValidEmail reports whether the string looks like an email address
func ValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidSlug reports whether the string is a well-formed URL slug
func ValidSlug(s string) bool {
	return slugRegex.MatchString(s)
}
