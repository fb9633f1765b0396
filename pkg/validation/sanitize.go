package validation

import (
	"html"
	"sync"

	"portfolio-backend/internal/domain"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy *bluemonday.Policy
	stripOnce   sync.Once
)

// StripMarkup removes any HTML from user supplied text and returns plain text
func StripMarkup(s string) string {
	stripOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(stripPolicy.Sanitize(s))
}

// SanitizeContact strips markup from every field so length rules apply to what the recipient reads
func SanitizeContact(req domain.ContactRequest) domain.ContactRequest {
	return domain.ContactRequest{
		Name:    StripMarkup(req.Name),
		Email:   StripMarkup(req.Email),
		Message: StripMarkup(req.Message),
	}
}
