package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// local@domain.tld with no whitespace and no extra '@'
	contactEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Custom tag names
const (
	TagContactEmail = "contact_email"
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation(TagContactEmail, ContactEmail)
}

// ContactEmail validates the local@domain.tld shape accepted by the contact form.
// Empty values pass; combine with required when needed.
func ContactEmail(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return IsContactEmail(val)
}

// IsContactEmail reports whether s has the local@domain.tld shape
func IsContactEmail(s string) bool {
	return contactEmailRegex.MatchString(s)
}
