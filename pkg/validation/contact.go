package validation

import (
	"sync"

	"portfolio-backend/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Contact form length limits
const (
	MinNameLength    = 2
	MinMessageLength = 10
)

// Messages surfaced next to the offending field
const (
	MsgNameRequired    = "Name is required"
	MsgNameTooShort    = "Name must be at least 2 characters"
	MsgEmailRequired   = "Email is required"
	MsgEmailInvalid    = "Please enter a valid email address"
	MsgMessageRequired = "Message is required"
	MsgMessageTooShort = "Message must be at least 10 characters"
)

type fieldRule struct {
	tag     string
	kind    domain.ErrorKind
	message string
}

// contactRules are checked in order per field; the first failing rule is reported for that field
var contactRules = map[domain.Field][]fieldRule{
	domain.FieldName: {
		{tag: "required", kind: domain.ErrRequired, message: MsgNameRequired},
		{tag: "min=2", kind: domain.ErrTooShort, message: MsgNameTooShort},
	},
	domain.FieldEmail: {
		{tag: "required", kind: domain.ErrRequired, message: MsgEmailRequired},
		{tag: TagContactEmail, kind: domain.ErrInvalidFormat, message: MsgEmailInvalid},
	},
	domain.FieldMessage: {
		{tag: "required", kind: domain.ErrRequired, message: MsgMessageRequired},
		{tag: "min=10", kind: domain.ErrTooShort, message: MsgMessageTooShort},
	},
}

var (
	contactValidator     *validator.Validate
	contactValidatorOnce sync.Once
)

func engine() *validator.Validate {
	contactValidatorOnce.Do(func() {
		contactValidator = validator.New()
		RegisterValidators(contactValidator)
	})
	return contactValidator
}

// ValidateContact checks every field of req independently and collects all failures.
// Values are trimmed before checking. The returned map is always freshly allocated.
func ValidateContact(req domain.ContactRequest) domain.ValidationErrors {
	trimmed := req.Trimmed()
	errs := make(domain.ValidationErrors)

	for _, field := range domain.Fields {
		value := trimmed.Value(field)
		for _, rule := range contactRules[field] {
			if err := engine().Var(value, rule.tag); err != nil {
				errs[field] = domain.FieldError{Kind: rule.kind, Message: rule.message}
				break
			}
		}
	}

	return errs
}
