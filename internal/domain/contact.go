package domain

import (
	"context"
	"sort"
	"strings"
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" example:"Ada Lovelace"`
	Email   string `json:"email" example:"ada@example.com"`
	Message string `json:"message" example:"I'd love to talk about a frontend role."`
}

// Trimmed returns a copy with surrounding whitespace removed from every field
func (r ContactRequest) Trimmed() ContactRequest {
	return ContactRequest{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Message: strings.TrimSpace(r.Message),
	}
}

// Value returns the value held for field, or "" for an unknown field
func (r ContactRequest) Value(field Field) string {
	switch field {
	case FieldName:
		return r.Name
	case FieldEmail:
		return r.Email
	case FieldMessage:
		return r.Message
	}
	return ""
}

// With returns a copy of r with field set to value
func (r ContactRequest) With(field Field, value string) ContactRequest {
	switch field {
	case FieldName:
		r.Name = value
	case FieldEmail:
		r.Email = value
	case FieldMessage:
		r.Message = value
	}
	return r
}

// Field names a contact form input
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// Fields lists the form inputs in reporting priority order
var Fields = []Field{FieldName, FieldEmail, FieldMessage}

// Valid reports whether f is one of the known form inputs
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

func (f Field) priority() int {
	for i, known := range Fields {
		if f == known {
			return i
		}
	}
	return len(Fields)
}

// ErrorKind classifies a field validation failure
type ErrorKind string

const (
	ErrRequired      ErrorKind = "required"
	ErrTooShort      ErrorKind = "too_short"
	ErrInvalidFormat ErrorKind = "invalid_format"
)

// FieldError is a single field's validation failure
type FieldError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// ValidationErrors maps each failing field to its error. An empty map means the request is valid.
type ValidationErrors map[Field]FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, f := range v.sortedFields() {
		parts = append(parts, string(f)+": "+v[f].Message)
	}
	return strings.Join(parts, "; ")
}

// Valid reports whether no field failed
func (v ValidationErrors) Valid() bool {
	return len(v) == 0
}

// Has reports whether field failed with the given kind
func (v ValidationErrors) Has(field Field, kind ErrorKind) bool {
	fe, ok := v[field]
	return ok && fe.Kind == kind
}

// HasKind reports whether any field failed with kind
func (v ValidationErrors) HasKind(kind ErrorKind) bool {
	for _, fe := range v {
		if fe.Kind == kind {
			return true
		}
	}
	return false
}

// First returns the error of the highest priority failing field
func (v ValidationErrors) First() (Field, FieldError, bool) {
	fields := v.sortedFields()
	if len(fields) == 0 {
		return "", FieldError{}, false
	}
	return fields[0], v[fields[0]], true
}

// Messages flattens the errors to field name -> human readable message
func (v ValidationErrors) Messages() map[string]string {
	out := make(map[string]string, len(v))
	for f, fe := range v {
		out[string(f)] = fe.Message
	}
	return out
}

// Clone returns an independent copy
func (v ValidationErrors) Clone() ValidationErrors {
	out := make(ValidationErrors, len(v))
	for f, fe := range v {
		out[f] = fe
	}
	return out
}

func (v ValidationErrors) sortedFields() []Field {
	fields := make([]Field, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool {
		pi, pj := fields[i].priority(), fields[j].priority()
		if pi != pj {
			return pi < pj
		}
		return fields[i] < fields[j]
	})
	return fields
}

// SubmissionOutcome is the single result of one gateway submit call
type SubmissionOutcome struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

// Succeeded builds a successful outcome
func Succeeded() SubmissionOutcome {
	return SubmissionOutcome{Success: true}
}

// Failed builds a failed outcome carrying reason
func Failed(reason string) SubmissionOutcome {
	return SubmissionOutcome{Reason: reason}
}

// ContactEmail is the operator-facing message composed from a valid request
type ContactEmail struct {
	Name    string
	Email   string
	Message string
}

// Mailer delivers composed contact emails to the operator
type Mailer interface {
	SendContactEmail(ctx context.Context, msg ContactEmail) error
	IsConfigured() bool
}

// ContactUsecase defines the relay side of the contact pipeline
type ContactUsecase interface {
	// SendContactMessage re-validates the request and delivers it to the operator
	SendContactMessage(ctx context.Context, req *ContactRequest) error
}
