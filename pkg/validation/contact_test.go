package validation_test

import (
	"strings"
	"testing"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() domain.ContactRequest {
	return domain.ContactRequest{Name: "Al", Email: "a@b.co", Message: "Hello there friend"}
}

func TestValidateContact_ValidRequest(t *testing.T) {
	errs := validation.ValidateContact(validRequest())
	assert.True(t, errs.Valid())
	assert.Empty(t, errs)
}

func TestValidateContact_RequiredFields(t *testing.T) {
	blanks := []string{"", " ", "\t\n", "   "}

	for _, field := range domain.Fields {
		for _, blank := range blanks {
			req := validRequest().With(field, blank)
			errs := validation.ValidateContact(req)
			assert.Truef(t, errs.Has(field, domain.ErrRequired), "field %s with %q", field, blank)
			assert.Len(t, errs, 1)
		}
	}

	t.Run("Should report every empty field at once", func(t *testing.T) {
		errs := validation.ValidateContact(domain.ContactRequest{})
		require.Len(t, errs, 3)
		for _, field := range domain.Fields {
			assert.True(t, errs.Has(field, domain.ErrRequired))
		}
	})
}

func TestValidateContact_NameLength(t *testing.T) {
	cases := []struct {
		name    string
		wantErr bool
	}{
		{"A", true},
		{" A ", true},
		{"Al", false},
		{"  Bo  ", false},
		{"Ada Lovelace", false},
		{strings.Repeat("x", 500), false},
		{"Зо", false},
	}

	for _, tc := range cases {
		errs := validation.ValidateContact(validRequest().With(domain.FieldName, tc.name))
		if tc.wantErr {
			assert.Truef(t, errs.Has(domain.FieldName, domain.ErrTooShort), "name %q", tc.name)
		} else {
			_, failed := errs[domain.FieldName]
			assert.Falsef(t, failed, "name %q", tc.name)
		}
	}
}

func TestValidateContact_EmailFormat(t *testing.T) {
	valid := []string{"a@b.co", "x@y.com", "first.last@sub.example.org", "a+tag@b.c", " ada@example.com "}
	invalid := []string{"bad", "no-at.example.com", "a@b", "a@@b.com", "a b@c.com", "a@b c.com", "@b.com", "a@.com"}

	for _, email := range valid {
		errs := validation.ValidateContact(validRequest().With(domain.FieldEmail, email))
		_, failed := errs[domain.FieldEmail]
		assert.Falsef(t, failed, "email %q", email)
	}

	for _, email := range invalid {
		errs := validation.ValidateContact(validRequest().With(domain.FieldEmail, email))
		assert.Truef(t, errs.Has(domain.FieldEmail, domain.ErrInvalidFormat), "email %q", email)
	}
}

func TestValidateContact_MessageLength(t *testing.T) {
	errs := validation.ValidateContact(validRequest().With(domain.FieldMessage, "123456789"))
	assert.True(t, errs.Has(domain.FieldMessage, domain.ErrTooShort))

	errs = validation.ValidateContact(validRequest().With(domain.FieldMessage, "1234567890"))
	assert.True(t, errs.Valid())

	errs = validation.ValidateContact(validRequest().With(domain.FieldMessage, "   123456789   "))
	assert.True(t, errs.Has(domain.FieldMessage, domain.ErrTooShort))
}

func TestValidateContact_CollectsAllErrors(t *testing.T) {
	errs := validation.ValidateContact(domain.ContactRequest{Name: "", Email: "bad", Message: "short"})

	want := domain.ValidationErrors{
		domain.FieldName:    {Kind: domain.ErrRequired, Message: validation.MsgNameRequired},
		domain.FieldEmail:   {Kind: domain.ErrInvalidFormat, Message: validation.MsgEmailInvalid},
		domain.FieldMessage: {Kind: domain.ErrTooShort, Message: validation.MsgMessageTooShort},
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("ValidateContact() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateContact_Deterministic(t *testing.T) {
	req := domain.ContactRequest{Name: "A", Email: "nope", Message: ""}

	first := validation.ValidateContact(req)
	second := validation.ValidateContact(req)
	assert.Equal(t, first, second)

	// fresh map each pass
	first[domain.FieldName] = domain.FieldError{Kind: domain.ErrRequired, Message: "mutated"}
	third := validation.ValidateContact(req)
	assert.Equal(t, validation.MsgNameTooShort, third[domain.FieldName].Message)
}

func TestValidationErrors_First(t *testing.T) {
	errs := validation.ValidateContact(domain.ContactRequest{Name: "Bo", Email: "bad", Message: "short"})

	field, fe, ok := errs.First()
	require.True(t, ok)
	assert.Equal(t, domain.FieldEmail, field)
	assert.Equal(t, validation.MsgEmailInvalid, fe.Message)
}

func TestContactEmailTag(t *testing.T) {
	v := validator.New()
	validation.RegisterValidators(v)

	type dto struct {
		Email string `validate:"required,contact_email"`
	}

	assert.NoError(t, v.Struct(dto{Email: "x@y.com"}))

	var verrs validator.ValidationErrors
	err := v.Struct(dto{Email: "x@y"})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, validation.TagContactEmail, verrs[0].Tag())

	err = v.Struct(dto{})
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "required", verrs[0].Tag())
}

func TestSanitizeContact(t *testing.T) {
	got := validation.SanitizeContact(domain.ContactRequest{
		Name:    "<b>Eve</b>",
		Email:   "eve@example.com",
		Message: `<script>alert("x")</script>Tom &amp; Jerry <i></i>`,
	})

	assert.Equal(t, domain.ContactRequest{Name: "Eve", Email: "eve@example.com", Message: "Tom & Jerry "}, got)
}

func TestSanitizedMarkupOnlyMessageIsTooShort(t *testing.T) {
	errs := validation.ValidateContact(validation.SanitizeContact(domain.ContactRequest{
		Name:    "Al",
		Email:   "a@b.co",
		Message: "<b></b><i></i>x",
	}))

	fe, ok := errs[domain.FieldMessage]
	require.True(t, ok)
	assert.Equal(t, validation.MsgMessageTooShort, fe.Message)
}
