package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"portfolio-backend/internal/contactform"
	"portfolio-backend/internal/domain"
)

// ErrNotSent is returned when the user gives up after a failed submission
var ErrNotSent = errors.New("contactctl: message not sent")

var fieldLabels = map[domain.Field]string{
	domain.FieldName:    "Name",
	domain.FieldEmail:   "Email",
	domain.FieldMessage: "Message",
}

// session walks one visitor through the form until the message is sent or they give up
type session struct {
	form   *contactform.Form
	prompt Prompter
	out    io.Writer
}

func (s *session) run(ctx context.Context) error {
	pending := domain.Fields
	for {
		for _, f := range pending {
			if err := s.ask(ctx, f); err != nil {
				return err
			}
		}

		done, err := s.form.Submit(ctx)
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			pending = s.reportInvalid(verrs)
			continue
		}
		if err != nil {
			return err
		}

		var outcome domain.SubmissionOutcome
		select {
		case outcome = <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
		if outcome.Success {
			return nil
		}

		retry, err := s.prompt.Confirm(ctx, "Try again?", true)
		if err != nil {
			return err
		}
		if !retry {
			return ErrNotSent
		}
		// values are kept after a failure, so a retry goes straight to Submit
		pending = nil
	}
}

func (s *session) ask(ctx context.Context, f domain.Field) error {
	current := s.form.Values().Value(f)

	var (
		v   string
		err error
	)
	if f == domain.FieldMessage {
		v, err = s.prompt.TextArea(ctx, fieldLabels[f], current)
	} else {
		v, err = s.prompt.Input(ctx, fieldLabels[f], current)
	}
	if err != nil {
		return err
	}
	return s.form.SetField(f, v)
}

// reportInvalid prints the inline errors and returns the fields to ask again
func (s *session) reportInvalid(verrs domain.ValidationErrors) []domain.Field {
	var failing []domain.Field
	for _, f := range domain.Fields {
		fe, ok := verrs[f]
		if !ok {
			continue
		}
		fmt.Fprintf(s.out, "  ✗ %s\n", fe.Message)
		failing = append(failing, f)
	}
	return failing
}

func printNotification(w io.Writer) func(domain.Notification) {
	return func(n domain.Notification) {
		mark := "✓"
		if n.Kind == domain.NotificationError {
			mark = "!"
		}
		fmt.Fprintf(w, "%s %s\n", mark, n.Text)
	}
}
