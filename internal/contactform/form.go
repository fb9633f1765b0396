// Package contactform implements the contact form state machine.
//
// A Form owns the field values, the inline validation errors and a queue of
// transient notifications. Submit validates locally and, when the request is
// valid, hands it to a domain.Gateway on a background goroutine. While that
// call is in flight the form is Submitting: edits and further submits are
// rejected with ErrSubmitting, so at most one submission runs per form.
package contactform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/validation"
)

// State of a Form
type State int

const (
	Idle State = iota
	Editing
	Submitting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Notification texts shown to the visitor
const (
	SuccessText = "Message sent successfully! I'll get back to you soon."
	FailureText = "Failed to send message. Please try again later."
)

var (
	ErrSubmitting   = errors.New("contactform: a submission is already in flight")
	ErrUnknownField = errors.New("contactform: unknown field")
)

// Option customizes a Form
type Option func(*options)

type options struct {
	ttl       time.Duration
	now       func() time.Time
	afterFunc AfterFunc
	onNotify  func(domain.Notification)
	validate  func(domain.ContactRequest) domain.ValidationErrors
	log       *slog.Logger
}

// WithNotificationTTL sets how long notifications live before expiring
func WithNotificationTTL(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.ttl = d
		}
	}
}

// WithNotifyFunc is called for every enqueued notification
func WithNotifyFunc(fn func(domain.Notification)) Option {
	return func(o *options) { o.onNotify = fn }
}

// WithClock replaces time.Now for notification timestamps
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithAfterFunc replaces time.AfterFunc for notification expiry
func WithAfterFunc(fn AfterFunc) Option {
	return func(o *options) { o.afterFunc = fn }
}

// WithLogger replaces the package logger
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// Form is the contact form state machine. It is safe for concurrent use.
type Form struct {
	gw       domain.Gateway
	validate func(domain.ContactRequest) domain.ValidationErrors
	log      *slog.Logger

	mu     sync.Mutex
	state  State
	values domain.ContactRequest
	errs   domain.ValidationErrors

	notifications *NotificationQueue
}

// New returns an Idle form submitting through gw
func New(gw domain.Gateway, opts ...Option) *Form {
	o := options{
		ttl:       DefaultNotificationTTL,
		now:       time.Now,
		afterFunc: realAfterFunc,
		validate:  validation.ValidateContact,
		log:       logger.Log,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Form{
		gw:            gw,
		validate:      o.validate,
		log:           o.log,
		errs:          domain.ValidationErrors{},
		notifications: newNotificationQueue(o.ttl, o.now, o.afterFunc, o.onNotify),
	}
}

// SetField updates one field and clears only that field's error
func (f *Form) SetField(field domain.Field, value string) error {
	if !field.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == Submitting {
		return ErrSubmitting
	}
	f.values = f.values.With(field, value)
	delete(f.errs, field)
	f.state = Editing
	return nil
}

// Submit validates the current values and, if they pass, starts one gateway call.
//
// Invalid input returns the domain.ValidationErrors as the error and leaves the
// form Editing. On success the returned channel yields the outcome once, after
// the form's state, fields and notifications already reflect it.
func (f *Form) Submit(ctx context.Context) (<-chan domain.SubmissionOutcome, error) {
	f.mu.Lock()
	if f.state == Submitting {
		f.mu.Unlock()
		return nil, ErrSubmitting
	}

	errs := f.validate(f.values)
	if !errs.Valid() {
		f.errs = errs
		f.state = Editing
		f.mu.Unlock()
		return nil, errs.Clone()
	}

	f.errs = domain.ValidationErrors{}
	f.state = Submitting
	req := f.values.Trimmed()
	f.mu.Unlock()

	done := make(chan domain.SubmissionOutcome, 1)
	go func() {
		out := f.submit(ctx, req)
		f.resolve(out)
		done <- out
		close(done)
	}()
	return done, nil
}

func (f *Form) submit(ctx context.Context, req domain.ContactRequest) (out domain.SubmissionOutcome) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Error("gateway panicked", "panic", fmt.Sprint(r))
			out = domain.Failed("internal error")
		}
	}()
	return f.gw.Submit(ctx, req)
}

func (f *Form) resolve(out domain.SubmissionOutcome) {
	f.mu.Lock()
	if out.Success {
		f.values = domain.ContactRequest{}
		f.state = Idle
	} else {
		f.state = Editing
	}
	f.mu.Unlock()

	if out.Success {
		f.notifications.Push(domain.NotificationSuccess, SuccessText)
		return
	}
	f.log.Warn("contact submission failed", "strategy", f.gw.Strategy(), "reason", out.Reason)
	f.notifications.Push(domain.NotificationError, FailureText)
}

// State returns the current state
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Values returns the current field values
func (f *Form) Values() domain.ContactRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns a copy of the current inline errors
func (f *Form) Errors() domain.ValidationErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs.Clone()
}

// Notifications returns the live notifications in insertion order
func (f *Form) Notifications() []domain.Notification {
	return f.notifications.List()
}

// Dismiss removes one notification before it expires
func (f *Form) Dismiss(id string) bool {
	return f.notifications.Dismiss(id)
}

// Close stops pending notification timers
func (f *Form) Close() {
	f.notifications.Close()
}
