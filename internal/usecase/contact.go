package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/apperror"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/metrics"
	"portfolio-backend/pkg/security"
	"portfolio-backend/pkg/validation"
)

// Public messages returned by the relay
const (
	MsgInvalidBody   = "Invalid request body"
	MsgAllRequired   = "All fields are required"
	MsgSendFailed    = "Failed to send message. Please try again later."
	MsgMessageSent   = "Message sent successfully!"
	MsgContactStatus = "Contact API is working"
)

// ErrMailerNotConfigured is the cause behind a 500 when delivery credentials are missing
var ErrMailerNotConfigured = errors.New("email service is not configured")

type contactUsecase struct {
	mailer  domain.Mailer
	metrics *metrics.Metrics
	secLog  *security.SecurityLogger
	tracker *security.AbuseTracker
	log     *slog.Logger
	now     func() time.Time
}

// ContactOption customizes the relay usecase
type ContactOption func(*contactUsecase)

// WithAbuseTracker reports clients that keep sending rejected submissions
func WithAbuseTracker(t *security.AbuseTracker) ContactOption {
	return func(uc *contactUsecase) { uc.tracker = t }
}

// NewContactUsecase creates the relay usecase. m and secLog may be nil.
func NewContactUsecase(mailer domain.Mailer, m *metrics.Metrics, secLog *security.SecurityLogger, opts ...ContactOption) domain.ContactUsecase {
	if secLog == nil {
		secLog = security.DefaultLogger()
	}
	uc := &contactUsecase{
		mailer:  mailer,
		metrics: m,
		secLog:  secLog,
		log:     logger.Log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// SendContactMessage strips markup, validates what is left with the shared
// Validator and hands the result to the mailer
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactRequest) error {
	if req == nil {
		return apperror.BadRequest(MsgInvalidBody)
	}
	reqID := domain.RequestIDFrom(ctx)
	sanitized := validation.SanitizeContact(*req)

	if errs := validation.ValidateContact(sanitized); !errs.Valid() {
		uc.metrics.ObserveSubmission(metrics.ResultInvalid)
		ip := domain.ClientIPFrom(ctx)
		uc.secLog.LogValidationFailed(ctx, req.Email, ip, reqID, errs.Messages())
		if _, err := uc.tracker.RecordRejected(ctx, ip, reqID); err != nil {
			uc.log.Warn("abuse tracking failed", "request_id", reqID, "error", err)
		}
		return apperror.Validation(RelayMessage(errs), errs)
	}

	if !uc.mailer.IsConfigured() {
		uc.metrics.ObserveSubmission(metrics.ResultUnconfigured)
		uc.log.Error("contact delivery skipped", "request_id", reqID, "error", ErrMailerNotConfigured)
		uc.secLog.LogConfigMissing(ctx, "email", reqID)
		return apperror.New(http.StatusInternalServerError, MsgSendFailed, ErrMailerNotConfigured)
	}

	clean := sanitized.Trimmed()
	start := uc.now()
	err := uc.mailer.SendContactEmail(ctx, domain.ContactEmail{
		Name:    clean.Name,
		Email:   clean.Email,
		Message: clean.Message,
	})
	uc.metrics.ObserveDelivery(uc.now().Sub(start))

	if err != nil {
		uc.metrics.ObserveSubmission(metrics.ResultFailed)
		uc.secLog.LogDeliveryFailed(ctx, clean.Email, reqID, err)
		return apperror.New(http.StatusInternalServerError, MsgSendFailed, fmt.Errorf("failed to send contact email: %w", err))
	}

	uc.metrics.ObserveSubmission(metrics.ResultSent)
	uc.log.Info("contact message delivered", "request_id", reqID, "sender", security.MaskEmail(clean.Email))
	return nil
}

// RelayMessage picks the single headline message for a rejected request.
// Any missing field collapses to MsgAllRequired; otherwise the first failing
// rule wins in name, email, message order.
func RelayMessage(errs domain.ValidationErrors) string {
	if errs.HasKind(domain.ErrRequired) {
		return MsgAllRequired
	}
	if _, fe, ok := errs.First(); ok {
		return fe.Message
	}
	return ""
}
