package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"

	"portfolio-backend/config"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/validation"
)

// SendFunc matches smtp.SendMail
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailService handles sending emails via SMTP
type EmailService struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
	toEmail   string
	siteURL   string

	send SendFunc
	now  func() time.Time
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Message     string
	SiteURL     string
	SentAt      string
}

// Option customizes an EmailService
type Option func(*EmailService)

// WithSendFunc replaces smtp.SendMail
func WithSendFunc(f SendFunc) Option {
	return func(s *EmailService) { s.send = f }
}

// WithClock replaces time.Now for the sent-at footer
func WithClock(now func() time.Time) Option {
	return func(s *EmailService) { s.now = now }
}

// NewEmailService creates a new email service from the delivery account configuration
func NewEmailService(cfg *config.Config, opts ...Option) *EmailService {
	s := &EmailService{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.EmailUser,
		password:  cfg.EmailPass,
		fromEmail: cfg.EmailUser, // the delivery account is always the sender
		toEmail:   cfg.Recipient(),
		siteURL:   cfg.SiteURL,
		send:      smtp.SendMail,
		now:       time.Now,
	}
	if s.siteURL == "" {
		s.siteURL = config.DefaultSiteURL
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// contactEmailTemplate is the HTML template for contact form emails
const contactEmailTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb; border-bottom: 2px solid #2563eb; padding-bottom: 10px;">New Contact Form Submission</h2>
  <div style="background-color: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="color: #1e293b; margin-top: 0;">Contact Details</h3>
    <div style="margin-bottom: 15px;">
      <strong style="color: #475569;">Name:</strong>
      <span style="color: #1e293b; margin-left: 10px;">{{.SenderName}}</span>
    </div>
    <div style="margin-bottom: 15px;">
      <strong style="color: #475569;">Email:</strong>
      <span style="color: #1e293b; margin-left: 10px;">{{.SenderEmail}}</span>
    </div>
    <div style="margin-bottom: 15px;">
      <strong style="color: #475569;">Message:</strong>
      <p style="color: #1e293b; margin: 10px 0 0 0; line-height: 1.6; white-space: pre-wrap;">{{.Message}}</p>
    </div>
  </div>
  <div style="background-color: #f1f5f9; padding: 15px; border-radius: 8px; font-size: 12px; color: #64748b;">
    <p style="margin: 0;">This message was sent from your portfolio contact form at {{.SiteURL}}</p>
    <p style="margin: 5px 0 0 0;">Sent on: {{.SentAt}}</p>
  </div>
</div>`

const contactTextTemplate = `New Contact Form Submission

Name: %s
Email: %s
Message: %s

Sent from your portfolio contact form at %s.
`

var (
	htmlTmpl     = template.Must(template.New("contact").Parse(contactEmailTemplate))
	headerEscape = strings.NewReplacer("\r", " ", "\n", " ")
)

// SendContactEmail sends a contact form email to the configured recipient
func (s *EmailService) SendContactEmail(ctx context.Context, msg domain.ContactEmail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := s.BuildMessage(msg)
	if err != nil {
		return err
	}

	// Setup SMTP authentication
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := s.send(addr, auth, s.fromEmail, []string{s.toEmail}, raw); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// BuildMessage renders the full MIME message for msg
func (s *EmailService) BuildMessage(msg domain.ContactEmail) ([]byte, error) {
	data := ContactEmailData{
		SenderName:  headerEscape.Replace(validation.StripMarkup(msg.Name)),
		SenderEmail: headerEscape.Replace(validation.StripMarkup(msg.Email)),
		Message:     validation.StripMarkup(msg.Message),
		SiteURL:     s.siteURL,
		SentAt:      s.now().UTC().Format(time.RFC1123),
	}

	var htmlBody bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBody, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}
	textBody := fmt.Sprintf(contactTextTemplate, data.SenderName, data.SenderEmail, data.Message, data.SiteURL)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, part := range []struct {
		contentType string
		content     string
	}{
		{"text/plain; charset=UTF-8", textBody},
		{"text/html; charset=UTF-8", htmlBody.String()},
	} {
		w, err := mw.CreatePart(textproto.MIMEHeader{
			"Content-Type":              {part.contentType},
			"Content-Transfer-Encoding": {"quoted-printable"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create mime part: %w", err)
		}
		qp := quotedprintable.NewWriter(w)
		if _, err := qp.Write([]byte(part.content)); err != nil {
			return nil, fmt.Errorf("failed to write mime part: %w", err)
		}
		if err := qp.Close(); err != nil {
			return nil, fmt.Errorf("failed to write mime part: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to close mime body: %w", err)
	}

	// Non-ASCII names become RFC 2047 encoded-words; plain ASCII passes through unchanged
	subject := mime.QEncoding.Encode("utf-8", fmt.Sprintf("New Contact Form Submission from %s", data.SenderName))

	var out bytes.Buffer
	fmt.Fprintf(&out,
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Reply-To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: multipart/alternative; boundary=%s\r\n"+
			"\r\n",
		s.fromEmail,
		s.toEmail,
		data.SenderEmail,
		subject,
		mw.Boundary(),
	)
	out.Write(body.Bytes())

	return out.Bytes(), nil
}

// Recipient returns the address contact messages are delivered to
func (s *EmailService) Recipient() string {
	return s.toEmail
}

// IsConfigured checks if the email service has valid SMTP configuration
func (s *EmailService) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != "" && s.toEmail != ""
}
