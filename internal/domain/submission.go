package domain

import (
	"context"
	"time"
)

// Strategy selects how a contact request reaches its recipient
type Strategy string

const (
	// StrategyDirect hands the request straight to the email delivery service
	StrategyDirect Strategy = "direct"
	// StrategyRelay posts the request to the deployment's own relay endpoint
	StrategyRelay Strategy = "relay"
)

// DirectConfig identifies the EmailJS account used by the direct strategy
type DirectConfig struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	Endpoint   string
}

// RelayConfig identifies the relay endpoint
type RelayConfig struct {
	URL string
}

// SubmissionConfig is resolved once at startup and passed by value afterwards
type SubmissionConfig struct {
	// Strategy may be left empty. StrategyRelay forces the relay even when
	// direct credentials are present.
	Strategy Strategy
	Direct   DirectConfig
	Relay    RelayConfig
	// Timeout bounds a single outbound submit. Zero leaves it to the transport.
	Timeout time.Duration
}

// Gateway delivers a contact request to a human recipient.
// Submit performs exactly one outbound call and reports every failure as a Failed outcome.
type Gateway interface {
	Submit(ctx context.Context, req ContactRequest) SubmissionOutcome
	Strategy() Strategy
}

// NotificationKind distinguishes success and error notifications
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a short-lived status message about a submission attempt
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"kind"`
	Text      string           `json:"text"`
	CreatedAt time.Time        `json:"created_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}
