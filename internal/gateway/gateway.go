// Package gateway delivers contact requests to a human recipient.
//
// Two strategies satisfy domain.Gateway: DirectGateway calls the EmailJS REST
// API with public credentials, RelayGateway posts to the deployment's own
// relay endpoint. New picks direct whenever all three direct credentials are
// present and non-placeholder, and the relay otherwise. The choice is fixed
// for the lifetime of the gateway.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"portfolio-backend/config"
	"portfolio-backend/internal/domain"
	"portfolio-backend/pkg/logger"
	"portfolio-backend/pkg/metrics"
)

// ErrNoRelayURL is returned when the relay strategy is selected without an endpoint
var ErrNoRelayURL = errors.New("gateway: relay strategy selected but no relay URL configured")

// maxErrorBody caps how much of a failed response is read for logging
const maxErrorBody = 4 << 10

// Option customizes a gateway
type Option func(*base)

// WithMetrics counts every submit by strategy and outcome
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *base) { b.metrics = m }
}

// WithLogger replaces the package logger
func WithLogger(l *slog.Logger) Option {
	return func(b *base) { b.log = l }
}

type base struct {
	client  *http.Client
	metrics *metrics.Metrics
	log     *slog.Logger
}

func newBase(client *http.Client, opts []Option) base {
	b := base{client: client, log: logger.Log}
	for _, opt := range opts {
		opt(&b)
	}
	if b.client == nil {
		b.client = &http.Client{}
	}
	return b
}

// New builds the gateway for cfg. Usable direct credentials select DirectGateway
// unless cfg.Strategy is StrategyRelay, which forces the relay.
func New(cfg domain.SubmissionConfig, client *http.Client, opts ...Option) (domain.Gateway, error) {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	if cfg.Strategy != domain.StrategyRelay && config.HasDirectCredentials(cfg.Direct) {
		return NewDirectGateway(cfg.Direct, client, opts...), nil
	}

	if cfg.Relay.URL == "" {
		return nil, ErrNoRelayURL
	}
	return NewRelayGateway(cfg.Relay, client, opts...), nil
}

// guard converts a panic inside a submit into a failed outcome
func (b *base) guard(strategy domain.Strategy, out *domain.SubmissionOutcome) {
	if r := recover(); r != nil {
		b.log.Error("gateway submit panicked", "strategy", strategy, "panic", fmt.Sprint(r))
		*out = domain.Failed("internal error")
	}
	b.metrics.ObserveGateway(string(strategy), out.Success)
}

// do runs one request. The body is only read for non-2xx responses.
func (b *base) do(ctx context.Context, req *http.Request) (*http.Response, []byte, error) {
	resp, err := b.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if isSuccess(resp) {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp, nil, nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return resp, body, nil
}

func isSuccess(resp *http.Response) bool {
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func statusReason(resp *http.Response) string {
	return fmt.Sprintf("unexpected status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}
