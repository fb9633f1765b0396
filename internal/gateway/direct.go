package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"portfolio-backend/config"
	"portfolio-backend/internal/domain"
)

// emailJSPayload is the body accepted by the EmailJS send endpoint
type emailJSPayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// DirectGateway hands requests straight to EmailJS
type DirectGateway struct {
	base
	cfg domain.DirectConfig
}

// NewDirectGateway builds a direct-delivery gateway; an empty endpoint uses the public EmailJS API
func NewDirectGateway(cfg domain.DirectConfig, client *http.Client, opts ...Option) *DirectGateway {
	if cfg.Endpoint == "" {
		cfg.Endpoint = config.DefaultEmailJSEndpoint
	}
	return &DirectGateway{base: newBase(client, opts), cfg: cfg}
}

func (g *DirectGateway) Strategy() domain.Strategy {
	return domain.StrategyDirect
}

// Submit sends req through EmailJS; any 2xx counts as delivered
func (g *DirectGateway) Submit(ctx context.Context, req domain.ContactRequest) (out domain.SubmissionOutcome) {
	defer g.guard(domain.StrategyDirect, &out)

	req = req.Trimmed()
	payload, err := json.Marshal(emailJSPayload{
		ServiceID:  g.cfg.ServiceID,
		TemplateID: g.cfg.TemplateID,
		UserID:     g.cfg.PublicKey,
		TemplateParams: map[string]string{
			"from_name":  req.Name,
			"from_email": req.Email,
			"reply_to":   req.Email,
			"message":    req.Message,
		},
	})
	if err != nil {
		return domain.Failed("encode request: " + err.Error())
	}

	httpReq, err := http.NewRequest(http.MethodPost, g.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.Failed("build request: " + err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, body, err := g.do(ctx, httpReq)
	if err != nil {
		g.log.Warn("email service unreachable", "error", err)
		return domain.Failed("network error: " + err.Error())
	}
	if !isSuccess(resp) {
		g.log.Warn("email service rejected message", "status", resp.StatusCode, "body", string(body))
		return domain.Failed(statusReason(resp))
	}

	return domain.Succeeded()
}
