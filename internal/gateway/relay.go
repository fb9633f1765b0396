package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"portfolio-backend/internal/domain"
)

// relayError is the failure body written by the relay endpoint
type relayError struct {
	Error string `json:"error"`
}

// RelayGateway posts requests to the relay endpoint, which re-validates and delivers them
type RelayGateway struct {
	base
	cfg domain.RelayConfig
}

func NewRelayGateway(cfg domain.RelayConfig, client *http.Client, opts ...Option) *RelayGateway {
	return &RelayGateway{base: newBase(client, opts), cfg: cfg}
}

func (g *RelayGateway) Strategy() domain.Strategy {
	return domain.StrategyRelay
}

// Submit posts req to the relay; the relay's error text is surfaced as the failure reason
func (g *RelayGateway) Submit(ctx context.Context, req domain.ContactRequest) (out domain.SubmissionOutcome) {
	defer g.guard(domain.StrategyRelay, &out)

	payload, err := json.Marshal(req)
	if err != nil {
		return domain.Failed("encode request: " + err.Error())
	}

	httpReq, err := http.NewRequest(http.MethodPost, g.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return domain.Failed("build request: " + err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, body, err := g.do(ctx, httpReq)
	if err != nil {
		g.log.Warn("relay unreachable", "url", g.cfg.URL, "error", err)
		return domain.Failed("network error: " + err.Error())
	}
	if !isSuccess(resp) {
		var re relayError
		if json.Unmarshal(body, &re) == nil && re.Error != "" {
			return domain.Failed(re.Error)
		}
		return domain.Failed(statusReason(resp))
	}

	return domain.Succeeded()
}
