package gateway_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/gateway"
	"portfolio-backend/pkg/metrics"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sample = domain.ContactRequest{Name: "Al", Email: "a@b.co", Message: "Hello there friend"}

func directConfig(endpoint string) domain.SubmissionConfig {
	return domain.SubmissionConfig{
		Strategy: domain.StrategyDirect,
		Direct: domain.DirectConfig{
			ServiceID:  "service_abc",
			TemplateID: "template_def",
			PublicKey:  "pk_123",
			Endpoint:   endpoint,
		},
		Relay: domain.RelayConfig{URL: "http://relay.invalid/api/contact"},
	}
}

func TestNewSelectsStrategy(t *testing.T) {
	t.Run("Should use direct when credentials are present", func(t *testing.T) {
		gw, err := gateway.New(directConfig(""), nil)
		require.NoError(t, err)
		assert.Equal(t, domain.StrategyDirect, gw.Strategy())
	})

	t.Run("Should use direct when credentials are present and strategy is unset", func(t *testing.T) {
		cfg := directConfig("")
		cfg.Strategy = ""
		gw, err := gateway.New(cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.StrategyDirect, gw.Strategy())
	})

	t.Run("Should use direct without a relay URL", func(t *testing.T) {
		cfg := directConfig("")
		cfg.Strategy = ""
		cfg.Relay = domain.RelayConfig{}
		gw, err := gateway.New(cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.StrategyDirect, gw.Strategy())
	})

	t.Run("Should use relay when forced despite direct credentials", func(t *testing.T) {
		cfg := directConfig("")
		cfg.Strategy = domain.StrategyRelay
		gw, err := gateway.New(cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.StrategyRelay, gw.Strategy())
	})

	t.Run("Should fall back to relay on placeholder credentials", func(t *testing.T) {
		cfg := directConfig("")
		cfg.Direct.PublicKey = "YOUR_PUBLIC_KEY"
		gw, err := gateway.New(cfg, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.StrategyRelay, gw.Strategy())
	})

	t.Run("Should use relay when configured", func(t *testing.T) {
		gw, err := gateway.New(domain.SubmissionConfig{
			Strategy: domain.StrategyRelay,
			Relay:    domain.RelayConfig{URL: "http://localhost:8080/api/contact"},
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.StrategyRelay, gw.Strategy())
	})

	t.Run("Should fail without a relay URL", func(t *testing.T) {
		_, err := gateway.New(domain.SubmissionConfig{Strategy: domain.StrategyRelay}, nil)
		assert.ErrorIs(t, err, gateway.ErrNoRelayURL)
	})
}

func TestDirectGatewaySubmit(t *testing.T) {
	var calls int32
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	m := metrics.New()
	gw, err := gateway.New(directConfig(srv.URL), srv.Client(), gateway.WithMetrics(m))
	require.NoError(t, err)

	out := gw.Submit(context.Background(), domain.ContactRequest{Name: " Al ", Email: "a@b.co", Message: "Hello there friend"})
	assert.Equal(t, domain.Succeeded(), out)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	want := map[string]interface{}{
		"service_id":  "service_abc",
		"template_id": "template_def",
		"user_id":     "pk_123",
		"template_params": map[string]interface{}{
			"from_name":  "Al",
			"from_email": "a@b.co",
			"reply_to":   "a@b.co",
			"message":    "Hello there friend",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("EmailJS payload mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GatewaySubmits.WithLabelValues("direct", "success")))
}

func TestDirectGatewayRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("The Public Key is invalid"))
	}))
	defer srv.Close()

	gw := gateway.NewDirectGateway(directConfig(srv.URL).Direct, srv.Client())
	out := gw.Submit(context.Background(), sample)

	assert.False(t, out.Success)
	assert.Equal(t, "unexpected status 400 Bad Request", out.Reason)
	assert.NotContains(t, out.Reason, "Public Key")
}

func TestRelayGatewaySubmit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		var req domain.ContactRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, sample, req)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Message sent successfully!"}`))
	}))
	defer srv.Close()

	gw := gateway.NewRelayGateway(domain.RelayConfig{URL: srv.URL}, srv.Client())
	out := gw.Submit(context.Background(), sample)

	assert.True(t, out.Success)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestRelayGatewayFailures(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"validation", http.StatusBadRequest, `{"error":"Name must be at least 2 characters"}`, "Name must be at least 2 characters"},
		{"delivery", http.StatusInternalServerError, `{"error":"Failed to send message. Please try again later."}`, "Failed to send message. Please try again later."},
		{"not json", http.StatusBadGateway, `<html>bad gateway</html>`, "unexpected status 502 Bad Gateway"},
		{"rate limited", http.StatusTooManyRequests, `{}`, "unexpected status 429 Too Many Requests"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			gw := gateway.NewRelayGateway(domain.RelayConfig{URL: srv.URL}, srv.Client())
			out := gw.Submit(context.Background(), sample)

			assert.Equal(t, domain.Failed(tc.want), out)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retries")
		})
	}
}

func TestRelayGatewayNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	gw := gateway.NewRelayGateway(domain.RelayConfig{URL: url}, &http.Client{Timeout: time.Second})
	out := gw.Submit(context.Background(), sample)

	assert.False(t, out.Success)
	assert.Contains(t, out.Reason, "network error")
}

func TestRelayGatewayCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gw := gateway.NewRelayGateway(domain.RelayConfig{URL: srv.URL}, srv.Client())
	out := gw.Submit(ctx, sample)
	assert.False(t, out.Success)
}

func TestRelayGatewayBadURL(t *testing.T) {
	gw := gateway.NewRelayGateway(domain.RelayConfig{URL: "://missing-scheme"}, nil)
	out := gw.Submit(context.Background(), sample)
	assert.False(t, out.Success)
	assert.Contains(t, out.Reason, "build request")
}
