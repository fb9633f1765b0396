// Package metrics holds the prometheus collectors for the contact pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "contact"

// Submission results recorded by the relay
const (
	ResultSent         = "sent"
	ResultInvalid      = "invalid"
	ResultFailed       = "failed"
	ResultUnconfigured = "unconfigured"
)

type Metrics struct {
	Submissions      *prometheus.CounterVec
	DeliveryDuration prometheus.Histogram
	RateLimited      prometheus.Counter
	GatewaySubmits   *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers the collectors on reg and serves them from gatherer
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		Submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Contact submissions received by the relay, by result.",
		}, []string{"result"}),
		DeliveryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "delivery_duration_seconds",
			Help:      "Time spent handing a contact message to the mail provider.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		RateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Contact requests rejected by the rate limiter.",
		}),
		GatewaySubmits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_submits_total",
			Help:      "Outbound gateway submissions, by strategy and outcome.",
		}, []string{"strategy", "outcome"}),
		gatherer: gatherer,
	}
	reg.MustRegister(m.Submissions, m.DeliveryDuration, m.RateLimited, m.GatewaySubmits)
	return m
}

// ObserveSubmission counts one relay submission
func (m *Metrics) ObserveSubmission(result string) {
	if m == nil {
		return
	}
	m.Submissions.WithLabelValues(result).Inc()
}

// ObserveDelivery records how long a provider hand-off took
func (m *Metrics) ObserveDelivery(d time.Duration) {
	if m == nil {
		return
	}
	m.DeliveryDuration.Observe(d.Seconds())
}

// ObserveRateLimited counts one rejected request
func (m *Metrics) ObserveRateLimited() {
	if m == nil {
		return
	}
	m.RateLimited.Inc()
}

// ObserveGateway counts one gateway submit
func (m *Metrics) ObserveGateway(strategy string, success bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.GatewaySubmits.WithLabelValues(strategy, outcome).Inc()
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
