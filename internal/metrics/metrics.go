// Package metrics exposes Prometheus metrics for proxied invocations.
//
// Metrics:
//   - aiproxy_invocations_total: invocations by outcome and status code
//   - aiproxy_upstream_requests_total: upstream calls by model and result
//   - aiproxy_upstream_duration_seconds: upstream call latency by model
//   - aiproxy_upstream_tokens_total: tokens reported by the upstream
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mostudy/aiproxy/internal/types"
)

const namespace = "aiproxy"

// OtherModel labels upstream calls for models outside the known set.
const OtherModel = "other"

// Outcome labels, one per error class plus success.
const (
	OutcomeSuccess          = "success"
	OutcomeMethodNotAllowed = "method_not_allowed"
	OutcomeConfigError      = "config_error"
	OutcomeParseError       = "parse_error"
	OutcomeValidationError  = "validation_error"
	OutcomeUpstreamError    = "upstream_error"
)

// Collector owns a registry and the proxy's metrics.
type Collector struct {
	registry *prometheus.Registry

	// knownModels bounds the model label; callers choose the model freely.
	knownModels map[string]struct{}

	invocationsTotal *prometheus.CounterVec
	upstreamTotal    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	tokensTotal      *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry. Upstream metrics
// carry the model name only for knownModels; other models share one label.
func NewCollector(knownModels ...string) *Collector {
	c := &Collector{
		registry:    prometheus.NewRegistry(),
		knownModels: make(map[string]struct{}, len(knownModels)),

		invocationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "invocations_total",
				Help:      "Total number of proxy invocations by outcome",
			},
			[]string{"outcome", "code"},
		),

		upstreamTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Total number of upstream chat completion calls",
			},
			[]string{"model", "result"},
		),

		upstreamDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_duration_seconds",
				Help:      "Duration of upstream chat completion calls in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"model"},
		),

		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_tokens_total",
				Help:      "Total number of tokens reported by the upstream",
			},
			[]string{"model", "type"},
		),
	}

	for _, model := range knownModels {
		if model != "" {
			c.knownModels[model] = struct{}{}
		}
	}

	c.registry.MustRegister(
		c.invocationsTotal,
		c.upstreamTotal,
		c.upstreamDuration,
		c.tokensTotal,
	)
	return c
}

// RecordInvocation counts one finished invocation. Safe on a nil Collector.
func (c *Collector) RecordInvocation(outcome string, statusCode int) {
	if c == nil {
		return
	}
	c.invocationsTotal.WithLabelValues(outcome, strconv.Itoa(statusCode)).Inc()
}

// RecordUpstream records one upstream call. Safe on a nil Collector.
func (c *Collector) RecordUpstream(model string, duration time.Duration, usage *types.Usage, err error) {
	if c == nil {
		return
	}

	model = c.modelLabel(model)
	result := "success"
	if err != nil {
		result = "error"
	}
	c.upstreamTotal.WithLabelValues(model, result).Inc()
	c.upstreamDuration.WithLabelValues(model).Observe(duration.Seconds())

	if usage != nil {
		c.tokensTotal.WithLabelValues(model, "prompt").Add(float64(usage.PromptTokens))
		c.tokensTotal.WithLabelValues(model, "completion").Add(float64(usage.CompletionTokens))
	}
}

// Handler returns an HTTP handler for the Prometheus metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}

func (c *Collector) modelLabel(model string) string {
	if _, ok := c.knownModels[model]; ok {
		return model
	}
	return OtherModel
}
