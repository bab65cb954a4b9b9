// Package metrics provides Prometheus-based metrics recording for LLM calls and caches.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusRecorder records application metrics into the given registry.
type PrometheusRecorder struct {
	llmRequestsTotal   *prometheus.CounterVec
	llmRequestDuration *prometheus.HistogramVec
	cacheLookupsTotal  *prometheus.CounterVec
}

func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		llmRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "llm_requests_total",
				Help: "Total number of LLM requests by provider, model, operation and status",
			},
			[]string{"provider", "model", "operation", "status"},
		),
		llmRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "llm_request_duration_seconds",
				Help:    "Duration of LLM requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "model", "operation"},
		),
		cacheLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cache_lookups_total",
				Help: "Cache lookups by cache name, tier and result",
			},
			[]string{"cache", "tier", "result"},
		),
	}
}

// ObserveLLMRequest records a completed LLM call.
func (p *PrometheusRecorder) ObserveLLMRequest(provider, model, operation string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	p.llmRequestsTotal.WithLabelValues(provider, model, operation, status).Inc()
	p.llmRequestDuration.WithLabelValues(provider, model, operation).Observe(duration.Seconds())
}

// ObserveCacheLookup records a hit or miss on one cache tier.
func (p *PrometheusRecorder) ObserveCacheLookup(cache, tier string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	p.cacheLookupsTotal.WithLabelValues(cache, tier, result).Inc()
}
