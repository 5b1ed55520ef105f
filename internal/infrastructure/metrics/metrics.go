package metrics

import (
	"time"

	"stockquotes-service/internal/application"
	"stockquotes-service/internal/domain"
	"stockquotes-service/internal/infrastructure/provider"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	_ application.Metrics   = (*Recorder)(nil)
	_ provider.CallRecorder = (*Recorder)(nil)
)

// Recorder implements application.Metrics and provider.CallRecorder using Prometheus.
type Recorder struct {
	upstreamCalls    *prometheus.CounterVec
	upstreamLatency  *prometheus.HistogramVec
	outcomes         *prometheus.CounterVec
	fallbackAttempts prometheus.Histogram
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		upstreamCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockquotes_upstream_calls_total",
				Help: "Upstream provider calls by endpoint and matched response schema",
			},
			[]string{"endpoint", "schema"},
		),
		upstreamLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockquotes_upstream_call_duration_seconds",
				Help:    "Duration of upstream provider calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		outcomes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockquotes_lookups_total",
				Help: "Lookups by endpoint and envelope outcome",
			},
			[]string{"endpoint", "outcome"},
		),
		fallbackAttempts: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stockquotes_time_series_attempts",
				Help:    "Dates tried per time series lookup",
				Buckets: []float64{1, 2, 3, 4, 5},
			},
		),
	}
}

func (r *Recorder) UpstreamCall(kind domain.EndpointKind, schema string, took time.Duration) {
	r.upstreamCalls.WithLabelValues(string(kind), schema).Inc()
	r.upstreamLatency.WithLabelValues(string(kind)).Observe(took.Seconds())
}

func (r *Recorder) Outcome(kind domain.EndpointKind, outcome string) {
	r.outcomes.WithLabelValues(string(kind), outcome).Inc()
}

func (r *Recorder) FallbackAttempts(n int) {
	if n <= 0 {
		return
	}
	r.fallbackAttempts.Observe(float64(n))
}
