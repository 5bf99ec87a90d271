package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK             = "ok"
	outcomeCached         = "cached"
	outcomeConfigError    = "config_error"
	outcomeTransportError = "transport_error"
)

// Metrics records per-provider request counts and latencies.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg when it is
// not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "websearch",
			Name:      "requests_total",
			Help:      "Web search requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "websearch",
			Name:      "request_duration_seconds",
			Help:      "Latency of provider calls that reached the network.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.duration)
	}
	return m
}

func (m *Metrics) observe(provider, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(provider, outcome).Inc()
	if outcome == outcomeOK || outcome == outcomeTransportError {
		m.duration.WithLabelValues(provider).Observe(elapsed.Seconds())
	}
}
