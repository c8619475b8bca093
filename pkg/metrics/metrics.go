// Package metrics counts tool calls for the /metrics endpoint.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes of a tool call.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected" // validation or not-found
	OutcomeFailed   = "failed"
	OutcomePanic    = "panic"
)

type Metrics struct {
	reg      *prometheus.Registry
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func New() *Metrics {
	calls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cuaderno",
		Name:      "tool_calls_total",
		Help:      "Tool calls by tool and outcome.",
	}, []string{"tool", "outcome"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "cuaderno",
		Name:      "tool_duration_seconds",
		Help:      "Tool call latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"tool"})
	m := &Metrics{reg: prometheus.NewRegistry(), calls: calls, duration: duration}
	m.reg.MustRegister(m.calls, m.duration, collectors.NewGoCollector())
	return m
}

// Observe records one call. A nil *Metrics records nothing.
func (m *Metrics) Observe(tool, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(tool, outcome).Inc()
	m.duration.WithLabelValues(tool).Observe(d.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Calls exposes the counter for tests.
func (m *Metrics) Calls(tool, outcome string) prometheus.Counter {
	return m.calls.WithLabelValues(tool, outcome)
}
