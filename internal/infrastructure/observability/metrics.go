package observability

import (
	"net/http"
	"time"

	"telehealth_flow/internal/domain/entities"
	"telehealth_flow/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// FlowMetrics exports orchestrator counters and latencies on its own registry.
type FlowMetrics struct {
	registry    *prometheus.Registry
	operations  *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	transitions *prometheus.CounterVec
}

var _ interfaces.IFlowMetrics = (*FlowMetrics)(nil)

func NewFlowMetrics() *FlowMetrics {
	m := &FlowMetrics{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "telehealth_flow",
			Name:      "operations_total",
			Help:      "Orchestrator operations by outcome.",
		}, []string{"operation", "error_kind"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "telehealth_flow",
			Name:      "operation_duration_seconds",
			Help:      "Orchestrator operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "telehealth_flow",
			Name:      "transitions_total",
			Help:      "Committed flow status transitions.",
		}, []string{"from", "to"}),
	}
	m.registry.MustRegister(
		m.operations,
		m.latency,
		m.transitions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *FlowMetrics) ObserveOperation(op string, elapsed time.Duration, errorKind string) {
	if errorKind == "" {
		errorKind = "none"
	}
	m.operations.WithLabelValues(op, errorKind).Inc()
	m.latency.WithLabelValues(op).Observe(elapsed.Seconds())
}

func (m *FlowMetrics) TransitionRecorded(from, to entities.FlowStatus) {
	fromLabel := string(from)
	if fromLabel == "" {
		fromLabel = "NONE"
	}
	m.transitions.WithLabelValues(fromLabel, string(to)).Inc()
}

func (m *FlowMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *FlowMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
