package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace string = "greenhouse"

// Metrics holds the service counters. All methods are safe to call on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ReadingsCreated prometheus.Counter
	ProtocolErrors  *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	NodeStatus      *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ingest",
				Name:      "requests_total",
				Help:      "Submissions handled, by transport and outcome",
			},
			[]string{"transport", "outcome"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "ingest",
				Name:      "request_duration_seconds",
				Help:      "Time spent handling a submission",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"transport"},
		),

		ReadingsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ingest",
				Name:      "readings_created_total",
				Help:      "Calibrated readings persisted",
			},
		),

		ProtocolErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "coap",
				Name:      "protocol_errors_total",
				Help:      "Transport level errors contained by the CoAP server, by class",
			},
			[]string{"class"},
		),

		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "auth",
				Name:      "cache_lookups_total",
				Help:      "API key cache lookups, by result",
			},
			[]string{"result"},
		),

		NodeStatus: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "nodes",
				Name:      "status_changes_total",
				Help:      "Node status transitions, by new status",
			},
			[]string{"status"},
		),
	}

	m.registry.MustRegister(
		m.Requests, m.RequestDuration, m.ReadingsCreated, m.ProtocolErrors, m.CacheLookups, m.NodeStatus,
		collectors.NewGoCollector(),
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) IncRequest(transport, outcome string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(transport, outcome).Inc()
}

func (m *Metrics) ObserveRequest(transport string, started time.Time) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(transport).Observe(time.Since(started).Seconds())
}

func (m *Metrics) AddReadings(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.ReadingsCreated.Add(float64(n))
}

func (m *Metrics) IncProtocolError(class string) {
	if m == nil {
		return
	}
	m.ProtocolErrors.WithLabelValues(class).Inc()
}

func (m *Metrics) IncCacheLookup(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) IncNodeStatus(status string) {
	if m == nil {
		return
	}
	m.NodeStatus.WithLabelValues(status).Inc()
}
