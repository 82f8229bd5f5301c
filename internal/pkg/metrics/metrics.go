package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/clockodo"
	"github.com/cmlabs-hris/clockodo-mcp-go/internal/domain/compliance"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clockodo_mcp"

// Tool call outcomes.
const (
	OutcomeOK     = "ok"
	OutcomeError  = "error"
	OutcomeDenied = "denied"
)

// Metrics owns a private registry so tests and multiple servers in one
// process do not collide on the global one.
type Metrics struct {
	registry         *prometheus.Registry
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	toolCalls        *prometheus.CounterVec
	toolDuration     *prometheus.HistogramVec

	violations       *prometheus.GaugeVec
	flaggedEmployees *prometheus.GaugeVec
	lastSnapshot     prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Requests sent to the Clockodo API.",
		}, []string{"family", "method", "status"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of Clockodo API requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"family", "method"}),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Tool invocations by outcome.",
		}, []string{"tool", "outcome"}),
		toolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_call_duration_seconds",
			Help:      "Latency of tool invocations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
		violations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "compliance_violations",
			Help:      "Violations found by the last compliance snapshot.",
		}, []string{"year", "kind"}),
		flaggedEmployees: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "compliance_employees_flagged",
			Help:      "Employees with at least one violation in the last compliance snapshot.",
		}, []string{"year"}),
		lastSnapshot: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "compliance_last_snapshot_timestamp_seconds",
			Help:      "Unix time of the last successful compliance snapshot.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.upstreamRequests,
		m.upstreamDuration,
		m.toolCalls,
		m.toolDuration,
		m.violations,
		m.flaggedEmployees,
		m.lastSnapshot,
	)
	return m
}

// ObserveRequest records one upstream round trip. Status 0 is reported as
// "error".
func (m *Metrics) ObserveRequest(family clockodo.Family, method string, status int, d time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	m.upstreamRequests.WithLabelValues(string(family), method, code).Inc()
	m.upstreamDuration.WithLabelValues(string(family), method).Observe(d.Seconds())
}

// ObserveToolCall records one tool invocation.
func (m *Metrics) ObserveToolCall(tool, outcome string, d time.Duration) {
	m.toolCalls.WithLabelValues(tool, outcome).Inc()
	m.toolDuration.WithLabelValues(tool).Observe(d.Seconds())
}

// RecordComplianceSnapshot exports the violation counts of one summary.
func (m *Metrics) RecordComplianceSnapshot(year int, summary compliance.Summary, at time.Time) {
	y := strconv.Itoa(year)
	for _, kind := range []compliance.Kind{
		compliance.KindOvertimeExcess,
		compliance.KindVacationInsufficient,
		compliance.KindVacationSurplus,
	} {
		m.violations.WithLabelValues(y, string(kind)).Set(float64(len(summary.ByKind[kind])))
	}
	m.flaggedEmployees.WithLabelValues(y).Set(float64(summary.EmployeesWithViolations))
	m.lastSnapshot.Set(float64(at.Unix()))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
