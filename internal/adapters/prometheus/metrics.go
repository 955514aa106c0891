// Package prometheus holds the churnboard Prometheus collectors and the report
// exporter that keeps them current.
package prometheus

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every churnboard collector. It is separate from the default
// registry so tests and embedders get a predictable metric set.
var Registry = prom.NewRegistry()

var factory = promauto.With(Registry)

// Fetch and circuit breaker metrics.
var (
	CircuitBreakerState = factory.NewGaugeVec(
		prom.GaugeOpts{
			Name: "churnboard_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = factory.NewCounterVec(
		prom.CounterOpts{
			Name: "churnboard_circuit_breaker_requests_total",
			Help: "Requests through the circuit breaker by result",
		},
		[]string{"name", "result"}, // success, failure, rejected
	)

	CircuitBreakerTransitions = factory.NewCounterVec(
		prom.CounterOpts{
			Name: "churnboard_circuit_breaker_state_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	FetchDuration = factory.NewHistogram(prom.HistogramOpts{
		Name:    "churnboard_fetch_duration_seconds",
		Help:    "Duration of session fetches",
		Buckets: prom.DefBuckets,
	})

	FetchedSessions = factory.NewCounter(prom.CounterOpts{
		Name: "churnboard_fetched_sessions_total",
		Help: "Sessions returned by the upstream API",
	})
)

// Report metrics, refreshed from the latest generated report.
var (
	ReportRuns = factory.NewCounter(prom.CounterOpts{
		Name: "churnboard_report_runs_total",
		Help: "Reports generated",
	})

	ReportLastRun = factory.NewGauge(prom.GaugeOpts{
		Name: "churnboard_report_last_run_timestamp_seconds",
		Help: "Unix time of the latest report",
	})

	ReportSessions = factory.NewGaugeVec(
		prom.GaugeOpts{
			Name: "churnboard_report_sessions",
			Help: "Sessions in the latest report window by outcome",
		},
		[]string{"outcome"}, // total, accepted, canceled, excluded
	)

	ReportRate = factory.NewGaugeVec(
		prom.GaugeOpts{
			Name: "churnboard_report_rate_percent",
			Help: "Window-level rates of the latest report",
		},
		[]string{"rate"}, // acceptance, cancellation, reactivation
	)

	ReportRevenue = factory.NewGaugeVec(
		prom.GaugeOpts{
			Name: "churnboard_report_revenue_dollars",
			Help: "Revenue saved, lost and net over the latest report window",
		},
		[]string{"kind"}, // saved, lost, net
	)

	ReportFlowSessions = factory.NewGaugeVec(
		prom.GaugeOpts{
			Name: "churnboard_report_flow_sessions",
			Help: "Sessions per cancel flow in the latest report",
		},
		[]string{"flow", "blueprint_id"},
	)

	PeriodAcceptanceRate = factory.NewGaugeVec(
		prom.GaugeOpts{
			Name: "churnboard_period_acceptance_rate_percent",
			Help: "Acceptance rate of the most recent period",
		},
		[]string{"granularity"},
	)
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Handler serves the churnboard registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{Registry: Registry})
}
