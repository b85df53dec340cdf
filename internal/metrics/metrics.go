package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the logbook service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec

	// Engine Metrics
	FlightsValidatedTotal prometheus.CounterVec
	SettlementsIssued     prometheus.Counter
	SettlementSweepRuns   prometheus.Counter
	DefectStatusChanges   prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logbook_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "logbook_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "logbook_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),
		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logbook_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "logbook_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),
		FlightsValidatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logbook_flights_validated_total",
				Help: "Flight record validations by outcome (accepted or the violated rule code)",
			},
			[]string{"outcome"},
		),
		SettlementsIssued: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "logbook_settlements_issued_total",
				Help: "Flights settled into ledger debits",
			},
		),
		SettlementSweepRuns: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "logbook_settlement_sweep_runs_total",
				Help: "Background settlement sweep executions",
			},
		),
		DefectStatusChanges: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logbook_defect_status_changes_total",
				Help: "Defect lifecycle transitions by target status",
			},
			[]string{"status"},
		),
	}
}
