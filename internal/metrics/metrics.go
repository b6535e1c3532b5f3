// Package metrics holds the Prometheus instruments for the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeEmpty   = "empty"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vanna_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vanna_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	sqlGenerationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vanna_sql_generations_total",
			Help: "Question to SQL generations by outcome.",
		},
		[]string{"outcome"},
	)

	queryExecutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vanna_query_executions_total",
			Help: "Generated SQL executions by outcome.",
		},
		[]string{"outcome"},
	)

	trainingItemsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vanna_training_items_total",
			Help: "Training registrations by kind and outcome.",
		},
		[]string{"kind", "outcome"},
	)

	engineInitialized = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "vanna_engine_initialized",
			Help: "1 once the NL-to-SQL engine has been initialized.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDurationSeconds,
		sqlGenerationsTotal,
		queryExecutionsTotal,
		trainingItemsTotal,
		engineInitialized,
	)
}

func ObserveGeneration(outcome string) {
	sqlGenerationsTotal.WithLabelValues(outcome).Inc()
}

func ObserveExecution(outcome string) {
	queryExecutionsTotal.WithLabelValues(outcome).Inc()
}

func ObserveTrainingItem(kind, outcome string) {
	trainingItemsTotal.WithLabelValues(kind, outcome).Inc()
}

func SetEngineInitialized(ok bool) {
	if ok {
		engineInitialized.Set(1)
		return
	}
	engineInitialized.Set(0)
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
