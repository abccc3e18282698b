// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "directory_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	HTTPRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "directory_http_rate_limited_total",
			Help: "Requests rejected by the per-client rate limiter",
		},
	)

	QueryExecutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_query_executions_total",
			Help: "Query handler executions by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	QueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "directory_query_duration_seconds",
			Help:    "Duration of query handler executions in seconds",
			Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .05},
		},
		[]string{"operation"},
	)

	FilterMemoLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_filter_memo_lookups_total",
			Help: "Filter memo lookups by result (hit or miss)",
		},
		[]string{"result"},
	)

	CatalogCompanies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "directory_catalog_companies",
			Help: "Number of companies in the loaded catalog",
		},
	)

	CatalogLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "directory_catalog_load_duration_seconds",
			Help: "Time taken to load the catalog from its data source",
		},
		[]string{"source"},
	)

	CatalogLoadFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_catalog_load_failures_total",
			Help: "Failed catalog load attempts by data source",
		},
		[]string{"source"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "directory_cache_lookups_total",
			Help: "Company cache lookups by result (hit, miss or error)",
		},
		[]string{"result"},
	)
)

// ObserveQuery records one query handler execution.
func ObserveQuery(operation string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	QueryExecutions.WithLabelValues(operation, outcome).Inc()
	QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
