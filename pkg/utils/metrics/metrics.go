package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bcplanner_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bcplanner_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	reportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bcplanner_reports_generated_total",
			Help: "Number of BCP reports rendered, labeled by whether the bundle was partial",
		},
		[]string{"partial"},
	)

	reportBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bcplanner_report_size_bytes",
			Help:    "Size of rendered BCP reports",
			Buckets: prometheus.ExponentialBuckets(4096, 2, 10),
		},
	)

	storeFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bcplanner_aggregate_fetch_failures_total",
			Help: "Entity store fetches that failed during aggregation",
		},
		[]string{"collection"},
	)
)

// RecordHTTPRequest records an HTTP request
func RecordHTTPRequest(method, route string, statusCode int, durationSeconds float64) {
	status := "unknown"
	switch {
	case statusCode >= 500:
		status = "5xx"
	case statusCode >= 400:
		status = "4xx"
	case statusCode >= 300:
		status = "3xx"
	case statusCode >= 200:
		status = "2xx"
	}

	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(durationSeconds)
}

// RecordReport records a rendered report and its size
func RecordReport(partial bool, size int) {
	reportsGenerated.WithLabelValues(strconv.FormatBool(partial)).Inc()
	reportBytes.Observe(float64(size))
}

// RecordFetchFailure counts a failed collection fetch during aggregation
func RecordFetchFailure(collection string) {
	storeFetchFailures.WithLabelValues(collection).Inc()
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}
