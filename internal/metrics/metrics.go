package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ImportRunsTotal tracks import runs by final status
	ImportRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notesync_import_runs_total",
			Help: "Total number of note import runs",
		},
		[]string{"status"}, // "completed", "aborted", "already_running"
	)

	// ImportRunDuration tracks how long a full import run takes
	ImportRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "notesync_import_run_duration_seconds",
			Help:    "Duration of note import runs in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
		},
	)

	// ImportItemsTotal tracks per-item outcomes within runs
	ImportItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notesync_import_items_total",
			Help: "Total number of items processed by outcome",
		},
		[]string{"outcome"}, // "imported", "updated", "skipped", "error"
	)

	// LegacyAPICallsTotal tracks calls to the legacy system API
	LegacyAPICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notesync_legacy_api_calls_total",
			Help: "Total number of API calls to the legacy system",
		},
		[]string{"operation", "status"}, // "clients", "notes", "success", "error"
	)

	// LegacyAPICallDuration tracks legacy API call duration
	LegacyAPICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notesync_legacy_api_call_duration_seconds",
			Help:    "Duration of legacy system API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// CouchbaseOperationsTotal tracks Couchbase operations
	CouchbaseOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notesync_couchbase_operations_total",
			Help: "Total number of Couchbase operations",
		},
		[]string{"operation", "status"}, // "get", "insert", "replace", "query", "success", "miss", "error"
	)

	// CouchbaseOperationDuration tracks Couchbase operation duration
	CouchbaseOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notesync_couchbase_operation_duration_seconds",
			Help:    "Duration of Couchbase operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// HTTPRequestsTotal tracks inbound HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notesync_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks inbound HTTP request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notesync_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks in-flight HTTP requests
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notesync_http_active_connections",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// RecordImportRun records the final status and duration of an import run
func RecordImportRun(status string, duration time.Duration) {
	ImportRunsTotal.WithLabelValues(status).Inc()
	ImportRunDuration.Observe(duration.Seconds())
}

// RecordImportItem records a per-item outcome
func RecordImportItem(outcome string) {
	ImportItemsTotal.WithLabelValues(outcome).Inc()
}

// RecordLegacyAPICall records a legacy system API call
func RecordLegacyAPICall(operation, status string) {
	LegacyAPICallsTotal.WithLabelValues(operation, status).Inc()
}

// RecordLegacyAPICallDuration records legacy API call duration
func RecordLegacyAPICallDuration(operation string, duration time.Duration) {
	LegacyAPICallDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordCouchbaseOperation records a Couchbase operation
func RecordCouchbaseOperation(operation, status string) {
	CouchbaseOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordCouchbaseOperationDuration records Couchbase operation duration
func RecordCouchbaseOperationDuration(operation string, duration time.Duration) {
	CouchbaseOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordHTTPRequest records an inbound HTTP request
func RecordHTTPRequest(method, path string, statusCode int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, statusString(statusCode)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncActiveConnections increments the in-flight request gauge
func IncActiveConnections() {
	ActiveConnections.Inc()
}

// DecActiveConnections decrements the in-flight request gauge
func DecActiveConnections() {
	ActiveConnections.Dec()
}

func statusString(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
