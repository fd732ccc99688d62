package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	httpRequestsTotal   *prometheus.CounterVec
	httpLatencySeconds  *prometheus.HistogramVec
	httpErrorsTotal     *prometheus.CounterVec
	bulkWritesTotal     *prometheus.CounterVec
	bulkRecordsTotal    *prometheus.CounterVec
	bulkLatencySeconds  *prometheus.HistogramVec
	reportRequestsTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edu_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "edu_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edu_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		bulkWritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edu_bulk_writes_total",
			Help: "Bulk write calls by record kind and outcome.",
		}, []string{"kind", "outcome"})

		bulkRecordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edu_bulk_records_total",
			Help: "Records handled by committed bulk writes, split into inserted and skipped.",
		}, []string{"kind", "result"})

		bulkLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "edu_bulk_latency_seconds",
			Help:    "Duration of bulk write transactions.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"kind"})

		reportRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "edu_report_requests_total",
			Help: "Student report requests by cache result.",
		}, []string{"result"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			bulkWritesTotal,
			bulkRecordsTotal,
			bulkLatencySeconds,
			reportRequestsTotal,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for API error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// BulkWrites exposes the bulk outcome counter.
func BulkWrites() *prometheus.CounterVec {
	RegisterMetrics()
	return bulkWritesTotal
}

// BulkRecords exposes the per-record bulk counter.
func BulkRecords() *prometheus.CounterVec {
	RegisterMetrics()
	return bulkRecordsTotal
}

// BulkLatency exposes the bulk transaction latency histogram.
func BulkLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return bulkLatencySeconds
}

// ReportRequests exposes the report cache counter.
func ReportRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return reportRequestsTotal
}
