// Package telemetry exposes prometheus metrics for loads, cache use and HTTP traffic.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DatasetLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_dataset_loads_total",
		Help: "Total number of dataset loads from source files",
	}, []string{"pipeline", "result"})

	DatasetLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_dataset_load_duration_seconds",
		Help:    "Latency of reading and joining source files",
		Buckets: prometheus.DefBuckets,
	}, []string{"pipeline"})

	DatasetRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "dashboard_dataset_rows",
		Help: "Rows in the most recently loaded dataset",
	}, []string{"pipeline"})

	DatasetMemoHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_dataset_memo_hits_total",
		Help: "Loads served from the in-process memo",
	}, []string{"pipeline"})

	ValidationWarningsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_validation_warnings_total",
		Help: "Validation warnings returned to callers",
	}, []string{"kind"})

	SummaryCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_summary_cache_total",
		Help: "Summary cache lookups",
	}, []string{"dashboard", "result"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

// LoadObserver records loader events as prometheus metrics
type LoadObserver struct{}

func (LoadObserver) LoadCompleted(pipeline string, elapsed time.Duration, rows int, err error) {
	if err != nil {
		DatasetLoadsTotal.WithLabelValues(pipeline, "error").Inc()
		return
	}
	DatasetLoadsTotal.WithLabelValues(pipeline, "ok").Inc()
	DatasetLoadDuration.WithLabelValues(pipeline).Observe(elapsed.Seconds())
	DatasetRows.WithLabelValues(pipeline).Set(float64(rows))
}

func (LoadObserver) MemoHit(pipeline string) {
	DatasetMemoHitsTotal.WithLabelValues(pipeline).Inc()
}
