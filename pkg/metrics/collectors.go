package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "employee_directory",
		Subsystem: "api",
		Name:      "requests_total",
		Help:      "Calls made to the employee REST API.",
	}, []string{"operation", "outcome"})

	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "employee_directory",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "Latency of calls to the employee REST API.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	Exports = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "employee_directory",
		Name:      "exports_total",
		Help:      "Spreadsheets produced.",
	})
)
