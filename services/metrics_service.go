package services

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	downloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongokeeper_artifact_downloads_total",
			Help: "Completed artifact downloads",
		},
		[]string{"formula"},
	)

	downloadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mongokeeper_artifact_download_duration_seconds",
			Help:    "Duration of artifact downloads",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"formula"},
	)

	extractionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongokeeper_artifact_extractions_total",
			Help: "Completed archive extractions",
		},
		[]string{"formula"},
	)

	stepFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongokeeper_launch_step_failures_total",
			Help: "Install-and-launch steps that failed, by step",
		},
		[]string{"formula", "step"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongokeeper_http_requests_total",
			Help: "HTTP requests handled by the daemon API",
		},
		[]string{"path", "code"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mongokeeper_http_request_duration_seconds",
			Help:    "Duration of daemon API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	runningServices = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "mongokeeper_running_services",
			Help: "Service instances currently running",
		},
	)
)

func init() {
	prometheus.MustRegister(downloadsTotal)
	prometheus.MustRegister(downloadDuration)
	prometheus.MustRegister(extractionsTotal)
	prometheus.MustRegister(stepFailures)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(runningServices)
}

func recordDownload(formula string, elapsed time.Duration) {
	downloadsTotal.WithLabelValues(formula).Inc()
	downloadDuration.WithLabelValues(formula).Observe(elapsed.Seconds())
}

func recordExtraction(formula string) {
	extractionsTotal.WithLabelValues(formula).Inc()
}

func recordStepFailure(formula, step string) {
	stepFailures.WithLabelValues(formula, step).Inc()
}

/**
 * Record one handled HTTP request
 * @param {string} path - Matched route path
 * @param {int} code - Response status code
 * @param {float64} seconds - Handling duration
 */
func RecordHTTPRequest(path string, code int, seconds float64) {
	httpRequestsTotal.WithLabelValues(path, fmt.Sprintf("%d", code)).Inc()
	httpRequestDuration.WithLabelValues(path).Observe(seconds)
}

func serviceStarted() {
	runningServices.Inc()
}

func serviceStopped() {
	runningServices.Dec()
}
