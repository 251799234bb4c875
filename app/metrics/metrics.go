package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"

	NotificationMaterial = "material"
	NotificationError    = "error"

	StatusSent   = "sent"
	StatusFailed = "failed"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Pipeline metrics
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_runs_total",
			Help: "Total number of feed pipeline runs",
		},
		[]string{"outcome"},
	)

	PipelineRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_run_duration_seconds",
			Help:    "Feed pipeline run duration in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Total number of webhook notifications by kind and delivery status",
		},
		[]string{"kind", "status"},
	)

	// Scheduler metrics
	TasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scheduler_tasks_total",
			Help: "Total number of scheduler tasks by type and status",
		},
		[]string{"type", "status"},
	)

	TasksQueued = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "scheduler_tasks_queued",
			Help: "Number of tasks waiting in the scheduler queue",
		},
	)

	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "application_info",
			Help: "Application information",
		},
		[]string{"version"},
	)
)

// Init records static application information.
func Init(version string) {
	ApplicationInfo.WithLabelValues(version).Set(1)
}

// RecordNotification counts one delivery attempt.
func RecordNotification(kind string, err error) {
	status := StatusSent
	if err != nil {
		status = StatusFailed
	}
	NotificationsTotal.WithLabelValues(kind, status).Inc()
}
