package service

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService exposes Prometheus instrumentation for the HTTP surface
// and the lunch domain counters.
type MetricsService struct {
	registry *prometheus.Registry

	httpDuration *prometheus.HistogramVec
	httpRequests *prometheus.CounterVec

	recordsCreated   prometheus.Counter
	recordsConfirmed prometheus.Counter
	remindersSent    prometheus.Counter
	remindersFailed  prometheus.Counter
	goroutines       prometheus.GaugeFunc
}

// NewMetricsService registers all collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	s := &MetricsService{
		registry: registry,
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		recordsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lunch_records_created_total",
			Help: "Total lunch records created.",
		}),
		recordsConfirmed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lunch_records_confirmed_total",
			Help: "Total lunch records confirmed.",
		}),
		remindersSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lunch_reminder_emails_sent_total",
			Help: "Total reminder emails delivered.",
		}),
		remindersFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lunch_reminder_emails_failed_total",
			Help: "Total reminder emails that failed to send.",
		}),
		goroutines: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "goroutines_count",
			Help: "Number of running goroutines.",
		}, func() float64 { return float64(runtime.NumGoroutine()) }),
	}

	registry.MustRegister(
		s.httpDuration,
		s.httpRequests,
		s.recordsCreated,
		s.recordsConfirmed,
		s.remindersSent,
		s.remindersFailed,
		s.goroutines,
	)
	return s
}

// Handler serves the /metrics scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

// ObserveHTTPRequest records one completed HTTP request.
func (s *MetricsService) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	s.httpDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	s.httpRequests.WithLabelValues(method, path, status).Inc()
}

// IncRecordCreated bumps the created-records counter.
func (s *MetricsService) IncRecordCreated() { s.recordsCreated.Inc() }

// IncRecordConfirmed bumps the confirmed-records counter.
func (s *MetricsService) IncRecordConfirmed() { s.recordsConfirmed.Inc() }

// IncReminderSent bumps the delivered-reminders counter.
func (s *MetricsService) IncReminderSent() { s.remindersSent.Inc() }

// IncReminderFailed bumps the failed-reminders counter.
func (s *MetricsService) IncReminderFailed() { s.remindersFailed.Inc() }
