package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ELSILVAGM/genomma-lab-actualizacion-seguimiento-rechazos/internal/dto"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the rejection-processing workflow.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	filesProcessed  *prometheus.CounterVec
	rowsUpdated     prometheus.Counter
	rowsFailed      prometheus.Counter
	derived         *prometheus.CounterVec
	processDuration prometheus.Histogram
}

// NewMetricsService registers the collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	filesProcessed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rejection_files_processed_total",
		Help: "Uploaded rejection files by validation outcome",
	}, []string{"outcome"})

	rowsUpdated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rejection_rows_updated_total",
		Help: "Rejection rows updated, propagated siblings included",
	})

	rowsFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rejection_rows_failed_total",
		Help: "Rejection rows that failed to update",
	})

	derived := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "homologations_derived_total",
		Help: "Derived homologation rows by entity and outcome",
	}, []string{"entity", "outcome"})

	processDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rejection_process_duration_seconds",
		Help:    "End-to-end duration of one processed file",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, filesProcessed,
		rowsUpdated, rowsFailed, derived, processDuration, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		filesProcessed:  filesProcessed,
		rowsUpdated:     rowsUpdated,
		rowsFailed:      rowsFailed,
		derived:         derived,
		processDuration: processDuration,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// ObserveProcess records the outcome of one processed file.
func (m *MetricsService) ObserveProcess(result *dto.ProcessResult, duration time.Duration) {
	if m == nil || result == nil {
		return
	}
	outcome := "valid"
	if !result.Validation.Valid {
		outcome = "invalid"
	}
	m.filesProcessed.WithLabelValues(outcome).Inc()
	m.processDuration.Observe(duration.Seconds())

	if result.Update != nil {
		m.rowsUpdated.Add(float64(result.Update.Updated))
		m.rowsFailed.Add(float64(result.Update.Failed))
	}
	if result.Products != nil {
		m.observeDerive("product", result.Products.DeriveSummary)
	}
	if result.Branches != nil {
		m.observeDerive("branch", result.Branches.DeriveSummary)
	}
}

func (m *MetricsService) observeDerive(entity string, summary dto.DeriveSummary) {
	m.derived.WithLabelValues(entity, "inserted").Add(float64(summary.Inserted))
	m.derived.WithLabelValues(entity, "duplicated").Add(float64(summary.Duplicated))
	m.derived.WithLabelValues(entity, "failed").Add(float64(summary.Failed))
}
