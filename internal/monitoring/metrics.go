package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business metrics
	ConnectionRequestsSent     prometheus.Counter
	ConnectionRequestsAccepted prometheus.Counter
	HiresRecorded              prometheus.Counter
	TrustSnapshotsSeeded       prometheus.Counter
	DirectorySearches          prometheus.Counter
	SignUpsTotal               *prometheus.CounterVec
}

var metrics *Metrics

// Init initializes all Prometheus metrics
func Init() {
	metrics = &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trustnet_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "trustnet_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "trustnet_http_requests_in_flight",
				Help: "Number of HTTP requests currently being served",
			},
		),
		ConnectionRequestsSent: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "trustnet_connection_requests_sent_total",
				Help: "Total number of connection requests sent",
			},
		),
		ConnectionRequestsAccepted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "trustnet_connection_requests_accepted_total",
				Help: "Total number of connection requests accepted",
			},
		),
		HiresRecorded: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "trustnet_hires_recorded_total",
				Help: "Total number of direct hires recorded",
			},
		),
		TrustSnapshotsSeeded: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "trustnet_trust_snapshots_seeded_total",
				Help: "Total number of first-time trust snapshots created",
			},
		),
		DirectorySearches: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "trustnet_directory_searches_total",
				Help: "Total number of worker directory searches",
			},
		),
		SignUpsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "trustnet_sign_ups_total",
				Help: "Total number of sign-ups by role",
			},
			[]string{"role"},
		),
	}
}

// Get returns the metrics instance, initializing it if needed
func Get() *Metrics {
	if metrics == nil {
		Init()
	}
	return metrics
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// MetricsMiddleware records HTTP metrics for each request
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		m := Get()
		start := time.Now()
		m.HTTPRequestsInFlight.Inc()

		c.Next()

		m.HTTPRequestsInFlight.Dec()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
