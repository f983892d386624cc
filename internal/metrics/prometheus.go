// Package metrics exposes prometheus instrumentation for the HTTP layer and
// report generation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)

	// Report metrics
	reportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "health_reports_total",
			Help: "Health report requests by outcome",
		},
		[]string{"outcome"},
	)

	predictionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "prediction_duration_seconds",
			Help:    "Time spent in the prediction model",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)

	vitalsStatus = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vitals_status_total",
			Help: "Classified vital sign bands",
		},
		[]string{"vital", "status"},
	)

	lifestyleRisk = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lifestyle_risk_findings_total",
			Help: "Lifestyle risk findings by habit and tier",
		},
		[]string{"habit", "tier"},
	)
)

// Report outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeInvalidInput = "invalid_input"
	OutcomeModelError   = "model_error"
)

func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count, latency and in-flight requests. Paths are
// labelled by route template so ids do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func RecordReport(outcome string) {
	reportsTotal.WithLabelValues(outcome).Inc()
}

func RecordPrediction(model string, duration time.Duration) {
	predictionDuration.WithLabelValues(model).Observe(duration.Seconds())
}

func RecordVitals(bp, hr, sleep string) {
	vitalsStatus.WithLabelValues("bp", bp).Inc()
	vitalsStatus.WithLabelValues("hr", hr).Inc()
	vitalsStatus.WithLabelValues("sleep", sleep).Inc()
}

func RecordLifestyleRisk(habit, tier string) {
	lifestyleRisk.WithLabelValues(habit, tier).Inc()
}
