package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 15},
		},
		[]string{"method", "endpoint"},
	)

	// ExecutorCalls outcome: ok | compile_error | runtime_error | failure
	ExecutorCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "executor_calls_total",
			Help: "Calls made to the remote code executor",
		},
		[]string{"language", "outcome"},
	)

	ExecutorDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "executor_call_duration_seconds",
			Help:    "Latency of remote code executor calls",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20},
		},
		[]string{"language"},
	)

	// GradingResults mode: run | submit, result: passed | failed
	GradingResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "challenge_gradings_total",
			Help: "Challenge gradings by mode and overall result",
		},
		[]string{"mode", "result"},
	)

	ScoreAwards = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "challenge_score_awards_total",
			Help: "First-time solves that increased a user's score",
		},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			ExecutorCalls,
			ExecutorDuration,
			GradingResults,
			ScoreAwards,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
