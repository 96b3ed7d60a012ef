package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	SourceAI       = "ai"
	SourceFallback = "fallback"

	WebhookApplied  = "applied"
	WebhookIgnored  = "ignored"
	WebhookRejected = "rejected"
)

type Collector struct {
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	recommendations *prometheus.CounterVec
	webhooks        *prometheus.CounterVec
}

// NewCollector registers every collector on reg. Pass a fresh registry in tests.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "http_requests_total", Help: "Count of HTTP requests"},
			[]string{"path", "method", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Latency of HTTP requests",
				Buckets: prometheus.DefBuckets,
			}, []string{"path", "method"},
		),
		recommendations: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "job_recommendations_total", Help: "Job recommendations served by source"},
			[]string{"source"},
		),
		webhooks: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "payment_webhooks_total", Help: "Payment webhook deliveries by result"},
			[]string{"result"},
		),
	}

	reg.MustRegister(c.httpRequests, c.httpLatency, c.recommendations, c.webhooks)
	return c
}

func (c *Collector) RecordRecommendation(source string) {
	c.recommendations.WithLabelValues(source).Inc()
}

func (c *Collector) RecordWebhook(result string) {
	c.webhooks.WithLabelValues(result).Inc()
}

// Middleware records count and latency per route template.
func (c *Collector) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			path := ctx.Path()
			if path == "" {
				path = ctx.Request().URL.Path
			}
			method := ctx.Request().Method
			c.httpRequests.WithLabelValues(path, method, strconv.Itoa(ctx.Response().Status)).Inc()
			c.httpLatency.WithLabelValues(path, method).Observe(time.Since(start).Seconds())

			return nil
		}
	}
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
