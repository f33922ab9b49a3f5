package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's Prometheus collectors on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	quotes      prometheus.Counter
	quoteTotal  prometheus.Histogram
	settlements prometheus.Counter
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		quotes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "quotes_calculated_total",
			Help: "Quote breakdowns calculated, saved or not.",
		}),
		quoteTotal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "quote_total_usd",
			Help:    "Distribution of quote totals in USD.",
			Buckets: []float64{100, 250, 500, 1000, 2000, 4000, 8000, 16000},
		}),
		settlements: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "settlements_computed_total",
			Help: "Group settlements computed.",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.duration, m.quotes, m.quoteTotal, m.settlements,
	)
	return m
}

// Middleware records request count and latency. Requests that match no route
// share the "unmatched" label so arbitrary paths cannot explode cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveQuote records one calculated quote and its total.
func (m *Metrics) ObserveQuote(total int64) {
	m.quotes.Inc()
	m.quoteTotal.Observe(float64(total))
}

// ObserveSettlement records one computed settlement.
func (m *Metrics) ObserveSettlement() {
	m.settlements.Inc()
}
