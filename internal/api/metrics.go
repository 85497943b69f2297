// ABOUTME: Prometheus metrics for the HTTP API.
// ABOUTME: Each server owns its registry so tests can build many servers.
package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	records     *prometheus.CounterVec
	failures    prometheus.Counter
	healthScore prometheus.Gauge
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "betta",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "betta",
			Name:      "records_created_total",
			Help:      "Records written through the API by collection.",
		}, []string{"collection"}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "betta",
			Name:      "persistence_failures_total",
			Help:      "Repository calls that returned an error.",
		}),
		healthScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "betta",
			Name:      "health_score",
			Help:      "Most recently computed wellness score.",
		}),
	}
	m.registry.MustRegister(m.requests, m.records, m.failures, m.healthScore)
	return m
}

// middleware counts requests by matched route.
func (m *metrics) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
