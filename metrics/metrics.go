package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the campaign server
type Metrics struct {
	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec

	DraftsTotal              *prometheus.CounterVec
	CampaignsSimulatedTotal  prometheus.Counter
	RecipientsSimulatedTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates a Metrics instance on its own registry
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaign_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "campaign_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
		DraftsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaign_drafts_total",
				Help: "Draft generation attempts by result",
			},
			[]string{"result"},
		),
		CampaignsSimulatedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "campaign_simulated_total",
				Help: "Total number of simulated campaign sends",
			},
		),
		RecipientsSimulatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaign_recipients_simulated_total",
				Help: "Simulated recipient outcomes",
			},
			[]string{"outcome"},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
		m.DraftsTotal,
		m.CampaignsSimulatedTotal,
		m.RecipientsSimulatedTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordDraft counts a draft attempt. result is "ok", "invalid", "model_error" or "parse_error".
func (m *Metrics) RecordDraft(result string) {
	m.DraftsTotal.WithLabelValues(result).Inc()
}

// RecordCampaign counts a simulated send and its per-recipient outcomes.
func (m *Metrics) RecordCampaign(sent, failed, opened int) {
	m.CampaignsSimulatedTotal.Inc()
	m.RecipientsSimulatedTotal.WithLabelValues("sent").Add(float64(sent))
	m.RecipientsSimulatedTotal.WithLabelValues("failed").Add(float64(failed))
	m.RecipientsSimulatedTotal.WithLabelValues("opened").Add(float64(opened))
}

// Middleware records request counts and latency, labelled by route template
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDurationSeconds.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
