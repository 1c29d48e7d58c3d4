package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Config configures metrics registration labels.
type Config struct {
	ServiceName string
	Environment string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	quotaDecisions *prometheus.CounterVec
	paymentEvents  *prometheus.CounterVec
	notifications  *prometheus.CounterVec
}

// New registers the domain instruments on the default registerer.
func New(cfg Config) (*Metrics, error) {
	return newMetrics(prometheus.DefaultRegisterer, cfg), nil
}

func newMetrics(registerer prometheus.Registerer, cfg Config) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "quickmemo"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "quickmemo_http_requests_total",
		Help:        "HTTP requests by method, route and status code.",
		ConstLabels: constLabels,
	}, []string{"method", "route", "status_code"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:        "quickmemo_http_request_duration_seconds",
		Help:        "HTTP request latency by method and route.",
		Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		ConstLabels: constLabels,
	}, []string{"method", "route"})
	quotaDecisions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "quickmemo_quota_decisions_total",
		Help:        "Quota gate decisions by resource and outcome.",
		ConstLabels: constLabels,
	}, []string{"resource", "outcome", "reason"})
	paymentEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "quickmemo_payment_events_total",
		Help:        "Payment ledger events by type and resulting invoice status.",
		ConstLabels: constLabels,
	}, []string{"event_type", "invoice_status"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "quickmemo_notifications_emitted_total",
		Help:        "Notifications emitted by type.",
		ConstLabels: constLabels,
	}, []string{"type"})

	registerer.MustRegister(
		httpRequests,
		httpDuration,
		quotaDecisions,
		paymentEvents,
		notifications,
	)

	return &Metrics{
		httpRequests:   httpRequests,
		httpDuration:   httpDuration,
		quotaDecisions: quotaDecisions,
		paymentEvents:  paymentEvents,
		notifications:  notifications,
	}
}

// GinMiddleware records request counts and latency per route.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if m == nil {
			return
		}
		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordQuotaDecision increments quota decision counts.
func (m *Metrics) RecordQuotaDecision(resource string, allowed bool, reason string) {
	if m == nil || m.quotaDecisions == nil {
		return
	}
	outcome := "allowed"
	if !allowed {
		outcome = "denied"
	}
	m.quotaDecisions.WithLabelValues(strings.TrimSpace(resource), outcome, strings.TrimSpace(reason)).Inc()
}

// RecordPaymentEvent increments payment event counts.
func (m *Metrics) RecordPaymentEvent(eventType, invoiceStatus string) {
	if m == nil || m.paymentEvents == nil {
		return
	}
	m.paymentEvents.WithLabelValues(strings.TrimSpace(eventType), strings.TrimSpace(invoiceStatus)).Inc()
}

// RecordNotification increments notification emission counts.
func (m *Metrics) RecordNotification(notificationType string) {
	if m == nil || m.notifications == nil {
		return
	}
	m.notifications.WithLabelValues(strings.TrimSpace(notificationType)).Inc()
}
