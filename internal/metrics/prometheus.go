package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks total HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "endpoint", "status"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "endpoint"},
	)

	// CircuitBreakerState tracks circuit breaker state (0=closed, 1=open, 2=half-open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storefront_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"service", "circuit_name"},
	)

	CircuitBreakerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_circuit_breaker_failures_total",
			Help: "Total number of calls failed through a circuit breaker",
		},
		[]string{"service", "circuit_name"},
	)

	// CatalogLoadFailures counts menu sources that could not be loaded or parsed
	CatalogLoadFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_catalog_load_failures_total",
			Help: "Menu catalog load failures by mode",
		},
		[]string{"mode"},
	)

	// ReconcileUpdates counts cart lines rewritten after a guest-count change
	ReconcileUpdates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_reconcile_line_updates_total",
			Help: "Cart lines updated by guest-count reconciliation",
		},
	)

	ReconcileDeferrals = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_reconcile_deferrals_total",
			Help: "Reconciliation passes deferred by the edit lock",
		},
	)

	// OTPRequests tracks send/resend/verify outcomes
	OTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_otp_requests_total",
			Help: "OTP operations by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_whatsapp_notifications_total",
			Help: "WhatsApp order notifications by outcome",
		},
		[]string{"outcome"},
	)

	// OrdersTotal tracks confirmed orders
	OrdersTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_orders_confirmed_total",
			Help: "Orders confirmed at checkout",
		},
	)

	OrderValue = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_order_value_rupees",
			Help:    "Confirmed order totals in rupees",
			Buckets: []float64{500, 1000, 2500, 5000, 10000, 25000, 50000},
		},
	)
)

// PrometheusMiddleware creates a Gin middleware for automatic metrics collection
func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		RequestsTotal.WithLabelValues(serviceName, c.Request.Method, endpoint, status).Inc()
		RequestDuration.WithLabelValues(serviceName, c.Request.Method, endpoint).
			Observe(time.Since(start).Seconds())
	}
}
