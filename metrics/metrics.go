package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	bookingDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unisched",
			Name:      "booking_decisions_total",
			Help:      "Booking engine outcomes by operation and result.",
		},
		[]string{"op", "result"},
	)

	lockWait = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "unisched",
			Name:      "room_lock_wait_seconds",
			Help:      "Time spent waiting for a per-room lock.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		},
	)

	notificationsEnqueued = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "unisched",
			Name:      "notifications_enqueued_total",
			Help:      "Change notifications handed to the task queue.",
		},
		[]string{"type", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "unisched",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingDecisions, lockWait, notificationsEnqueued, httpDuration)
	})
}

func IncBookingDecision(op, result string) {
	bookingDecisions.WithLabelValues(op, result).Inc()
}

func ObserveLockWait(d time.Duration) {
	lockWait.Observe(d.Seconds())
}

func IncNotificationEnqueued(kind, status string) {
	notificationsEnqueued.WithLabelValues(kind, status).Inc()
}

// Middleware records request latency keyed by the matched route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpDuration.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
