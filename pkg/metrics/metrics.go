package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "valor_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	UpstreamCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valor_upstream_calls_total",
			Help: "Calls to third-party services by outcome",
		},
		[]string{"service", "outcome"},
	)

	ClaimsSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valor_claims_submitted_total",
			Help: "Claims submitted, labelled by whether AI analysis completed",
		},
		[]string{"analysis"},
	)

	BotIntents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "valor_bot_intents_total",
			Help: "Bot replies by classified intent",
		},
		[]string{"intent"},
	)

	WebSocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "valor_websocket_clients",
			Help: "Currently connected WebSocket clients",
		},
	)
)

var registerOnce sync.Once

// Init registers collectors with the default registry. Safe to call repeatedly.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(UpstreamCalls)
		prometheus.MustRegister(ClaimsSubmitted)
		prometheus.MustRegister(BotIntents)
		prometheus.MustRegister(WebSocketClients)
	})
}

// ObserveUpstream records one outbound call.
func ObserveUpstream(service string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	UpstreamCalls.WithLabelValues(service, outcome).Inc()
}

// Middleware records request latency by matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		HTTPRequestDuration.WithLabelValues(c.Method(), c.Route().Path, strconv.Itoa(status)).
			Observe(time.Since(start).Seconds())
		return err
	}
}

func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
