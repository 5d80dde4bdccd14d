package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
)

const namespace = "storefront"

type ServerMetrics struct {
	Requests       *prometheus.CounterVec
	LatencyMS      *prometheus.HistogramVec
	CartEvents     *prometheus.CounterVec
	ActiveSessions prometheus.Gauge

	gatherer prometheus.Gatherer
}

// New registers the storefront collectors, plus Go and process collectors, on a fresh registry.
func New() *ServerMetrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return NewWithRegistry(reg, reg)
}

func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "method", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route"})
	cartEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cart",
		Name:      "events_total",
		Help:      "Cart notifications by kind.",
	}, []string{"kind"})
	sessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "session",
		Name:      "active",
		Help:      "Sessions currently held in memory.",
	})

	reg.MustRegister(requests, latency, cartEvents, sessions)
	return &ServerMetrics{
		Requests:       requests,
		LatencyMS:      latency,
		CartEvents:     cartEvents,
		ActiveSessions: sessions,
		gatherer:       gatherer,
	}
}

// Notify counts cart notifications, so ServerMetrics can sit in a notifier fanout.
func (m *ServerMetrics) Notify(n cart.Notification) {
	m.CartEvents.WithLabelValues(string(n.Kind)).Inc()
}

// SetActiveSessions matches the session registry's observer hook.
func (m *ServerMetrics) SetActiveSessions(n int) {
	m.ActiveSessions.Set(float64(n))
}

func (m *ServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
