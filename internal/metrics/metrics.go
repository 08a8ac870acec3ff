// Package metrics exports the gateway's Prometheus collectors and serves
// them over HTTP next to a health check.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LeJamon/goXRPLGateway/internal/ledgerclient"
)

const namespace = "xrplgw"

// Metrics holds every collector on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec

	activeStreams prometheus.Gauge
	streamsClosed *prometheus.CounterVec
	eventsSent    prometheus.Counter

	ledgerEvents  prometheus.Counter
	ledgerVersion prometheus.Gauge
	connected     prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "requests_total",
			Help:      "Completed gRPC calls by method and status code.",
		}, []string{"method", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "grpc",
			Name:      "request_duration_seconds",
			Help:      "gRPC call duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		}, []string{"method"}),
		activeStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "wait_validation",
			Name:      "active_streams",
			Help:      "Open WaitValidation streams.",
		}),
		streamsClosed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wait_validation",
			Name:      "streams_closed_total",
			Help:      "Closed WaitValidation streams by reason.",
		}, []string{"reason"}),
		eventsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "wait_validation",
			Name:      "events_sent_total",
			Help:      "Ledger versions pushed to WaitValidation streams.",
		}),
		ledgerEvents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "closed_total",
			Help:      "Ledger close notifications received from the node.",
		}),
		ledgerVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "validated_version",
			Help:      "Last ledger version reported by the node.",
		}),
		connected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "connected",
			Help:      "1 while the ledger client has a session.",
		}),
	}
	m.registry.MustRegister(
		m.rpcRequests, m.rpcDuration,
		m.activeStreams, m.streamsClosed, m.eventsSent,
		m.ledgerEvents, m.ledgerVersion, m.connected,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRPC records one completed gRPC call.
func (m *Metrics) ObserveRPC(method, code string, d time.Duration) {
	m.rpcRequests.WithLabelValues(method, code).Inc()
	m.rpcDuration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *Metrics) StreamOpened() {
	m.activeStreams.Inc()
}

func (m *Metrics) StreamClosed(reason string) {
	m.activeStreams.Dec()
	m.streamsClosed.WithLabelValues(reason).Inc()
}

func (m *Metrics) LedgerEventSent() {
	m.eventsSent.Inc()
}

// LedgerClosed is a ledger listener.
func (m *Metrics) LedgerClosed(ev ledgerclient.LedgerEvent) {
	m.ledgerEvents.Inc()
	m.ledgerVersion.Set(float64(ev.LedgerVersion))
}

func (m *Metrics) SetConnected(connected bool) {
	if connected {
		m.connected.Set(1)
	} else {
		m.connected.Set(0)
	}
}

// connectionState is the part of the ledger client WatchConnection polls.
type connectionState interface {
	IsConnected() bool
}

// WatchConnection samples client's connection state every interval until
// ctx is done.
func (m *Metrics) WatchConnection(ctx context.Context, client connectionState, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		m.SetConnected(client.IsConnected())
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
