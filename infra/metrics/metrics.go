// Package metrics exposes the exchange's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the exchange collectors on a private registry, so several
// exchanges (tests in particular) can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	OrdersAccepted prometheus.Counter
	OrdersRejected prometheus.Counter
	OrdersCanceled prometheus.Counter
	ActiveSessions prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		OrdersAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "exchange",
			Name:      "orders_accepted_total",
			Help:      "Orders accepted by the matching engine.",
		}),
		OrdersRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "exchange",
			Name:      "orders_rejected_total",
			Help:      "Requests answered with a FIX reject.",
		}),
		OrdersCanceled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "exchange",
			Name:      "orders_canceled_total",
			Help:      "Resting orders cancelled on request.",
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "exchange",
			Name:      "active_sessions",
			Help:      "Client sessions currently logged on.",
		}),
	}
	m.registry.MustRegister(
		m.OrdersAccepted,
		m.OrdersRejected,
		m.OrdersCanceled,
		m.ActiveSessions,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
