// Package metrics holds the dispatch pipeline's Prometheus collectors. They
// live outside the http package so the core can record without importing it.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	DispatchTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notify_dispatch_total",
		Help: "Dispatch calls by event type and outcome (success or error kind)",
	}, []string{"event_type", "outcome"})

	DispatchDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notify_dispatch_duration_seconds",
		Help:    "End-to-end dispatch latency",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"event_type"})

	TransportSendTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notify_transport_send_total",
		Help: "Transport calls by route (recipient|operator) and result (ok or diagnostic code)",
	}, []string{"route", "result"})

	IdentityLookupTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notify_identity_resolved_total",
		Help: "Resolved recipients by account class",
	}, []string{"account_class"})
)

// Register registers the collectors on reg (default registerer if nil).
// Duplicate registration is not an error.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{DispatchTotal, DispatchDuration, TransportSendTotal, IdentityLookupTotal} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}

func RecordDispatch(eventType, outcome string, d time.Duration) {
	DispatchTotal.WithLabelValues(eventType, outcome).Inc()
	DispatchDuration.WithLabelValues(eventType).Observe(d.Seconds())
}

func RecordSend(route, result string) {
	TransportSendTotal.WithLabelValues(route, result).Inc()
}

func RecordIdentity(accountClass string) {
	IdentityLookupTotal.WithLabelValues(accountClass).Inc()
}
