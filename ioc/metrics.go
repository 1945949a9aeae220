package ioc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup results recorded by beans_lookups_total.
const (
	LookupHit     = "hit"
	LookupCreated = "created"
	LookupUnknown = "unknown"
	LookupFailed  = "failed"
)

// metrics holds the per-container collectors. A nil *metrics records nothing.
type metrics struct {
	created       *prometheus.CounterVec
	lookups       *prometheus.CounterVec
	interceptions *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}
	factory := promauto.With(reg)
	return &metrics{
		created: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beans_created_total",
				Help: "Total number of bean instances created, by scope",
			},
			[]string{"scope"},
		),
		lookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beans_lookups_total",
				Help: "Total number of GetBean calls, by result",
			},
			[]string{"result"},
		),
		interceptions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "beans_intercepted_calls_total",
				Help: "Total number of method calls routed through an interception wrapper",
			},
			[]string{"bean", "method"},
		),
	}
}

func (m *metrics) beanCreated(scope Scope) {
	if m == nil {
		return
	}
	m.created.WithLabelValues(scope.String()).Inc()
}

func (m *metrics) lookup(result string) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(result).Inc()
}

func (m *metrics) intercepted(bean, method string) {
	if m == nil {
		return
	}
	m.interceptions.WithLabelValues(bean, method).Inc()
}
