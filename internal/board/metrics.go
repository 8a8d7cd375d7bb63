package board

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "scoreboard"

// Operation result labels.
const (
	resultOK       = "ok"
	resultRejected = "rejected"
)

type metrics struct {
	ongoing    prometheus.Gauge
	operations *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		ongoing: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "ongoing_matches",
			Help:      "Number of matches currently on the board.",
		}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "operations_total",
			Help:      "Board operations by operation and result.",
		}, []string{"operation", "result"}),
	}
	m.ongoing = register(reg, m.ongoing)
	m.operations = register(reg, m.operations)
	return m
}

// register adds c to reg, returning the already-registered collector when
// one with the same descriptor exists.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

func (m *metrics) observe(operation string, err error) {
	if m == nil {
		return
	}
	result := resultOK
	if err != nil {
		result = resultRejected
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

func (m *metrics) setOngoing(n int) {
	if m == nil {
		return
	}
	m.ongoing.Set(float64(n))
}
