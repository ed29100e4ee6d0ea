package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/odvcencio/spatialnav/pkg/geometry"
)

// Move results.
const (
	ResultMoved     = "moved"
	ResultFailed    = "failed"
	ResultCancelled = "cancelled"
	ResultSkipped   = "skipped"
)

// Metrics exposes navigation counters to Prometheus.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	moves       *prometheus.CounterVec
	transitions *prometheus.CounterVec
	sections    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spatialnav",
			Name:      "moves_total",
			Help:      "Directional move requests by direction and result.",
		}, []string{"direction", "result"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spatialnav",
			Name:      "focus_transitions_total",
			Help:      "Focus transitions by mode and outcome.",
		}, []string{"mode", "outcome"}),
		sections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "spatialnav",
			Name:      "sections",
			Help:      "Number of registered navigation sections.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.moves, m.transitions, m.sections)
	}
	return m
}

// ObserveMove counts a move request.
func (m *Metrics) ObserveMove(direction geometry.Direction, result string) {
	if m == nil {
		return
	}
	m.moves.WithLabelValues(string(direction), result).Inc()
}

// ObserveTransition counts a focus transition.
func (m *Metrics) ObserveTransition(mode, outcome string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(mode, outcome).Inc()
}

// SetSections records the current section count.
func (m *Metrics) SetSections(n int) {
	if m == nil {
		return
	}
	m.sections.Set(float64(n))
}
