package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rio-ARC/Oracle-of-Delphi-Chatbot/pkg/ritual"
)

// MetricsObserver records transition counters on a prometheus registry.
type MetricsObserver struct {
	transitions  *prometheus.CounterVec
	forcedResets prometheus.Counter
}

// NewMetricsObserver creates the observer and registers its collectors on reg.
func NewMetricsObserver(reg prometheus.Registerer) *MetricsObserver {
	m := &MetricsObserver{
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oracle_ritual_transitions_total",
				Help: "Total ritual transitions, by resulting state.",
			},
			[]string{"state"},
		),
		forcedResets: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "oracle_ritual_forced_resets_total",
				Help: "Total forced resets used to recover stuck sessions.",
			},
		),
	}
	reg.MustRegister(m.transitions, m.forcedResets)
	return m
}

func (m *MetricsObserver) OnTransition(ctx context.Context, event ritual.Event) {
	m.transitions.WithLabelValues(string(event.State)).Inc()
	if event.Forced() {
		m.forcedResets.Inc()
	}
}
