package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vblock/vblock/pkg/viewer"
)

var (
	// Decorations counts decoration passes by final marker value.
	Decorations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vblock_decorations_total",
		Help: "Decoration passes by outcome marker.",
	}, []string{"outcome"})

	// PlayerEvents counts ingested playback events by type.
	PlayerEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vblock_player_events_total",
		Help: "Ingested playback events by type.",
	}, []string{"type"})
)

// ObserveGate exports the readiness gate state as a gauge
// (0 pending, 1 ready, -1 failed).
func ObserveGate(gate viewer.Manager) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "vblock_viewer_gate_state",
		Help: "Readiness gate state (0 pending, 1 ready, -1 failed).",
	}, func() float64 {
		switch gate.State() {
		case viewer.StateReady:
			return 1
		case viewer.StateFailed:
			return -1
		default:
			return 0
		}
	})
}
