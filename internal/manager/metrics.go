package manager

import "github.com/prometheus/client_golang/prometheus"

var (
	loadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vllmd",
			Subsystem: "manager",
			Name:      "loads_total",
			Help:      "Completed backend load attempts by outcome",
		},
		[]string{"outcome"},
	)

	loadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vllmd",
			Subsystem: "manager",
			Name:      "load_duration_seconds",
			Help:      "Time from load acceptance to a terminal outcome",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
		[]string{"outcome"},
	)

	instancesGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "vllmd",
			Subsystem: "manager",
			Name:      "instances",
			Help:      "Registry entries by lifecycle state",
		},
		[]string{"state"},
	)

	unloadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "vllmd",
			Subsystem: "manager",
			Name:      "unloads_total",
			Help:      "Completed unloads",
		},
	)
)

// Load outcome labels.
const (
	outcomeReady     = "ready"
	outcomeError     = "error"
	outcomeAbandoned = "abandoned"
)

func init() {
	prometheus.MustRegister(loadsTotal, loadDuration, instancesGauge, unloadsTotal)
}

// refreshInstanceGauge recomputes the per-state gauge from the registry.
func (m *Manager) refreshInstanceGauge() {
	counts := map[State]int{StateLoading: 0, StateReady: 0, StateError: 0, StateDraining: 0, StateStopped: 0}
	for _, inst := range m.reg.SnapshotAll() {
		counts[inst.Status()]++
	}
	for s, n := range counts {
		instancesGauge.WithLabelValues(string(s)).Set(float64(n))
	}
}
