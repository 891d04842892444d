package worldconfig

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics счётчики загрузки конфигураций
type Metrics struct {
	loads      prometheus.Counter
	resets     *prometheus.CounterVec
	migrations prometheus.Counter
	writeBacks prometheus.Counter
	dropped    prometheus.Counter
}

// NewMetrics создаёт счётчики и регистрирует их в reg, если он задан
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dungeon",
			Subsystem: "worldconfig",
			Name:      "loads_total",
			Help:      "Number of config document loads",
		}),
		resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dungeon",
			Subsystem: "worldconfig",
			Name:      "resets_total",
			Help:      "Number of resets to the default populator set",
		}, []string{"reason"}),
		migrations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dungeon",
			Subsystem: "worldconfig",
			Name:      "migrations_total",
			Help:      "Number of documents migrated to the current version",
		}),
		writeBacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dungeon",
			Subsystem: "worldconfig",
			Name:      "writebacks_total",
			Help:      "Number of corrected documents written back",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dungeon",
			Subsystem: "worldconfig",
			Name:      "dropped_names_total",
			Help:      "Number of unknown populator names dropped on load",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.loads, m.resets, m.migrations, m.writeBacks, m.dropped)
	}
	return m
}

func (m *Metrics) observeLoad() {
	if m != nil {
		m.loads.Inc()
	}
}

func (m *Metrics) observeReset(reason string) {
	if m != nil {
		m.resets.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) observeMigration() {
	if m != nil {
		m.migrations.Inc()
	}
}

func (m *Metrics) observeWriteBack() {
	if m != nil {
		m.writeBacks.Inc()
	}
}

func (m *Metrics) observeDropped() {
	if m != nil {
		m.dropped.Inc()
	}
}
