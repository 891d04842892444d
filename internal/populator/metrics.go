package populator

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics Prometheus-счётчики движка декорирования. nil-значение допустимо и ничего не считает.
type Metrics struct {
	chunks    prometheus.Counter
	claimed   *prometheus.CounterVec
	skipped   *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	hookCalls *prometheus.CounterVec
	edits     *prometheus.CounterVec
}

// NewMetrics создаёт метрики и регистрирует их в reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		chunks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dungeon",
			Subsystem: "populator",
			Name:      "chunks_total",
			Help:      "Число чанков, прошедших декорирование.",
		}),
		claimed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dungeon",
			Subsystem: "populator",
			Name:      "rooms_claimed_total",
			Help:      "Комнаты, занятые правилом.",
		}, []string{"rule"}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dungeon",
			Subsystem: "populator",
			Name:      "rooms_skipped_total",
			Help:      "Комнаты, пропущенные как уже занятые.",
		}, []string{"rule"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dungeon",
			Subsystem: "populator",
			Name:      "rooms_rejected_total",
			Help:      "Комнаты, не прошедшие шанс выбора.",
		}, []string{"rule"}),
		hookCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dungeon",
			Subsystem: "populator",
			Name:      "hook_calls_total",
			Help:      "Вызовы декоратора.",
		}, []string{"rule"}),
		edits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dungeon",
			Subsystem: "populator",
			Name:      "edits_total",
			Help:      "Вызовы декоратора, изменившие мир.",
		}, []string{"rule"}),
	}

	if reg != nil {
		reg.MustRegister(m.chunks, m.claimed, m.skipped, m.rejected, m.hookCalls, m.edits)
	}
	return m
}

func (m *Metrics) observeRun(rule string, stats RunStats) {
	if m == nil {
		return
	}
	m.claimed.WithLabelValues(rule).Add(float64(stats.Claimed))
	m.skipped.WithLabelValues(rule).Add(float64(stats.Skipped))
	m.rejected.WithLabelValues(rule).Add(float64(stats.Rejected))
	m.hookCalls.WithLabelValues(rule).Add(float64(stats.HookCalls))
	m.edits.WithLabelValues(rule).Add(float64(stats.Edits))
}

func (m *Metrics) observeChunk() {
	if m == nil {
		return
	}
	m.chunks.Inc()
}
