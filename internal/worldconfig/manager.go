package worldconfig

import (
	"sort"
	"strings"
	"sync"

	"github.com/annel0/mmo-dungeon/internal/logging"
)

// Manager кэш WorldConfig по имени мира. Записи не вытесняются.
type Manager struct {
	store      Store
	known      NameSet
	migrations *Migrations
	metrics    *Metrics
	logger     *logging.Logger

	mu      sync.RWMutex
	configs map[string]*WorldConfig
}

// ManagerOption настраивает Manager
type ManagerOption func(*Manager)

// WithMigrations заменяет цепочку миграций по умолчанию
func WithMigrations(m *Migrations) ManagerOption {
	return func(mgr *Manager) {
		mgr.migrations = m
	}
}

// WithMetrics включает счётчики
func WithMetrics(m *Metrics) ManagerOption {
	return func(mgr *Manager) {
		mgr.metrics = m
	}
}

// WithLogger заменяет логгер компонента
func WithLogger(l *logging.Logger) ManagerOption {
	return func(mgr *Manager) {
		mgr.logger = l
	}
}

// NewManager создаёт кэш конфигураций поверх store
func NewManager(store Store, known NameSet, opts ...ManagerOption) *Manager {
	mgr := &Manager{
		store:      store,
		known:      known,
		migrations: DefaultMigrations(),
		logger:     logging.GetConfigLogger(),
		configs:    make(map[string]*WorldConfig),
	}
	for _, opt := range opts {
		opt(mgr)
	}
	return mgr
}

// Of возвращает конфигурацию мира. Имя приводится к нижнему регистру;
// для каждого мира создаётся не более одного экземпляра.
func (m *Manager) Of(worldName string) *WorldConfig {
	name := strings.ToLower(worldName)

	m.mu.RLock()
	if cfg, exists := m.configs[name]; exists {
		m.mu.RUnlock()
		return cfg
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Двойная проверка
	if cfg, exists := m.configs[name]; exists {
		return cfg
	}

	cfg := newWorldConfig(name, m.store, m.known, m.migrations, m.metrics, m.logger)
	m.configs[name] = cfg
	return cfg
}

// Worlds возвращает отсортированные имена миров в кэше
func (m *Manager) Worlds() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.configs))
	for name := range m.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
