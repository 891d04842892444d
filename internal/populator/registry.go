package populator

import (
	"sync"

	"github.com/annel0/mmo-dungeon/internal/errors"
)

// Registry множество известных имён правил: зарегистрированные правила и встроенные
// имена хоста, которые не реализуются здесь (например, "forest", "animal").
// Заполняется при старте процесса, дальше используется только на чтение.
type Registry struct {
	mu       sync.RWMutex
	rules    map[string]*Rule
	order    []string
	builtins []string
	known    map[string]struct{}
}

// NewRegistry создаёт регистр со встроенными непрозрачными именами
func NewRegistry(builtins ...string) *Registry {
	r := &Registry{
		rules: make(map[string]*Rule),
		known: make(map[string]struct{}),
	}
	for _, name := range builtins {
		if _, dup := r.known[name]; dup || name == "" {
			continue
		}
		r.builtins = append(r.builtins, name)
		r.known[name] = struct{}{}
	}
	return r
}

// Register добавляет правило. При повторе имени возвращает ALREADY_EXISTS.
func (r *Registry) Register(rule *Rule) error {
	if rule == nil {
		return errors.InvalidArgumentf("rule is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.known[rule.name]; exists {
		return errors.AlreadyExistsf("populator %s already registered", rule.name)
	}
	r.rules[rule.name] = rule
	r.order = append(r.order, rule.name)
	r.known[rule.name] = struct{}{}
	return nil
}

// Rule возвращает правило по имени. Для встроенных имён правила нет.
func (r *Registry) Rule(name string) (*Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[name]
	return rule, ok
}

// Known сообщает, известно ли имя
func (r *Registry) Known(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.known[name]
	return ok
}

// Names возвращает все известные имена: правила в порядке регистрации, затем встроенные
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.order)+len(r.builtins))
	names = append(names, r.order...)
	names = append(names, r.builtins...)
	return names
}
