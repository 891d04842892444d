package worldconfig

// Updater переводит имя правила в новую версию. При ok=false имя не меняется.
type Updater func(name string) (string, bool)

// RenameUpdater создаёт Updater по таблице переименований
func RenameUpdater(mapping map[string]string) Updater {
	table := make(map[string]string, len(mapping))
	for k, v := range mapping {
		table[k] = v
	}
	return func(name string) (string, bool) {
		renamed, ok := table[name]
		return renamed, ok
	}
}

// Migrations цепочка обновлений имён, по одному Updater на целевую версию
type Migrations struct {
	updaters map[int]Updater
}

// NewMigrations создаёт пустую цепочку
func NewMigrations() *Migrations {
	return &Migrations{updaters: make(map[int]Updater)}
}

// DefaultMigrations цепочка для текущей схемы
func DefaultMigrations() *Migrations {
	m := NewMigrations()
	// 1 -> 2: спаунер переименован
	m.Set(2, RenameUpdater(map[string]string{"random_spawner": "simple_spawner"}))
	return m
}

// Set задаёт Updater для перехода на версию toVersion
func (m *Migrations) Set(toVersion int, updater Updater) {
	m.updaters[toVersion] = updater
}

// Apply применяет обновления from+1..to по возрастанию. Исходный срез не меняется.
func (m *Migrations) Apply(names []string, from, to int) []string {
	out := make([]string, len(names))
	copy(out, names)

	for version := from + 1; version <= to; version++ {
		updater, ok := m.updaters[version]
		if !ok {
			continue
		}
		for i, name := range out {
			if renamed, ok := updater(name); ok {
				out[i] = renamed
			}
		}
	}
	return out
}
