package worldconfig

import (
	"context"
	"sync"

	"github.com/annel0/mmo-dungeon/internal/errors"
	"github.com/annel0/mmo-dungeon/internal/logging"
)

// NameSet набор известных имён правил, обычно *populator.Registry
type NameSet interface {
	Known(name string) bool
	Names() []string
}

// WorldConfig список включённых правил одного мира.
// Загрузка и запись сериализуются мьютексом экземпляра.
type WorldConfig struct {
	name       string
	store      Store
	known      NameSet
	migrations *Migrations
	metrics    *Metrics
	logger     *logging.Logger

	mu      sync.Mutex
	enabled []string
	loaded  bool
}

func newWorldConfig(name string, store Store, known NameSet, migrations *Migrations, metrics *Metrics, logger *logging.Logger) *WorldConfig {
	return &WorldConfig{
		name:       name,
		store:      store,
		known:      known,
		migrations: migrations,
		metrics:    metrics,
		logger:     logger,
	}
}

// Name имя мира в нижнем регистре
func (c *WorldConfig) Name() string {
	return c.name
}

// Load читает документ, при необходимости исправляет и перезаписывает его
// и возвращает упорядоченный список включённых правил.
func (c *WorldConfig) Load(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	names, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.enabled = names
	c.loaded = true
	return cloneNames(names), nil
}

// Enabled возвращает список из кэша, загружая его при первом обращении
func (c *WorldConfig) Enabled(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.loaded {
		names, err := c.load(ctx)
		if err != nil {
			return nil, err
		}
		c.enabled = names
		c.loaded = true
	}
	return cloneNames(c.enabled), nil
}

// Save полностью заменяет документ текущей версией схемы.
// Повторы отбрасываются, неизвестные имена отклоняются.
func (c *WorldConfig) Save(ctx context.Context, names []string) error {
	unique := dedupe(names)
	for _, name := range unique {
		if !c.known.Known(name) {
			return errors.InvalidArgumentf("unknown populator %q", name).WithMeta("world", c.name)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.write(ctx, unique); err != nil {
		return err
	}
	c.enabled = unique
	c.loaded = true
	return nil
}

// Exists проверяет наличие документа
func (c *WorldConfig) Exists(ctx context.Context) (bool, error) {
	return c.store.Exists(ctx, c.name)
}

// Delete удаляет документ и сбрасывает кэш
func (c *WorldConfig) Delete(ctx context.Context) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	deleted, err := c.store.Delete(ctx, c.name)
	if err != nil {
		return false, err
	}
	c.enabled = nil
	c.loaded = false
	return deleted, nil
}

func (c *WorldConfig) load(ctx context.Context) ([]string, error) {
	c.metrics.observeLoad()

	doc, found, err := c.store.Load(ctx, c.name)
	if err != nil {
		return nil, errors.Wrapf(err, "load populators of world %s", c.name)
	}
	if !found {
		c.logger.Debug("Конфигурация мира %s отсутствует, используется набор по умолчанию", c.name)
		return c.reset(ctx, "missing")
	}

	if doc.Version < MinimumVersion || doc.Version > CurrentVersion {
		notice := errors.UnsupportedVersionf("world %s: version %d outside [%d, %d]",
			c.name, doc.Version, MinimumVersion, CurrentVersion)
		c.logger.Info("%v, создаётся резервная копия и восстанавливается набор по умолчанию", notice)

		if err := c.store.Backup(ctx, c.name); err != nil {
			c.logger.Error("Резервная копия конфигурации мира %s не создана: %v", c.name, err)
			return nil, errors.WrapWithCodef(err, errors.CodeIO, "backup config of world %s", c.name)
		}
		return c.reset(ctx, "unsupported_version")
	}

	if len(doc.Populators) == 0 {
		return c.reset(ctx, "empty")
	}

	migrated := doc.Populators
	if doc.Version < CurrentVersion {
		migrated = c.migrations.Apply(doc.Populators, doc.Version, CurrentVersion)
		c.metrics.observeMigration()
	}

	names := make([]string, 0, len(migrated))
	for _, name := range dedupe(migrated) {
		if !c.known.Known(name) {
			c.logger.Debug("Мир %s: неизвестное правило %q отброшено", c.name, name)
			c.metrics.observeDropped()
			continue
		}
		names = append(names, name)
	}

	if len(names) != len(doc.Populators) || doc.Version != CurrentVersion {
		c.logger.Debug("Мир %s: конфигурация исправлена (версия %d, %d -> %d правил), запись",
			c.name, doc.Version, len(doc.Populators), len(names))
		if err := c.write(ctx, names); err != nil {
			return nil, err
		}
		c.metrics.observeWriteBack()
	}
	return names, nil
}

func (c *WorldConfig) reset(ctx context.Context, reason string) ([]string, error) {
	defaults := c.known.Names()
	if err := c.write(ctx, defaults); err != nil {
		return nil, err
	}
	c.metrics.observeReset(reason)
	return defaults, nil
}

func (c *WorldConfig) write(ctx context.Context, names []string) error {
	doc := Document{Version: CurrentVersion, Populators: cloneNames(names)}
	if err := c.store.Save(ctx, c.name, doc); err != nil {
		return errors.Wrapf(err, "save populators of world %s", c.name)
	}
	return nil
}

// dedupe сохраняет порядок первого появления
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func cloneNames(names []string) []string {
	out := make([]string, len(names))
	copy(out, names)
	return out
}
