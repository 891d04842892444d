package worldconfig_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/annel0/mmo-dungeon/internal/errors"
	"github.com/annel0/mmo-dungeon/internal/storage"
	"github.com/annel0/mmo-dungeon/internal/worldconfig"
	worldconfigmock "github.com/annel0/mmo-dungeon/internal/worldconfig/mock"
)

type nameSet []string

func (s nameSet) Known(name string) bool {
	for _, n := range s {
		if n == name {
			return true
		}
	}
	return false
}

func (s nameSet) Names() []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

var known = nameSet{"lava_in_wall", "silverfish_block", "simple_spawner", "pumpkin", "forest", "animal"}

// countingStore считает записи поверх настоящего хранилища
type countingStore struct {
	worldconfig.Store
	mu    sync.Mutex
	saves int
}

func (s *countingStore) Save(ctx context.Context, name string, doc worldconfig.Document) error {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	return s.Store.Save(ctx, name, doc)
}

func (s *countingStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func seed(t *testing.T, store worldconfig.Store, world string, doc worldconfig.Document) {
	t.Helper()
	require.NoError(t, store.Save(context.Background(), world, doc))
}

func TestLoadMigratesRenamedRule(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	seed(t, mem, "overworld", worldconfig.Document{Version: 1, Populators: []string{"pumpkin", "random_spawner"}})

	cfg := worldconfig.NewManager(mem, known).Of("overworld")
	names, err := cfg.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pumpkin", "simple_spawner"}, names)
	assert.NotContains(t, names, "random_spawner")

	doc, found, err := mem.Load(ctx, "overworld")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, worldconfig.CurrentVersion, doc.Version, "Старая версия должна быть перезаписана текущей")
	assert.Equal(t, names, doc.Populators)
}

func TestLoadUnsupportedVersionResets(t *testing.T) {
	for _, version := range []int{0, 3, -1, 42} {
		t.Run(fmt.Sprintf("version_%d", version), func(t *testing.T) {
			ctx := context.Background()
			mem := storage.NewMemoryStore()
			original := worldconfig.Document{Version: version, Populators: []string{"pumpkin"}}
			seed(t, mem, "overworld", original)

			names, err := worldconfig.NewManager(mem, known).Of("overworld").Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, known.Names(), names)

			backups := mem.Backups("overworld")
			require.Len(t, backups, 1, "Перед сбросом должна создаваться резервная копия")
			assert.Equal(t, original, backups[0])

			doc, _, err := mem.Load(ctx, "overworld")
			require.NoError(t, err)
			assert.Equal(t, worldconfig.CurrentVersion, doc.Version)
			assert.Equal(t, known.Names(), doc.Populators)
		})
	}
}

func TestLoadEmptyListResets(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	seed(t, mem, "overworld", worldconfig.Document{Version: 2, Populators: []string{}})

	names, err := worldconfig.NewManager(mem, known).Of("overworld").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, known.Names(), names)

	doc, _, err := mem.Load(ctx, "overworld")
	require.NoError(t, err)
	assert.Equal(t, known.Names(), doc.Populators, "Набор по умолчанию должен быть сохранён")
	assert.Empty(t, mem.Backups("overworld"), "Пустой список не требует резервной копии")
}

func TestLoadMissingDocumentUsesDefaults(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()

	names, err := worldconfig.NewManager(mem, known).Of("nether").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, known.Names(), names)

	exists, err := mem.Exists(ctx, "nether")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLoadDropsUnknownAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mem := &countingStore{Store: storage.NewMemoryStore()}
	seed(t, mem.Store, "overworld", worldconfig.Document{
		Version:    2,
		Populators: []string{"pumpkin", "obsolete", "pumpkin", "lava_in_wall"},
	})

	cfg := worldconfig.NewManager(mem, known).Of("overworld")
	names, err := cfg.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pumpkin", "lava_in_wall"}, names)
	assert.Equal(t, 1, mem.Saves(), "Исправленный набор должен быть записан")

	again, err := cfg.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, names, again)
	assert.Equal(t, 1, mem.Saves(), "Повторная загрузка не должна писать")

	doc, _, err := mem.Load(ctx, "overworld")
	require.NoError(t, err)
	assert.Equal(t, worldconfig.CurrentVersion, doc.Version)
}

func TestLoadCurrentDocumentDoesNotWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := worldconfigmock.NewMockStore(ctrl)

	store.EXPECT().
		Load(gomock.Any(), "overworld").
		Return(worldconfig.Document{Version: 2, Populators: []string{"silverfish_block", "forest"}}, true, nil)

	names, err := worldconfig.NewManager(store, known).Of("overworld").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"silverfish_block", "forest"}, names)
}

func TestLoadBackupFailurePreventsReset(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := worldconfigmock.NewMockStore(ctrl)

	store.EXPECT().
		Load(gomock.Any(), "overworld").
		Return(worldconfig.Document{Version: 7, Populators: []string{"pumpkin"}}, true, nil)
	store.EXPECT().
		Backup(gomock.Any(), "overworld").
		Return(errors.IOf("disk full"))
	// Save не ожидается: сброс без резервной копии запрещён

	_, err := worldconfig.NewManager(store, known).Of("overworld").Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsIO(err), "Ожидалась ошибка IO, получено %v", err)
}

func TestLoadPropagatesConfigReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := worldconfigmock.NewMockStore(ctrl)

	store.EXPECT().
		Load(gomock.Any(), "overworld").
		Return(worldconfig.Document{}, false, errors.ConfigReadf("Populators[0] is int"))

	_, err := worldconfig.NewManager(store, known).Of("overworld").Load(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsConfigRead(err))
}

func TestLoadSaveFailureSurfaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := worldconfigmock.NewMockStore(ctrl)

	store.EXPECT().
		Load(gomock.Any(), "overworld").
		Return(worldconfig.Document{Version: 1, Populators: []string{"random_spawner"}}, true, nil)
	store.EXPECT().
		Save(gomock.Any(), "overworld", worldconfig.Document{Version: 2, Populators: []string{"simple_spawner"}}).
		Return(errors.IOf("read-only filesystem"))

	_, err := worldconfig.NewManager(store, known).Of("overworld").Load(context.Background())
	assert.True(t, errors.IsIO(err))
}

func TestEnabledLoadsOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := worldconfigmock.NewMockStore(ctrl)

	store.EXPECT().
		Load(gomock.Any(), "overworld").
		Return(worldconfig.Document{Version: 2, Populators: []string{"pumpkin"}}, true, nil).
		Times(1)

	cfg := worldconfig.NewManager(store, known).Of("overworld")
	for i := 0; i < 3; i++ {
		names, err := cfg.Enabled(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"pumpkin"}, names)
	}
}

func TestSave(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	cfg := worldconfig.NewManager(mem, known).Of("overworld")

	require.NoError(t, cfg.Save(ctx, []string{"pumpkin", "forest", "pumpkin"}))

	doc, _, err := mem.Load(ctx, "overworld")
	require.NoError(t, err)
	assert.Equal(t, worldconfig.Document{Version: 2, Populators: []string{"pumpkin", "forest"}}, doc)

	enabled, err := cfg.Enabled(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pumpkin", "forest"}, enabled)

	err = cfg.Save(ctx, []string{"pumpkin", "nope"})
	assert.True(t, errors.IsInvalidArgument(err), "Неизвестное имя должно отклоняться")
}

func TestExistsAndDelete(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	cfg := worldconfig.NewManager(mem, known).Of("overworld")

	exists, err := cfg.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = cfg.Enabled(ctx)
	require.NoError(t, err)

	exists, err = cfg.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	deleted, err := cfg.Delete(ctx)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = cfg.Delete(ctx)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestManagerOfNormalisesCase(t *testing.T) {
	mgr := worldconfig.NewManager(storage.NewMemoryStore(), known)

	a := mgr.Of("Overworld")
	b := mgr.Of("OVERWORLD")
	assert.Same(t, a, b)
	assert.Equal(t, "overworld", a.Name())
	assert.Equal(t, []string{"overworld"}, mgr.Worlds())
}

func TestManagerOfConcurrent(t *testing.T) {
	mgr := worldconfig.NewManager(storage.NewMemoryStore(), known)

	const workers = 32
	results := make([]*worldconfig.WorldConfig, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			world := "overworld"
			if i%2 == 0 {
				world = "OverWorld"
			}
			results[i] = mgr.Of(world)
			_, _ = results[i].Enabled(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, results[0], results[i], "Для мира должен существовать один экземпляр")
	}
}

func TestManagerWithMigrations(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore()
	seed(t, mem, "overworld", worldconfig.Document{Version: 1, Populators: []string{"gourd"}})

	m := worldconfig.NewMigrations()
	m.Set(2, worldconfig.RenameUpdater(map[string]string{"gourd": "pumpkin"}))

	names, err := worldconfig.NewManager(mem, known, worldconfig.WithMigrations(m)).Of("overworld").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pumpkin"}, names)
}
