package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/mmo-dungeon/internal/errors"
	"github.com/annel0/mmo-dungeon/internal/worldconfig"
)

func setupRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	cfg := DefaultRedisConfig()
	cfg.Addr = mr.Addr()
	s, err := NewRedisStore(context.Background(), cfg)
	require.NoError(t, err, "Не удалось подключиться к miniredis")
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func setupBadgerStore(t *testing.T, compress bool) *BadgerStore {
	t.Helper()
	s, err := OpenBadgerStore("", compress)
	require.NoError(t, err, "Не удалось открыть BadgerDB в памяти")
	t.Cleanup(func() { s.Close() })
	return s
}

// Общий контракт для всех реализаций Store
func TestStoreContract(t *testing.T) {
	stores := map[string]func(t *testing.T) worldconfig.Store{
		"memory": func(t *testing.T) worldconfig.Store { return NewMemoryStore() },
		"file":   func(t *testing.T) worldconfig.Store { return NewFileStore(t.TempDir()) },
		"badger": func(t *testing.T) worldconfig.Store { return setupBadgerStore(t, false) },
		"badger_zstd": func(t *testing.T) worldconfig.Store {
			return setupBadgerStore(t, true)
		},
		"redis": func(t *testing.T) worldconfig.Store {
			s, _ := setupRedisStore(t)
			return s
		},
	}

	for name, factory := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := factory(t)

			_, found, err := s.Load(ctx, "overworld")
			require.NoError(t, err)
			assert.False(t, found, "Документ не должен существовать")

			exists, err := s.Exists(ctx, "overworld")
			require.NoError(t, err)
			assert.False(t, exists)

			require.NoError(t, s.Backup(ctx, "overworld"), "Резервная копия отсутствующего документа не ошибка")

			doc := worldconfig.Document{Version: 2, Populators: []string{"pumpkin", "lava_in_wall"}}
			require.NoError(t, s.Save(ctx, "overworld", doc))

			loaded, found, err := s.Load(ctx, "overworld")
			require.NoError(t, err)
			require.True(t, found)
			assert.Equal(t, doc, loaded)

			require.NoError(t, s.Backup(ctx, "overworld"))

			empty := worldconfig.Document{Version: 2}
			require.NoError(t, s.Save(ctx, "overworld", empty))
			loaded, _, err = s.Load(ctx, "overworld")
			require.NoError(t, err)
			assert.Equal(t, 2, loaded.Version)
			assert.Empty(t, loaded.Populators)

			deleted, err := s.Delete(ctx, "overworld")
			require.NoError(t, err)
			assert.True(t, deleted)

			deleted, err = s.Delete(ctx, "overworld")
			require.NoError(t, err)
			assert.False(t, deleted, "Повторное удаление должно вернуть false")

			_, err = s.Exists(ctx, "../escape")
			assert.True(t, errors.IsInvalidArgument(err), "Имя с разделителем пути должно отклоняться")
			assert.True(t, errors.IsInvalidArgument(s.Save(ctx, "", doc)))
		})
	}
}

func TestFileStoreYAMLLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFileStore(dir)

	require.NoError(t, s.Save(ctx, "nether", worldconfig.Document{Version: 2, Populators: []string{"pumpkin"}}))

	data, err := os.ReadFile(filepath.Join(dir, "nether.yml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Version: 2")
	assert.Contains(t, string(data), "Populators:")
	assert.Contains(t, string(data), "- pumpkin")
}

func TestFileStoreBackupCreatesCopy(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFileStore(dir)

	require.NoError(t, s.Save(ctx, "overworld", worldconfig.Document{Version: 1}))
	require.NoError(t, s.Backup(ctx, "overworld"))

	matches, err := filepath.Glob(filepath.Join(dir, "overworld.yml.*.backup"))
	require.NoError(t, err)
	assert.Len(t, matches, 1, "Должна появиться одна резервная копия")
}

func TestFileStoreMalformedEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFileStore(dir)

	content := "Version: 2\nPopulators:\n  - pumpkin\n  - {nested: true}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "overworld.yml"), []byte(content), 0o644))

	_, _, err := s.Load(ctx, "overworld")
	require.Error(t, err)
	assert.True(t, errors.IsConfigRead(err), "Нестроковый элемент должен давать CONFIG_READ, получено %v", err)
}

func TestFileStoreUnparsableFile(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFileStore(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "overworld.yml"), []byte("Version: [oops"), 0o644))

	_, _, err := s.Load(ctx, "overworld")
	assert.True(t, errors.IsConfigRead(err))
}

func TestBadgerStoreBackupsAndCompression(t *testing.T) {
	ctx := context.Background()
	s := setupBadgerStore(t, true)

	doc := worldconfig.Document{Version: 1, Populators: []string{"random_spawner"}}
	require.NoError(t, s.Save(ctx, "overworld", doc))
	require.NoError(t, s.Backup(ctx, "overworld"))

	keys, err := s.Backups("overworld")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "worldconfig:overworld:backup:")

	// Резервная копия не видна как отдельный мир
	exists, err := s.Exists(ctx, "overworld:backup")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBadgerStoreClosed(t *testing.T) {
	s, err := OpenBadgerStore("", false)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "Повторное закрытие не должно падать")

	_, _, err = s.Load(context.Background(), "overworld")
	assert.True(t, errors.IsIO(err))
}

func TestRedisStoreBackupKey(t *testing.T) {
	ctx := context.Background()
	s, mr := setupRedisStore(t)

	require.NoError(t, s.Save(ctx, "overworld", worldconfig.Document{Version: 1}))
	require.NoError(t, s.Backup(ctx, "overworld"))

	var backups int
	for _, key := range mr.Keys() {
		if strings.HasPrefix(key, "dungeon:worldconfig:overworld:backup:") {
			backups++
			assert.True(t, mr.TTL(key) > 0, "Резервная копия должна иметь TTL")
		}
	}
	assert.Equal(t, 1, backups)
}

func TestRedisStoreMalformedValue(t *testing.T) {
	ctx := context.Background()
	s, mr := setupRedisStore(t)

	require.NoError(t, mr.Set("dungeon:worldconfig:overworld", `{"Version":2,"Populators":[1,2]}`))

	_, _, err := s.Load(ctx, "overworld")
	assert.True(t, errors.IsConfigRead(err))
}
