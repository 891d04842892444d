package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/annel0/mmo-dungeon/internal/errors"
	"github.com/annel0/mmo-dungeon/internal/logging"
	"github.com/annel0/mmo-dungeon/internal/worldconfig"
)

const (
	fileExt         = ".yml"
	backupTimestamp = "20060102-150405.000000000"
)

// FileStore хранит по одному YAML-файлу на мир: <dir>/<world>.yml
type FileStore struct {
	dir string
	now func() time.Time
}

// NewFileStore создаёт файловое хранилище. Каталог создаётся при первой записи.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, now: time.Now}
}

// Dir возвращает каталог хранилища
func (s *FileStore) Dir() string {
	return s.dir
}

// Path возвращает путь к файлу мира
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name+fileExt)
}

// Load читает и разбирает YAML-документ
func (s *FileStore) Load(ctx context.Context, name string) (worldconfig.Document, bool, error) {
	if err := worldconfig.ValidateName(name); err != nil {
		return worldconfig.Document{}, false, err
	}

	path := s.Path(name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return worldconfig.Document{}, false, nil
	}
	if err != nil {
		return worldconfig.Document{}, false, errors.WrapWithCodef(err, errors.CodeIO, "read %s", path)
	}

	var raw worldconfig.RawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return worldconfig.Document{}, false, errors.WrapWithCodef(err, errors.CodeConfigRead, "parse %s", path).
			WithMeta("world", name)
	}

	doc, err := raw.Decode(name)
	if err != nil {
		return worldconfig.Document{}, false, err
	}
	return doc, true, nil
}

// Save записывает документ атомарно: временный файл и переименование
func (s *FileStore) Save(ctx context.Context, name string, doc worldconfig.Document) error {
	if err := worldconfig.ValidateName(name); err != nil {
		return err
	}
	if doc.Populators == nil {
		doc.Populators = []string{}
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInternal, "encode config document")
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.WrapWithCodef(err, errors.CodeIO, "create %s", s.dir)
	}

	tmp, err := os.CreateTemp(s.dir, name+fileExt+".*.tmp")
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeIO, "create temp file in %s", s.dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.WrapWithCodef(err, errors.CodeIO, "write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.WrapWithCodef(err, errors.CodeIO, "close %s", tmpName)
	}
	if err := os.Rename(tmpName, s.Path(name)); err != nil {
		os.Remove(tmpName)
		return errors.WrapWithCodef(err, errors.CodeIO, "replace %s", s.Path(name))
	}
	return nil
}

// Backup копирует файл мира в <world>.yml.<время>.backup
func (s *FileStore) Backup(ctx context.Context, name string) error {
	if err := worldconfig.ValidateName(name); err != nil {
		return err
	}

	path := s.Path(name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeIO, "read %s", path)
	}

	backup := fmt.Sprintf("%s.%s.backup", path, s.now().Format(backupTimestamp))
	if err := os.WriteFile(backup, data, 0o644); err != nil {
		return errors.WrapWithCodef(err, errors.CodeIO, "write backup %s", backup)
	}
	logging.GetStorageLogger().Info("💾 Резервная копия конфигурации %s: %s", name, backup)
	return nil
}

// Exists проверяет наличие файла мира
func (s *FileStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := worldconfig.ValidateName(name); err != nil {
		return false, err
	}

	_, err := os.Stat(s.Path(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.WrapWithCodef(err, errors.CodeIO, "stat %s", s.Path(name))
	}
	return true, nil
}

// Delete удаляет файл мира. Резервные копии остаются.
func (s *FileStore) Delete(ctx context.Context, name string) (bool, error) {
	if err := worldconfig.ValidateName(name); err != nil {
		return false, err
	}

	err := os.Remove(s.Path(name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.WrapWithCodef(err, errors.CodeIO, "remove %s", s.Path(name))
	}
	return true, nil
}

var _ worldconfig.Store = (*FileStore)(nil)
