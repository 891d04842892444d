package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"

	"github.com/annel0/mmo-dungeon/internal/errors"
	"github.com/annel0/mmo-dungeon/internal/logging"
	"github.com/annel0/mmo-dungeon/internal/worldconfig"
)

const (
	badgerKeyPrefix = "worldconfig:"

	// Первый байт значения определяет кодирование
	encodingRaw  byte = 0
	encodingZstd byte = 1
)

// BadgerStore хранит документы конфигурации в BadgerDB.
// Значение: байт кодирования и JSON документа, при необходимости сжатый zstd.
type BadgerStore struct {
	db       *badger.DB
	compress bool
	encoder  *zstd.Encoder
	decoder  *zstd.Decoder
	now      func() time.Time

	mutex   sync.RWMutex
	isReady bool
}

// OpenBadgerStore открывает BadgerDB по пути path. При пустом пути база в памяти.
func OpenBadgerStore(path string, compress bool) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIO, "open badger at %q", path)
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "create zstd encoder")
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		db.Close()
		return nil, errors.WrapWithCode(err, errors.CodeInternal, "create zstd decoder")
	}

	if path == "" {
		logging.GetStorageLogger().Debug("BadgerDB открыта в памяти")
	} else {
		logging.GetStorageLogger().Debug("BadgerDB открыта: %s (zstd=%v)", path, compress)
	}

	return &BadgerStore{
		db:       db,
		compress: compress,
		encoder:  encoder,
		decoder:  decoder,
		now:      time.Now,
		isReady:  true,
	}, nil
}

// Close закрывает базу
func (s *BadgerStore) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isReady {
		return nil
	}

	s.isReady = false
	s.encoder.Close()
	s.decoder.Close()
	return s.db.Close()
}

func badgerKey(name string) []byte {
	return []byte(badgerKeyPrefix + name)
}

func badgerBackupPrefix(name string) []byte {
	return []byte(badgerKeyPrefix + name + ":backup:")
}

func (s *BadgerStore) encode(doc worldconfig.Document) ([]byte, error) {
	data, err := worldconfig.MarshalJSON(doc)
	if err != nil {
		return nil, err
	}
	if !s.compress {
		return append([]byte{encodingRaw}, data...), nil
	}
	return s.encoder.EncodeAll(data, []byte{encodingZstd}), nil
}

func (s *BadgerStore) decode(name string, value []byte) (worldconfig.Document, error) {
	if len(value) == 0 {
		return worldconfig.Document{}, errors.ConfigReadf("config %s: empty value", name)
	}

	payload := value[1:]
	switch value[0] {
	case encodingRaw:
	case encodingZstd:
		data, err := s.decoder.DecodeAll(payload, nil)
		if err != nil {
			return worldconfig.Document{}, errors.WrapWithCodef(err, errors.CodeConfigRead, "decompress config %s", name)
		}
		payload = data
	default:
		return worldconfig.Document{}, errors.ConfigReadf("config %s: unknown encoding %d", name, value[0])
	}
	return worldconfig.UnmarshalJSON(name, payload)
}

func (s *BadgerStore) ready() error {
	if !s.isReady {
		return errors.IOf("badger store is closed")
	}
	return nil
}

func (s *BadgerStore) get(txn *badger.Txn, name string) ([]byte, bool, error) {
	item, err := txn.Get(badgerKey(name))
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.WrapWithCodef(err, errors.CodeIO, "get config %s", name)
	}
	value, err := item.ValueCopy(nil)
	if err != nil {
		return nil, false, errors.WrapWithCodef(err, errors.CodeIO, "read config %s", name)
	}
	return value, true, nil
}

// Load загружает документ
func (s *BadgerStore) Load(ctx context.Context, name string) (worldconfig.Document, bool, error) {
	if err := worldconfig.ValidateName(name); err != nil {
		return worldconfig.Document{}, false, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if err := s.ready(); err != nil {
		return worldconfig.Document{}, false, err
	}

	var (
		value []byte
		found bool
	)
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		value, found, err = s.get(txn, name)
		return err
	})
	if err != nil || !found {
		return worldconfig.Document{}, false, err
	}

	doc, err := s.decode(name, value)
	if err != nil {
		return worldconfig.Document{}, false, err
	}
	return doc, true, nil
}

// Save записывает документ
func (s *BadgerStore) Save(ctx context.Context, name string, doc worldconfig.Document) error {
	if err := worldconfig.ValidateName(name); err != nil {
		return err
	}

	value, err := s.encode(doc)
	if err != nil {
		return err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if err := s.ready(); err != nil {
		return err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(name), value)
	})
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeIO, "save config %s", name)
	}
	return nil
}

// Backup копирует текущее значение под ключ <world>:backup:<время>
func (s *BadgerStore) Backup(ctx context.Context, name string) error {
	if err := worldconfig.ValidateName(name); err != nil {
		return err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if err := s.ready(); err != nil {
		return err
	}

	key := append(badgerBackupPrefix(name), []byte(fmt.Sprintf("%d", s.now().UnixNano()))...)
	var found bool
	err := s.db.Update(func(txn *badger.Txn) error {
		value, ok, err := s.get(txn, name)
		if err != nil || !ok {
			return err
		}
		found = true
		return txn.Set(key, value)
	})
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeIO, "backup config %s", name)
	}
	if !found {
		return nil
	}
	logging.GetStorageLogger().Info("💾 Резервная копия конфигурации %s: %s", name, key)
	return nil
}

// Backups возвращает ключи резервных копий мира
func (s *BadgerStore) Backups(name string) ([]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if err := s.ready(); err != nil {
		return nil, err
	}

	prefix := badgerBackupPrefix(name)
	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIO, "list backups of %s", name)
	}
	return keys, nil
}

// Exists проверяет наличие документа
func (s *BadgerStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := worldconfig.ValidateName(name); err != nil {
		return false, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if err := s.ready(); err != nil {
		return false, err
	}

	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(badgerKey(name))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return errors.WrapWithCodef(err, errors.CodeIO, "get config %s", name)
		}
		found = true
		return nil
	})
	return found, err
}

// Delete удаляет документ. Резервные копии остаются.
func (s *BadgerStore) Delete(ctx context.Context, name string) (bool, error) {
	if err := worldconfig.ValidateName(name); err != nil {
		return false, err
	}

	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if err := s.ready(); err != nil {
		return false, err
	}

	var found bool
	err := s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(badgerKey(name))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return txn.Delete(badgerKey(name))
	})
	if err != nil {
		return false, errors.WrapWithCodef(err, errors.CodeIO, "delete config %s", name)
	}
	return found, nil
}

var _ worldconfig.Store = (*BadgerStore)(nil)
