package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/annel0/mmo-dungeon/internal/errors"
	"github.com/annel0/mmo-dungeon/internal/logging"
	"github.com/annel0/mmo-dungeon/internal/worldconfig"
)

// RedisConfig параметры подключения к Redis
type RedisConfig struct {
	Addr      string        // Адрес Redis сервера
	Password  string        // Пароль (пустой если не требуется)
	DB        int           // Номер базы данных
	KeyPrefix string        // Префикс для ключей
	BackupTTL time.Duration // Время жизни резервных копий, 0 бессрочно
}

// DefaultRedisConfig возвращает конфигурацию по умолчанию
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:      "localhost:6379",
		KeyPrefix: "dungeon:worldconfig:",
		BackupTTL: 7 * 24 * time.Hour,
	}
}

// RedisStore хранит документы конфигурации в Redis как JSON-строки
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	backupTTL time.Duration
	now       func() time.Time
}

// NewRedisStore подключается к Redis и проверяет соединение
func NewRedisStore(ctx context.Context, config *RedisConfig) (*RedisStore, error) {
	if config == nil {
		config = DefaultRedisConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.WrapWithCodef(err, errors.CodeIO, "connect to redis at %s", config.Addr)
	}

	logging.GetStorageLogger().Info("🔴 Connected to Redis at %s", config.Addr)
	return &RedisStore{
		client:    client,
		keyPrefix: config.KeyPrefix,
		backupTTL: config.BackupTTL,
		now:       time.Now,
	}, nil
}

// Close закрывает соединение
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(name string) string {
	return s.keyPrefix + name
}

// Load загружает документ
func (s *RedisStore) Load(ctx context.Context, name string) (worldconfig.Document, bool, error) {
	if err := worldconfig.ValidateName(name); err != nil {
		return worldconfig.Document{}, false, err
	}

	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err == redis.Nil {
		return worldconfig.Document{}, false, nil
	}
	if err != nil {
		return worldconfig.Document{}, false, errors.WrapWithCodef(err, errors.CodeIO, "get config %s", name)
	}

	doc, err := worldconfig.UnmarshalJSON(name, data)
	if err != nil {
		return worldconfig.Document{}, false, err
	}
	return doc, true, nil
}

// Save записывает документ
func (s *RedisStore) Save(ctx context.Context, name string, doc worldconfig.Document) error {
	if err := worldconfig.ValidateName(name); err != nil {
		return err
	}

	data, err := worldconfig.MarshalJSON(doc)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(name), data, 0).Err(); err != nil {
		return errors.WrapWithCodef(err, errors.CodeIO, "save config %s", name)
	}
	return nil
}

// Backup копирует значение под ключ <prefix><world>:backup:<время>
func (s *RedisStore) Backup(ctx context.Context, name string) error {
	if err := worldconfig.ValidateName(name); err != nil {
		return err
	}

	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return errors.WrapWithCodef(err, errors.CodeIO, "get config %s", name)
	}

	backupKey := fmt.Sprintf("%s:backup:%d", s.key(name), s.now().UnixNano())
	if err := s.client.Set(ctx, backupKey, data, s.backupTTL).Err(); err != nil {
		return errors.WrapWithCodef(err, errors.CodeIO, "backup config %s", name)
	}
	logging.GetStorageLogger().Info("💾 Резервная копия конфигурации %s: %s", name, backupKey)
	return nil
}

// Exists проверяет наличие документа
func (s *RedisStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := worldconfig.ValidateName(name); err != nil {
		return false, err
	}

	n, err := s.client.Exists(ctx, s.key(name)).Result()
	if err != nil {
		return false, errors.WrapWithCodef(err, errors.CodeIO, "check config %s", name)
	}
	return n > 0, nil
}

// Delete удаляет документ
func (s *RedisStore) Delete(ctx context.Context, name string) (bool, error) {
	if err := worldconfig.ValidateName(name); err != nil {
		return false, err
	}

	n, err := s.client.Del(ctx, s.key(name)).Result()
	if err != nil {
		return false, errors.WrapWithCodef(err, errors.CodeIO, "delete config %s", name)
	}
	return n > 0, nil
}

var _ worldconfig.Store = (*RedisStore)(nil)
