package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"

	"github.com/annel0/mmo-dungeon/internal/errors"
)

// Config корневая структура конфигурации приложения.
type Config struct {
	Storage   StorageConfig   `yaml:"storage" toml:"storage"`
	Generator GeneratorConfig `yaml:"generator" toml:"generator"`
	Metrics   MetricsConfig   `yaml:"metrics" toml:"metrics"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// Бэкенды хранилища конфигураций миров
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

type StorageConfig struct {
	Backend        string `yaml:"backend" toml:"backend"`
	Dir            string `yaml:"dir" toml:"dir"`
	BadgerPath     string `yaml:"badger_path" toml:"badger_path"`
	BadgerCompress bool   `yaml:"badger_compress" toml:"badger_compress"`
	RedisAddr      string `yaml:"redis_addr" toml:"redis_addr"`
	RedisPassword  string `yaml:"redis_password" toml:"redis_password"`
	RedisDB        int    `yaml:"redis_db" toml:"redis_db"`
	RedisPrefix    string `yaml:"redis_prefix" toml:"redis_prefix"`
}

type GeneratorConfig struct {
	Seed      int64 `yaml:"seed" toml:"seed"`
	MinLayers int   `yaml:"min_layers" toml:"min_layers"`
	MaxLayers int   `yaml:"max_layers" toml:"max_layers"`
	BaseY     int   `yaml:"base_y" toml:"base_y"`
}

type MetricsConfig struct {
	Port int `yaml:"port" toml:"port"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled" toml:"enabled"`
	ServiceName string `yaml:"service_name" toml:"service_name"`
	Endpoint    string `yaml:"endpoint" toml:"endpoint"`
}

type LoggingConfig struct {
	Dir          string `yaml:"dir" toml:"dir"`
	ConsoleLevel string `yaml:"console_level" toml:"console_level"`
	FileLevel    string `yaml:"file_level" toml:"file_level"`
}

// Defaults конфигурация без файла
func Defaults() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:     BackendFile,
			Dir:         "worlds",
			BadgerPath:  "data/worldconfig",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "dungeon:worldconfig:",
		},
		Generator: GeneratorConfig{
			Seed:      0,
			MinLayers: 1,
			MaxLayers: 7,
			BaseY:     8,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "mmo-dungeon",
		},
		Logging: LoggingConfig{
			ConsoleLevel: "INFO",
			FileLevel:    "DEBUG",
		},
	}
}

// GetMetricsPort возвращает порт метрик: config -> env -> 0 (выключено)
func (m *MetricsConfig) GetMetricsPort() int {
	return getPortWithEnvFallback(m.Port, "DUNGEON_METRICS_PORT", 0)
}

// GetBackend возвращает бэкенд хранилища с поддержкой DUNGEON_STORAGE_BACKEND
func (s *StorageConfig) GetBackend() string {
	if env := os.Getenv("DUNGEON_STORAGE_BACKEND"); env != "" {
		return strings.ToLower(env)
	}
	if s.Backend == "" {
		return BackendFile
	}
	return strings.ToLower(s.Backend)
}

// GetRedisAddr возвращает адрес Redis с поддержкой DUNGEON_REDIS_ADDR
func (s *StorageConfig) GetRedisAddr() string {
	if env := os.Getenv("DUNGEON_REDIS_ADDR"); env != "" {
		return env
	}
	return s.RedisAddr
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	// Если порт задан в конфиге и больше 0, используем его
	if configPort > 0 {
		return configPort
	}

	// Пробуем прочитать из environment variable
	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	switch c.Storage.GetBackend() {
	case BackendMemory, BackendFile, BackendBadger, BackendRedis:
	default:
		return errors.InvalidArgumentf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Generator.MinLayers < 1 || c.Generator.MaxLayers > 7 || c.Generator.MinLayers > c.Generator.MaxLayers {
		return errors.InvalidArgumentf("generator layers must satisfy 1 <= min (%d) <= max (%d) <= 7",
			c.Generator.MinLayers, c.Generator.MaxLayers)
	}
	return nil
}

// applyDefaults заполняет незаданные поля значениями Defaults()
func (c *Config) applyDefaults() {
	d := Defaults()

	setString := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	setInt := func(dst *int, def int) {
		if *dst == 0 {
			*dst = def
		}
	}

	setString(&c.Storage.Backend, d.Storage.Backend)
	setString(&c.Storage.Dir, d.Storage.Dir)
	setString(&c.Storage.BadgerPath, d.Storage.BadgerPath)
	setString(&c.Storage.RedisAddr, d.Storage.RedisAddr)
	setString(&c.Storage.RedisPrefix, d.Storage.RedisPrefix)
	setInt(&c.Generator.MinLayers, d.Generator.MinLayers)
	setInt(&c.Generator.MaxLayers, d.Generator.MaxLayers)
	setInt(&c.Generator.BaseY, d.Generator.BaseY)
	setString(&c.Telemetry.ServiceName, d.Telemetry.ServiceName)
	setString(&c.Logging.ConsoleLevel, d.Logging.ConsoleLevel)
	setString(&c.Logging.FileLevel, d.Logging.FileLevel)
}

// Load читает файл конфигурации: YAML, либо TOML для расширения .toml.
// Если path == "", используется DUNGEON_CONFIG; без него возвращаются значения по умолчанию.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("DUNGEON_CONFIG")
		if path == "" {
			return Defaults(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeIO, "read config %s", path)
	}

	cfg := &Config{}
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeConfigRead, "parse config %s", path)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
