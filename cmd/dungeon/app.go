package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/mmo-dungeon/internal/config"
	"github.com/annel0/mmo-dungeon/internal/errors"
	"github.com/annel0/mmo-dungeon/internal/logging"
	"github.com/annel0/mmo-dungeon/internal/observability"
	"github.com/annel0/mmo-dungeon/internal/populator"
	"github.com/annel0/mmo-dungeon/internal/populator/decoration"
	"github.com/annel0/mmo-dungeon/internal/storage"
	"github.com/annel0/mmo-dungeon/internal/world"
	"github.com/annel0/mmo-dungeon/internal/worldconfig"
)

// app связывает компоненты по конфигурации
type app struct {
	cfg       *config.Config
	metrics   *prometheus.Registry
	registry  *populator.Registry
	store     worldconfig.Store
	configs   *worldconfig.Manager
	generator *world.Generator

	closers []func(context.Context) error
}

func newApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.seed != nil {
		cfg.Generator.Seed = *opts.seed
	}

	logging.Configure(cfg.Logging.Dir,
		logging.ParseLevel(cfg.Logging.ConsoleLevel),
		logging.ParseLevel(cfg.Logging.FileLevel))
	if err := logging.InitDefaultLogger("dungeon"); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeIO, "init logger")
	}

	a := &app{
		cfg:      cfg,
		metrics:  prometheus.NewRegistry(),
		registry: decoration.NewDefaultRegistry(),
	}
	a.closers = append(a.closers, func(context.Context) error {
		logging.CloseDefaultLogger()
		return logging.GetLoggerManager().CloseAll()
	})

	shutdown, err := observability.InitTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, shutdown)

	store, closeStore, err := openStore(ctx, cfg.Storage)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.store = store
	a.closers = append(a.closers, closeStore)

	populatorMetrics := populator.NewMetrics(a.metrics)
	a.configs = worldconfig.NewManager(store, a.registry,
		worldconfig.WithMetrics(worldconfig.NewMetrics(a.metrics)))

	layout := populator.Layout{BaseY: cfg.Generator.BaseY, LayerHeight: populator.DefaultLayerHeight}
	engine := populator.NewEngine(layout, populatorMetrics)
	pipeline := populator.NewPipeline(a.registry, engine, populatorMetrics)

	genCfg := world.DefaultGeneratorConfig(cfg.Generator.Seed)
	genCfg.MinLayers = cfg.Generator.MinLayers
	genCfg.MaxLayers = cfg.Generator.MaxLayers
	genCfg.Layout = layout
	a.generator = world.NewGenerator(genCfg, pipeline, a.configs)

	addr := opts.metricsAddr
	if addr == "" {
		if port := cfg.Metrics.GetMetricsPort(); port > 0 {
			addr = fmt.Sprintf(":%d", port)
		}
	}
	if addr != "" {
		ms, err := observability.StartMetricsServer(addr, a.metrics)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, ms.Stop)
	}

	return a, nil
}

// openStore открывает хранилище конфигураций миров выбранного бэкенда
func openStore(ctx context.Context, cfg config.StorageConfig) (worldconfig.Store, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	switch backend := cfg.GetBackend(); backend {
	case config.BackendMemory:
		return storage.NewMemoryStore(), noop, nil
	case config.BackendFile:
		return storage.NewFileStore(cfg.Dir), noop, nil
	case config.BackendBadger:
		s, err := storage.OpenBadgerStore(cfg.BadgerPath, cfg.BadgerCompress)
		if err != nil {
			return nil, nil, err
		}
		return s, func(context.Context) error { return s.Close() }, nil
	case config.BackendRedis:
		s, err := storage.NewRedisStore(ctx, &storage.RedisConfig{
			Addr:      cfg.GetRedisAddr(),
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisPrefix,
			BackupTTL: storage.DefaultRedisConfig().BackupTTL,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, func(context.Context) error { return s.Close() }, nil
	default:
		return nil, nil, errors.InvalidArgumentf("unknown storage backend %q", backend)
	}
}

// Close освобождает ресурсы в обратном порядке
func (a *app) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			logging.Warn("Ошибка при завершении: %v", err)
		}
	}
	a.closers = nil
}
