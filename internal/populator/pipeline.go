package populator

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/annel0/mmo-dungeon/internal/errors"
	"github.com/annel0/mmo-dungeon/internal/logging"
)

// Pipeline применяет включённые правила к чанку, разделяя между ними один ChunkState
type Pipeline struct {
	registry *Registry
	engine   *Engine
	metrics  *Metrics
	logger   *logging.Logger
	tracer   trace.Tracer
}

// NewPipeline создаёт конвейер. metrics может быть nil.
func NewPipeline(registry *Registry, engine *Engine, metrics *Metrics) *Pipeline {
	return &Pipeline{
		registry: registry,
		engine:   engine,
		metrics:  metrics,
		logger:   logging.GetPopulatorLogger(),
		tracer:   otel.Tracer("github.com/annel0/mmo-dungeon/internal/populator"),
	}
}

// Populate запускает правила enabled по порядку. Чанк без сгенерированного подземелья
// пропускается. Имена без правила (встроенные хоста) игнорируются.
func (p *Pipeline) Populate(ctx context.Context, target Target, enabled []string) (RunStats, error) {
	var total RunStats

	if err := target.validate(); err != nil {
		return total, err
	}

	coords := target.State.Coords()
	_, span := p.tracer.Start(ctx, "populator.Populate", trace.WithAttributes(
		attribute.Int("chunk.x", coords.X),
		attribute.Int("chunk.z", coords.Z),
		attribute.Int("chunk.layers", target.Layers),
	))
	defer span.End()

	if !target.State.Generated() {
		p.logger.Trace("Чанк (%d,%d) без подземелья, декорирование пропущено", coords.X, coords.Z)
		return total, nil
	}

	for _, name := range enabled {
		rule, ok := p.registry.Rule(name)
		if !ok {
			continue
		}

		stats, err := p.engine.Run(rule, target)
		total.Add(stats)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return total, errors.Wrapf(err, "populator %s on chunk (%d,%d)", name, coords.X, coords.Z)
		}
		p.logger.Trace("Правило %s на чанке (%d,%d): занято %d, правок %d",
			name, coords.X, coords.Z, stats.Claimed, stats.Edits)
	}

	span.SetAttributes(
		attribute.Int("rooms.claimed", total.Claimed),
		attribute.Int("hook.calls", total.HookCalls),
		attribute.Int("edits", total.Edits),
	)
	p.metrics.observeChunk()
	return total, nil
}
