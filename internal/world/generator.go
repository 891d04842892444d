package world

import (
	"context"
	"math/rand"
	"sync"

	"github.com/annel0/mmo-dungeon/internal/errors"
	"github.com/annel0/mmo-dungeon/internal/logging"
	"github.com/annel0/mmo-dungeon/internal/populator"
	"github.com/annel0/mmo-dungeon/internal/util"
	"github.com/annel0/mmo-dungeon/internal/vec"
	"github.com/annel0/mmo-dungeon/internal/world/block"
	"github.com/annel0/mmo-dungeon/internal/worldconfig"
)

// Константы генерации комнат
const (
	RaisedFloorChance = 0.3  // Доля комнат с приподнятым гравийным полом
	DefaultNoiseScale = 0.11 // Масштаб шума числа слоёв
	capHeight         = 4    // Камень над верхним слоем
)

// GeneratorConfig параметры генератора подземелий
type GeneratorConfig struct {
	Seed       int64
	MinLayers  int
	MaxLayers  int
	NoiseScale float64
	Layout     populator.Layout
}

// DefaultGeneratorConfig параметры по умолчанию
func DefaultGeneratorConfig(seed int64) GeneratorConfig {
	return GeneratorConfig{
		Seed:       seed,
		MinLayers:  1,
		MaxLayers:  populator.MaxLayers,
		NoiseScale: DefaultNoiseScale,
		Layout:     populator.DefaultLayout(),
	}
}

// GeneratedChunk результат генерации одного чанка
type GeneratedChunk struct {
	Chunk  *Chunk
	State  *populator.ChunkState
	Layers int
	Stats  populator.RunStats
}

// Generator строит подземелье в чанке и декорирует его правилами мира
type Generator struct {
	config   GeneratorConfig
	noise    *util.Noise
	pipeline *populator.Pipeline
	configs  *worldconfig.Manager
	logger   *logging.Logger
}

// NewGenerator создаёт генератор. Число слоёв ограничивается [1, 7].
func NewGenerator(config GeneratorConfig, pipeline *populator.Pipeline, configs *worldconfig.Manager) *Generator {
	if config.MinLayers < 1 {
		config.MinLayers = 1
	}
	if config.MaxLayers > populator.MaxLayers || config.MaxLayers < 1 {
		config.MaxLayers = populator.MaxLayers
	}
	if config.MinLayers > config.MaxLayers {
		config.MinLayers = config.MaxLayers
	}
	if config.NoiseScale <= 0 {
		config.NoiseScale = DefaultNoiseScale
	}
	if config.Layout.LayerHeight <= 0 {
		config.Layout = populator.DefaultLayout()
	}

	return &Generator{
		config:   config,
		noise:    util.NewNoise(config.Seed),
		pipeline: pipeline,
		configs:  configs,
		logger:   logging.GetGeneratorLogger(),
	}
}

// ChunkHeight высота столба, вмещающая все слои
func (g *Generator) ChunkHeight() int {
	return g.config.Layout.LayerY(g.config.MaxLayers) + capHeight
}

// LayersAt возвращает число слоёв подземелья в чанке
func (g *Generator) LayersAt(coords vec.Vec2) int {
	// Сдвиг на полклетки: в целых точках шум Перлина равен нулю
	x := (float64(coords.X) + 0.5) * g.config.NoiseScale
	z := (float64(coords.Z) + 0.5) * g.config.NoiseScale
	return g.noise.Levels(x, z, g.config.MinLayers, g.config.MaxLayers)
}

// chunkRand локальный генератор случайных чисел, детерминированный по сиду и координатам
func (g *Generator) chunkRand(coords vec.Vec2) *rand.Rand {
	chunkSeed := g.config.Seed + int64(coords.X*31) + int64(coords.Z*17)
	return rand.New(rand.NewSource(chunkSeed))
}

// GenerateChunk строит чанк и применяет включённые в мире правила.
// Ошибка конфигурации мира прерывает генерацию чанка.
func (g *Generator) GenerateChunk(ctx context.Context, worldName string, coords vec.Vec2) (*GeneratedChunk, error) {
	enabled, err := g.configs.Of(worldName).Enabled(ctx)
	if err != nil {
		g.logger.Error("Конфигурация мира %s недоступна: %v", worldName, err)
		return nil, errors.Wrapf(err, "generate chunk (%d,%d) of world %s", coords.X, coords.Z, worldName)
	}

	rng := g.chunkRand(coords)
	layers := g.LayersAt(coords)

	chunk := NewChunk(coords, g.ChunkHeight())
	chunk.Fill(0, chunk.Height-1, block.StoneBlockID)

	state := populator.NewChunkState(coords)
	for layer := 0; layer < layers; layer++ {
		for room := 0; room < populator.RoomsPerLayer; room++ {
			g.carveRoom(chunk, g.config.Layout.RoomOrigin(coords, layer, room), rng)
		}
		if err := state.SetLayerFlag(layer, true); err != nil {
			return nil, err
		}
	}
	state.SetGenerated(true)
	chunk.ClearChanges()

	stats, err := g.pipeline.Populate(ctx, populator.Target{
		State:  state,
		Layers: layers,
		Extent: chunk,
		Random: rng,
	}, enabled)
	if err != nil {
		return nil, errors.Wrapf(err, "populate chunk (%d,%d) of world %s", coords.X, coords.Z, worldName)
	}

	g.logger.Debug("Чанк (%d,%d) мира %s: слоёв %d, занято комнат %d, правок %d",
		coords.X, coords.Z, worldName, layers, stats.Claimed, stats.Edits)

	return &GeneratedChunk{Chunk: chunk, State: state, Layers: layers, Stats: stats}, nil
}

// carveRoom вырезает комнату 8x8: пол, стены высотой пять блоков и потолок
func (g *Generator) carveRoom(chunk *Chunk, origin vec.Vec3, rng *rand.Rand) {
	const last = populator.RoomSize - 1
	height := g.config.Layout.LayerHeight

	for dx := 0; dx <= last; dx++ {
		for dz := 0; dz <= last; dz++ {
			chunk.SetBlock(origin.Offset(dx, 0, dz), block.StoneBrickBlockID)
			chunk.SetBlock(origin.Offset(dx, height, dz), block.StoneBrickBlockID)

			wall := dx == 0 || dx == last || dz == 0 || dz == last
			for dy := 1; dy < height; dy++ {
				if wall {
					chunk.SetBlock(origin.Offset(dx, dy, dz), wallBlock(rng))
				} else {
					chunk.SetBlock(origin.Offset(dx, dy, dz), block.AirBlockID)
				}
			}
		}
	}

	if rng.Float64() < RaisedFloorChance {
		for dx := 1; dx < last; dx++ {
			for dz := 1; dz < last; dz++ {
				chunk.SetBlock(origin.Offset(dx, 1, dz), block.GravelBlockID)
			}
		}
	}
}

func wallBlock(rng *rand.Rand) block.BlockID {
	switch v := rng.Float64(); {
	case v < 0.55:
		return block.StoneBrickBlockID
	case v < 0.70:
		return block.MossyStoneBrickBlockID
	case v < 0.75:
		return block.CrackedStoneBrickBlockID
	case v < 0.90:
		return block.CobblestoneBlockID
	default:
		return block.MossyCobblestoneBlockID
	}
}

// RegionStats итоги генерации области
type RegionStats struct {
	Chunks int
	Layers int
	Stats  populator.RunStats
}

// GenerateRegion генерирует чанки прямоугольника [from, to] в workers горутинах.
// onChunk вызывается последовательно для каждого готового чанка и может быть nil.
// Первая ошибка останавливает выдачу новых чанков.
func (g *Generator) GenerateRegion(parent context.Context, worldName string, from, to vec.Vec2, workers int, onChunk func(*GeneratedChunk)) (RegionStats, error) {
	var total RegionStats

	if from.X > to.X {
		from.X, to.X = to.X, from.X
	}
	if from.Z > to.Z {
		from.Z, to.Z = to.Z, from.Z
	}
	if workers < 1 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	jobs := make(chan vec.Vec2)
	results := make(chan *GeneratedChunk)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for coords := range jobs {
				res, err := g.GenerateChunk(ctx, worldName, coords)
				if err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					continue
				}
				select {
				case results <- res:
				case <-ctx.Done():
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for x := from.X; x <= to.X; x++ {
			for z := from.Z; z <= to.Z; z++ {
				select {
				case jobs <- vec.Vec2{X: x, Z: z}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		total.Chunks++
		total.Layers += res.Layers
		total.Stats.Add(res.Stats)
		if onChunk != nil {
			onChunk(res)
		}
	}

	if firstErr != nil {
		return total, firstErr
	}
	return total, parent.Err()
}
