package populator

import (
	"github.com/annel0/mmo-dungeon/internal/errors"
)

// Target чанк, к которому применяется правило
type Target struct {
	State  *ChunkState
	Layers int // общее число слоёв подземелья в чанке
	Extent Extent
	Random Random
}

func (t Target) validate() error {
	if t.State == nil {
		return errors.InvalidArgumentf("target has no chunk state")
	}
	if t.Extent == nil {
		return errors.InvalidArgumentf("target has no extent")
	}
	if t.Random == nil {
		return errors.InvalidArgumentf("target has no random source")
	}
	return nil
}

// RunStats счётчики одного прохода правила
type RunStats struct {
	Visited   int // комнаты в диапазоне слоёв
	Skipped   int // уже заняты другим правилом
	Rejected  int // не прошли шанс комнаты
	Claimed   int // заняты этим правилом
	HookCalls int
	Edits     int
}

// Add суммирует статистику
func (s *RunStats) Add(other RunStats) {
	s.Visited += other.Visited
	s.Skipped += other.Skipped
	s.Rejected += other.Rejected
	s.Claimed += other.Claimed
	s.HookCalls += other.HookCalls
	s.Edits += other.Edits
}

// Engine обходит слои и комнаты чанка для одного правила
type Engine struct {
	layout  Layout
	metrics *Metrics
}

// NewEngine создаёт движок. metrics может быть nil.
func NewEngine(layout Layout, metrics *Metrics) *Engine {
	return &Engine{layout: layout, metrics: metrics}
}

// Layout возвращает геометрию движка
func (e *Engine) Layout() Layout {
	return e.layout
}

// Run применяет правило к чанку. Комната, выбранная правилом, помечается занятой
// после итераций независимо от их результата; занятые комнаты пропускаются.
func (e *Engine) Run(rule *Rule, target Target) (RunStats, error) {
	var stats RunStats

	if rule == nil {
		return stats, errors.InvalidArgumentf("rule is nil")
	}
	if err := target.validate(); err != nil {
		return stats, err
	}

	minLayer, maxLayer := e.layerRange(rule, target.Layers)
	coords := target.State.Coords()

	for layer := minLayer; layer <= maxLayer; layer++ {
		roomChance := rule.roomChance.At(layer)
		iterations := rule.iterations.At(layer)

		for room := 0; room < RoomsPerLayer; room++ {
			stats.Visited++

			claimed, err := target.State.RoomFlag(layer, room)
			if err != nil {
				return stats, err
			}
			if claimed {
				stats.Skipped++
				continue
			}

			if target.Random.Float64() >= roomChance {
				stats.Rejected++
				continue
			}

			origin := e.layout.RoomOrigin(coords, layer, room)
			info := Room{
				Layer:       layer,
				Index:       room,
				Origin:      origin,
				FloorOffset: FloorOffset(target.Extent, origin),
			}

			for i := 0; i < iterations; i++ {
				if target.Random.Float64() >= rule.iterationChance.At(i) {
					continue
				}
				stats.HookCalls++
				if rule.decorator.PopulateRoom(target.Extent, target.Random, info) {
					stats.Edits++
				}
			}

			if err := target.State.SetRoomFlag(layer, room, true); err != nil {
				return stats, err
			}
			stats.Claimed++
		}
	}

	e.metrics.observeRun(rule.name, stats)
	return stats, nil
}

// layerRange ограничивает диапазон правила слоями, существующими в чанке
func (e *Engine) layerRange(rule *Rule, layersCount int) (int, int) {
	minLayer, maxLayer := rule.Layers(layersCount)

	limit := layersCount
	if limit > MaxLayers {
		limit = MaxLayers
	}
	if minLayer < 0 {
		minLayer = 0
	}
	if maxLayer > limit-1 {
		maxLayer = limit - 1
	}
	return minLayer, maxLayer
}
