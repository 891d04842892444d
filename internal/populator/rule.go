package populator

import (
	"math"

	"github.com/annel0/mmo-dungeon/internal/errors"
	"github.com/annel0/mmo-dungeon/internal/vec"
	"github.com/annel0/mmo-dungeon/internal/world/block"
)

// Extent даёт доступ к блокам мира в абсолютных координатах
type Extent interface {
	Block(pos vec.Vec3) block.BlockID
	SetBlock(pos vec.Vec3, id block.BlockID)
}

// Random источник случайных чисел. *rand.Rand удовлетворяет интерфейсу.
// Не обязан быть потокобезопасным.
type Random interface {
	Float64() float64
	Intn(n int) int
}

// Room описывает комнату, переданную декоратору
type Room struct {
	Layer       int
	Index       int
	Origin      vec.Vec3 // минимальный угол комнаты, пол на Origin.Y
	FloorOffset int      // 1, если пол комнаты приподнят
}

// Decorator изменяет блоки комнаты. Возвращает true, если что-то было изменено.
type Decorator interface {
	PopulateRoom(ext Extent, r Random, room Room) bool
}

// DecoratorFunc адаптер функции к Decorator
type DecoratorFunc func(ext Extent, r Random, room Room) bool

// PopulateRoom вызывает f
func (f DecoratorFunc) PopulateRoom(ext Extent, r Random, room Room) bool {
	return f(ext, r, room)
}

// LayerFunc по общему числу слоёв возвращает включительный диапазон обрабатываемых слоёв
type LayerFunc func(layersCount int) (minLayer, maxLayer int)

// AllLayers обрабатывает все доступные слои
func AllLayers(layersCount int) (int, int) {
	return 0, layersCount - 1
}

// FixedLayers возвращает LayerFunc с фиксированным диапазоном
func FixedLayers(minLayer, maxLayer int) LayerFunc {
	return func(int) (int, int) {
		return minLayer, maxLayer
	}
}

// Chance вероятность с линейным изменением по шагу (слою или итерации)
type Chance struct {
	Base  float64
	Delta float64
}

// At возвращает вероятность на шаге step, ограниченную [0, 1]
func (c Chance) At(step int) float64 {
	return clamp01(c.Base + c.Delta*float64(step))
}

// Iterations число итераций с линейным изменением по слою
type Iterations struct {
	Base  float64
	Delta float64
}

// At возвращает число итераций для слоя, не меньше нуля
func (i Iterations) At(layer int) int {
	n := math.Round(i.Base + i.Delta*float64(layer))
	if n < 0 {
		return 0
	}
	return int(n)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rule правило декорирования комнат. Неизменяемо после создания.
type Rule struct {
	name            string
	decorator       Decorator
	layers          LayerFunc
	roomChance      Chance
	iterations      Iterations
	iterationChance Chance
}

// RuleOption настраивает Rule при создании
type RuleOption func(*Rule)

// WithLayers задаёт функцию выбора слоёв
func WithLayers(fn LayerFunc) RuleOption {
	return func(r *Rule) {
		if fn != nil {
			r.layers = fn
		}
	}
}

// WithFixedLayers ограничивает правило диапазоном слоёв
func WithFixedLayers(minLayer, maxLayer int) RuleOption {
	return WithLayers(FixedLayers(minLayer, maxLayer))
}

// WithRoomChance задаёт шанс выбора комнаты и его изменение на слой
func WithRoomChance(base, perLayer float64) RuleOption {
	return func(r *Rule) {
		r.roomChance = Chance{Base: base, Delta: perLayer}
	}
}

// WithRoomIterations задаёт число итераций в комнате и его изменение на слой
func WithRoomIterations(base, perLayer float64) RuleOption {
	return func(r *Rule) {
		r.iterations = Iterations{Base: base, Delta: perLayer}
	}
}

// WithIterationChance задаёт шанс срабатывания итерации и его изменение на итерацию
func WithIterationChance(base, perIteration float64) RuleOption {
	return func(r *Rule) {
		r.iterationChance = Chance{Base: base, Delta: perIteration}
	}
}

// NewRule создаёт правило. По умолчанию: все слои, каждая комната, одна итерация с шансом 1.
func NewRule(name string, decorator Decorator, opts ...RuleOption) (*Rule, error) {
	if name == "" {
		return nil, errors.InvalidArgumentf("rule name is empty")
	}
	if decorator == nil {
		return nil, errors.InvalidArgumentf("rule %s has no decorator", name)
	}

	r := &Rule{
		name:            name,
		decorator:       decorator,
		layers:          AllLayers,
		roomChance:      Chance{Base: 1},
		iterations:      Iterations{Base: 1},
		iterationChance: Chance{Base: 1},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// MustNewRule как NewRule, но паникует при ошибке. Для правил, объявленных в коде.
func MustNewRule(name string, decorator Decorator, opts ...RuleOption) *Rule {
	r, err := NewRule(name, decorator, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Name возвращает имя правила
func (r *Rule) Name() string { return r.name }

// Layers применяет функцию выбора слоёв
func (r *Rule) Layers(layersCount int) (int, int) { return r.layers(layersCount) }

// RoomChance возвращает параметры шанса комнаты
func (r *Rule) RoomChance() Chance { return r.roomChance }

// Iterations возвращает параметры числа итераций
func (r *Rule) Iterations() Iterations { return r.iterations }

// IterationChance возвращает параметры шанса итерации
func (r *Rule) IterationChance() Chance { return r.iterationChance }

// Decorator возвращает декоратор правила
func (r *Rule) Decorator() Decorator { return r.decorator }
