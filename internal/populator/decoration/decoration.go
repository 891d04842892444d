// Package decoration содержит стандартные правила декорирования комнат подземелья.
package decoration

import (
	"github.com/annel0/mmo-dungeon/internal/populator"
)

// Имена правил
const (
	PumpkinName         = "pumpkin"
	LavaInWallName      = "lava_in_wall"
	SilverfishBlockName = "silverfish_block"
	SimpleSpawnerName   = "simple_spawner"
)

// Встроенные имена хоста: допустимы в конфигурации, но реализуются вне этого модуля
const (
	ForestName = "forest"
	AnimalName = "animal"
)

// Rules возвращает стандартные правила в порядке применения
func Rules() []*populator.Rule {
	return []*populator.Rule{
		NewLavaInWall(),
		NewSilverfishBlock(),
		NewSimpleSpawner(),
		NewPumpkin(),
	}
}

// Register регистрирует стандартные правила
func Register(reg *populator.Registry) error {
	for _, rule := range Rules() {
		if err := reg.Register(rule); err != nil {
			return err
		}
	}
	return nil
}

// NewDefaultRegistry создаёт регистр со стандартными правилами и встроенными именами
func NewDefaultRegistry() *populator.Registry {
	reg := populator.NewRegistry(ForestName, AnimalName)
	if err := Register(reg); err != nil {
		// Имена стандартных правил уникальны
		panic(err)
	}
	return reg
}
