package decoration

import (
	"github.com/annel0/mmo-dungeon/internal/populator"
	"github.com/annel0/mmo-dungeon/internal/world/block"
)

// NewSimpleSpawner ставит спаунер в центр пола комнаты. Моба выбирает хост.
func NewSimpleSpawner() *populator.Rule {
	return populator.MustNewRule(SimpleSpawnerName, populator.DecoratorFunc(populateSimpleSpawner),
		populator.WithRoomChance(0.1, 0.02),
	)
}

func populateSimpleSpawner(ext populator.Extent, _ populator.Random, room populator.Room) bool {
	pos := room.Origin.Offset(populator.RoomSize/2, room.FloorOffset+1, populator.RoomSize/2)
	if ext.Block(pos) != block.AirBlockID || !block.IsSolid(ext.Block(pos.Offset(0, -1, 0))) {
		return false
	}
	ext.SetBlock(pos, block.SpawnerBlockID)
	return true
}
