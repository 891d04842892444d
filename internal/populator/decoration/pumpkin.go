package decoration

import (
	"github.com/annel0/mmo-dungeon/internal/populator"
	"github.com/annel0/mmo-dungeon/internal/world/block"
)

// NewPumpkin ставит тыквы на пол комнаты; треть из них светится
func NewPumpkin() *populator.Rule {
	return populator.MustNewRule(PumpkinName, populator.DecoratorFunc(populatePumpkin),
		populator.WithRoomChance(0.025, 0),
		populator.WithRoomIterations(7, 5),
		populator.WithIterationChance(0.5, 0),
	)
}

func populatePumpkin(ext populator.Extent, r populator.Random, room populator.Room) bool {
	dx := r.Intn(populator.RoomSize-2) + 1
	dz := r.Intn(populator.RoomSize-2) + 1
	pos := room.Origin.Offset(dx, room.FloorOffset+1, dz)

	if ext.Block(pos) != block.AirBlockID || ext.Block(pos.Offset(0, -1, 0)) == block.AirBlockID {
		return false
	}

	id := block.PumpkinBlockID
	if r.Float64() < 0.33 {
		id = block.LitPumpkinBlockID
	}
	ext.SetBlock(pos, id)
	return true
}
