package decoration

import (
	"github.com/annel0/mmo-dungeon/internal/populator"
	"github.com/annel0/mmo-dungeon/internal/world/block"
)

var infested = map[block.BlockID]block.BlockID{
	block.StoneBrickBlockID:        block.InfestedStoneBrickBlockID,
	block.MossyStoneBrickBlockID:   block.InfestedMossyStoneBrickBlockID,
	block.CrackedStoneBrickBlockID: block.InfestedCrackedStoneBrickBlockID,
	block.CobblestoneBlockID:       block.InfestedCobblestoneBlockID,
	block.StoneBlockID:             block.InfestedStoneBlockID,
}

// NewSilverfishBlock прячет чешуйниц в каменных блоках глубоких слоёв
func NewSilverfishBlock() *populator.Rule {
	return populator.MustNewRule(SilverfishBlockName, populator.DecoratorFunc(populateSilverfishBlock),
		populator.WithFixedLayers(2, 6),
		populator.WithRoomChance(0.33, 0),
		populator.WithRoomIterations(10, 0),
		populator.WithIterationChance(0.8, -0.04),
	)
}

func populateSilverfishBlock(ext populator.Extent, r populator.Random, room populator.Room) bool {
	dx := r.Intn(populator.RoomSize)
	dy := r.Intn(4-room.FloorOffset) + 1 + room.FloorOffset
	dz := r.Intn(populator.RoomSize)
	pos := room.Origin.Offset(dx, dy, dz)

	replacement, ok := infested[ext.Block(pos)]
	if !ok {
		return false
	}
	ext.SetBlock(pos, replacement)
	return true
}
