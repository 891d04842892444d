package decoration

import (
	"math"

	"github.com/annel0/mmo-dungeon/internal/populator"
	"github.com/annel0/mmo-dungeon/internal/world/block"
)

// NewLavaInWall заменяет случайный блок стены лавой в верхней половине подземелья
func NewLavaInWall() *populator.Rule {
	return populator.MustNewRule(LavaInWallName, populator.DecoratorFunc(populateLavaInWall),
		populator.WithLayers(upperHalf),
		populator.WithRoomChance(0.05, 0.03),
	)
}

func upperHalf(layersCount int) (int, int) {
	return 0, int(math.Floor(float64(layersCount) * 0.5))
}

func populateLavaInWall(ext populator.Extent, r populator.Random, room populator.Room) bool {
	const wall = populator.RoomSize - 1

	x, z := room.Origin.X, room.Origin.Z
	y := room.Origin.Y + r.Intn(5-room.FloorOffset) + room.FloorOffset + 1

	// Выбор одной из четырёх стен
	switch r.Intn(4) {
	case 0:
		x += wall
		fallthrough
	case 1:
		z += r.Intn(wall-1) + 1
	case 2:
		z += wall
		fallthrough
	case 3:
		x += r.Intn(wall-1) + 1
	}

	pos := room.Origin
	pos.X, pos.Y, pos.Z = x, y, z

	switch ext.Block(pos) {
	case block.CobblestoneBlockID, block.MossyCobblestoneBlockID, block.StoneBrickBlockID:
		ext.SetBlock(pos, block.LavaBlockID)
		return true
	}
	return false
}
