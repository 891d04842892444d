package populator

import (
	"github.com/annel0/mmo-dungeon/internal/vec"
	"github.com/annel0/mmo-dungeon/internal/world/block"
)

const (
	// ChunkSize ширина чанка в блоках
	ChunkSize = 16
	// RoomSize ширина комнаты, стены на локальных координатах 0 и RoomSize-1
	RoomSize = 8
	// DefaultLayerHeight высота слоя: пол и пять блоков пространства
	DefaultLayerHeight = 6
)

// Layout описывает геометрию подземелья: слой layer начинается на BaseY + layer*LayerHeight,
// комнаты 0..3 лежат сеткой 2x2 (room&1 по X, room>>1 по Z).
type Layout struct {
	BaseY       int
	LayerHeight int
}

// DefaultLayout геометрия по умолчанию
func DefaultLayout() Layout {
	return Layout{BaseY: 8, LayerHeight: DefaultLayerHeight}
}

// LayerY возвращает высоту пола слоя
func (l Layout) LayerY(layer int) int {
	return l.BaseY + layer*l.LayerHeight
}

// RoomOrigin возвращает абсолютные координаты минимального угла комнаты
func (l Layout) RoomOrigin(chunk vec.Vec2, layer, room int) vec.Vec3 {
	origin := chunk.ChunkOrigin()
	return vec.Vec3{
		X: origin.X + (room&1)*RoomSize,
		Y: l.LayerY(layer),
		Z: origin.Z + (room>>1)*RoomSize,
	}
}

// FloorOffset возвращает 1, если пол комнаты приподнят на блок
func FloorOffset(ext Extent, origin vec.Vec3) int {
	if block.IsSolid(ext.Block(origin.Offset(RoomSize/2, 1, RoomSize/2))) {
		return 1
	}
	return 0
}
