package populator

import (
	"github.com/annel0/mmo-dungeon/internal/errors"
	"github.com/annel0/mmo-dungeon/internal/vec"
)

const (
	// MaxLayers максимальное число слоёв подземелья в чанке
	MaxLayers = 7
	// RoomsPerLayer число комнат на одном слое (2x2)
	RoomsPerLayer = 4

	layerBitOffset = 1
	roomBitOffset  = 8
)

// ChunkState хранит флаги обработки подземелья одного чанка в одном 64-битном слове:
//
//	бит 0       – подземелье сгенерировано;
//	биты 1..7   – слой 0..6 обработан;
//	биты 8..35  – комната (layer*4 + room) занята.
//
// Не потокобезопасен: экземпляр принадлежит одному проходу генерации чанка.
type ChunkState struct {
	coords vec.Vec2
	flags  uint64
}

// NewChunkState создаёт пустое состояние для чанка
func NewChunkState(coords vec.Vec2) *ChunkState {
	return &ChunkState{coords: coords}
}

// Coords возвращает координаты чанка
func (s *ChunkState) Coords() vec.Vec2 {
	return s.coords
}

// Generated возвращает главный флаг "подземелье сгенерировано"
func (s *ChunkState) Generated() bool {
	return s.get(0)
}

// SetGenerated устанавливает главный флаг
func (s *ChunkState) SetGenerated(value bool) {
	s.set(0, value)
}

// LayerFlag возвращает флаг слоя
func (s *ChunkState) LayerFlag(layer int) (bool, error) {
	index, err := layerIndex(layer)
	if err != nil {
		return false, err
	}
	return s.get(index), nil
}

// SetLayerFlag устанавливает флаг слоя
func (s *ChunkState) SetLayerFlag(layer int, value bool) error {
	index, err := layerIndex(layer)
	if err != nil {
		return err
	}
	s.set(index, value)
	return nil
}

// RoomFlag возвращает флаг комнаты
func (s *ChunkState) RoomFlag(layer, room int) (bool, error) {
	index, err := roomIndex(layer, room)
	if err != nil {
		return false, err
	}
	return s.get(index), nil
}

// SetRoomFlag устанавливает флаг комнаты
func (s *ChunkState) SetRoomFlag(layer, room int, value bool) error {
	index, err := roomIndex(layer, room)
	if err != nil {
		return err
	}
	s.set(index, value)
	return nil
}

func (s *ChunkState) get(index int) bool {
	return s.flags&(1<<uint(index)) != 0
}

func (s *ChunkState) set(index int, value bool) {
	if value {
		s.flags |= 1 << uint(index)
	} else {
		s.flags &^= 1 << uint(index)
	}
}

func layerIndex(layer int) (int, error) {
	if layer < 0 || layer >= MaxLayers {
		return 0, errors.InvalidArgumentf("layer %d out of range [0,%d]", layer, MaxLayers-1)
	}
	return layer + layerBitOffset, nil
}

func roomIndex(layer, room int) (int, error) {
	if layer < 0 || layer >= MaxLayers {
		return 0, errors.InvalidArgumentf("layer %d out of range [0,%d]", layer, MaxLayers-1)
	}
	if room < 0 || room >= RoomsPerLayer {
		return 0, errors.InvalidArgumentf("room %d out of range [0,%d]", room, RoomsPerLayer-1)
	}
	return layer*RoomsPerLayer + room + roomBitOffset, nil
}
