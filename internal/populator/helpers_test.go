package populator

import (
	"github.com/annel0/mmo-dungeon/internal/vec"
	"github.com/annel0/mmo-dungeon/internal/world/block"
)

// mapExtent хранит блоки в карте, остальное воздух
type mapExtent map[vec.Vec3]block.BlockID

func (m mapExtent) Block(pos vec.Vec3) block.BlockID { return m[pos] }

func (m mapExtent) SetBlock(pos vec.Vec3, id block.BlockID) { m[pos] = id }

// constRandom всегда возвращает одно и то же значение
type constRandom float64

func (c constRandom) Float64() float64 { return float64(c) }

func (c constRandom) Intn(int) int { return 0 }

// scriptedRandom возвращает значения по очереди, затем повторяет последнее
type scriptedRandom struct {
	values []float64
	pos    int
	draws  int
}

func (s *scriptedRandom) Float64() float64 {
	s.draws++
	if s.pos < len(s.values)-1 {
		v := s.values[s.pos]
		s.pos++
		return v
	}
	return s.values[len(s.values)-1]
}

func (s *scriptedRandom) Intn(int) int { return 0 }

type visit struct {
	layer, room int
}

// recorder запоминает комнаты, переданные декоратору
type recorder struct {
	visits []visit
	rooms  []Room
	result bool
}

func (r *recorder) PopulateRoom(_ Extent, _ Random, room Room) bool {
	r.visits = append(r.visits, visit{room.Layer, room.Index})
	r.rooms = append(r.rooms, room)
	return r.result
}
