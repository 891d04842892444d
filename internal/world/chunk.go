package world

import (
	"sync"

	"github.com/annel0/mmo-dungeon/internal/vec"
	"github.com/annel0/mmo-dungeon/internal/world/block"
)

// ChunkSize ширина чанка в блоках
const ChunkSize = 16

// Chunk столб блоков 16 x Height x 16. Адресуется абсолютными координатами мира.
// Позиции вне чанка читаются как камень, запись в них игнорируется.
type Chunk struct {
	Coords vec.Vec2 // Координаты чанка в мире
	Height int

	blocks  []block.BlockID
	changes map[vec.Vec3]struct{}

	ChangeCounter int          // Счетчик изменений
	Mu            sync.RWMutex // Мьютекс для безопасного доступа
}

// NewChunk создаёт чанк, заполненный воздухом
func NewChunk(coords vec.Vec2, height int) *Chunk {
	if height < 1 {
		height = 1
	}
	return &Chunk{
		Coords:  coords,
		Height:  height,
		blocks:  make([]block.BlockID, ChunkSize*ChunkSize*height),
		changes: make(map[vec.Vec3]struct{}),
	}
}

// index возвращает индекс блока или -1, если позиция вне чанка
func (c *Chunk) index(pos vec.Vec3) int {
	if pos.ChunkCoords() != c.Coords || pos.Y < 0 || pos.Y >= c.Height {
		return -1
	}
	local := pos.Horizontal().LocalInChunk()
	return (pos.Y*ChunkSize+local.Z)*ChunkSize + local.X
}

// Contains сообщает, лежит ли позиция в чанке
func (c *Chunk) Contains(pos vec.Vec3) bool {
	return c.index(pos) >= 0
}

// Block возвращает блок по абсолютным координатам
func (c *Chunk) Block(pos vec.Vec3) block.BlockID {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	i := c.index(pos)
	if i < 0 {
		return block.StoneBlockID
	}
	return c.blocks[i]
}

// SetBlock устанавливает блок по абсолютным координатам и отмечает изменение
func (c *Chunk) SetBlock(pos vec.Vec3, id block.BlockID) {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	i := c.index(pos)
	if i < 0 || c.blocks[i] == id {
		return
	}
	c.blocks[i] = id
	c.changes[pos] = struct{}{}
	c.ChangeCounter++
}

// Fill заполняет блоком слой высот [fromY, toY] без учёта изменений
func (c *Chunk) Fill(fromY, toY int, id block.BlockID) {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	if fromY < 0 {
		fromY = 0
	}
	if toY >= c.Height {
		toY = c.Height - 1
	}
	for y := fromY; y <= toY; y++ {
		start := y * ChunkSize * ChunkSize
		for i := start; i < start+ChunkSize*ChunkSize; i++ {
			c.blocks[i] = id
		}
	}
}

// Count возвращает число блоков данного типа
func (c *Chunk) Count(id block.BlockID) int {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	n := 0
	for _, b := range c.blocks {
		if b == id {
			n++
		}
	}
	return n
}

// HasChanges проверяет, были ли изменения после ClearChanges
func (c *Chunk) HasChanges() bool {
	c.Mu.RLock()
	defer c.Mu.RUnlock()
	return len(c.changes) > 0
}

// Changes возвращает изменённые позиции
func (c *Chunk) Changes() []vec.Vec3 {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	out := make([]vec.Vec3, 0, len(c.changes))
	for pos := range c.changes {
		out = append(out, pos)
	}
	return out
}

// ClearChanges сбрасывает список и счётчик изменений
func (c *Chunk) ClearChanges() {
	c.Mu.Lock()
	defer c.Mu.Unlock()
	c.changes = make(map[vec.Vec3]struct{})
	c.ChangeCounter = 0
}
