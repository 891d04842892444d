package world

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/annel0/mmo-dungeon/internal/vec"
	"github.com/annel0/mmo-dungeon/internal/world/block"
)

func TestChunkAbsoluteCoordinates(t *testing.T) {
	chunk := NewChunk(vec.Vec2{X: -1, Z: 2}, 10)

	inside := vec.Vec3{X: -3, Y: 4, Z: 40}
	assert.True(t, chunk.Contains(inside))
	assert.Equal(t, block.AirBlockID, chunk.Block(inside), "Новый чанк заполнен воздухом")

	chunk.SetBlock(inside, block.PumpkinBlockID)
	assert.Equal(t, block.PumpkinBlockID, chunk.Block(inside))
	assert.Equal(t, 1, chunk.ChangeCounter)
	assert.Equal(t, []vec.Vec3{inside}, chunk.Changes())
}

func TestChunkOutsidePositions(t *testing.T) {
	chunk := NewChunk(vec.Vec2{X: 0, Z: 0}, 10)

	for _, pos := range []vec.Vec3{
		{X: 16, Y: 1, Z: 1},
		{X: -1, Y: 1, Z: 1},
		{X: 1, Y: -1, Z: 1},
		{X: 1, Y: 10, Z: 1},
	} {
		assert.False(t, chunk.Contains(pos), "%+v вне чанка", pos)
		assert.Equal(t, block.StoneBlockID, chunk.Block(pos), "Вне чанка читается камень")
		chunk.SetBlock(pos, block.LavaBlockID)
	}
	assert.False(t, chunk.HasChanges(), "Запись вне чанка игнорируется")
}

func TestChunkFillAndChanges(t *testing.T) {
	chunk := NewChunk(vec.Vec2{X: 3, Z: 3}, 4)
	chunk.Fill(0, 1, block.StoneBlockID)

	assert.Equal(t, 2*ChunkSize*ChunkSize, chunk.Count(block.StoneBlockID))
	assert.False(t, chunk.HasChanges(), "Fill не отмечает изменения")

	pos := vec.Vec3{X: 48, Y: 0, Z: 48}
	chunk.SetBlock(pos, block.StoneBlockID)
	assert.False(t, chunk.HasChanges(), "Запись того же блока не изменение")

	chunk.SetBlock(pos, block.GravelBlockID)
	assert.True(t, chunk.HasChanges())

	chunk.ClearChanges()
	assert.False(t, chunk.HasChanges())
	assert.Equal(t, block.GravelBlockID, chunk.Block(pos))
}
