package populator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/mmo-dungeon/internal/errors"
	"github.com/annel0/mmo-dungeon/internal/vec"
)

func TestChunkStateRoomFlagsAreIndependent(t *testing.T) {
	for layer := 0; layer < MaxLayers; layer++ {
		for room := 0; room < RoomsPerLayer; room++ {
			state := NewChunkState(vec.Vec2{X: 3, Z: -2})
			require.NoError(t, state.SetRoomFlag(layer, room, true))

			for l := 0; l < MaxLayers; l++ {
				for r := 0; r < RoomsPerLayer; r++ {
					got, err := state.RoomFlag(l, r)
					require.NoError(t, err)
					assert.Equal(t, l == layer && r == room, got, "layer %d room %d", l, r)
				}
				layerFlag, err := state.LayerFlag(l)
				require.NoError(t, err)
				assert.False(t, layerFlag)
			}
			assert.False(t, state.Generated())
		}
	}
}

func TestChunkStateOutOfRange(t *testing.T) {
	state := NewChunkState(vec.Vec2{})

	cases := []struct {
		name        string
		layer, room int
	}{
		{"layer -1", -1, 0},
		{"layer 7", 7, 0},
		{"room -1", 0, -1},
		{"room 4", 0, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := state.RoomFlag(tc.layer, tc.room)
			assert.True(t, errors.IsInvalidArgument(err))
			assert.True(t, errors.IsInvalidArgument(state.SetRoomFlag(tc.layer, tc.room, true)))
		})
	}

	_, err := state.LayerFlag(7)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.True(t, errors.IsInvalidArgument(state.SetLayerFlag(-1, true)))
}

func TestChunkStateMasterAndLayerFlags(t *testing.T) {
	state := NewChunkState(vec.Vec2{X: 1, Z: 1})

	state.SetGenerated(true)
	require.NoError(t, state.SetLayerFlag(6, true))
	require.NoError(t, state.SetRoomFlag(0, 0, true))

	assert.True(t, state.Generated())
	flag, err := state.LayerFlag(6)
	require.NoError(t, err)
	assert.True(t, flag)

	// Сброс одного флага не затрагивает соседние
	require.NoError(t, state.SetLayerFlag(6, false))
	flag, _ = state.LayerFlag(6)
	assert.False(t, flag)
	assert.True(t, state.Generated())
	room, _ := state.RoomFlag(0, 0)
	assert.True(t, room)

	state.SetGenerated(false)
	assert.False(t, state.Generated())
	room, _ = state.RoomFlag(0, 0)
	assert.True(t, room)
	assert.Equal(t, vec.Vec2{X: 1, Z: 1}, state.Coords())
}
