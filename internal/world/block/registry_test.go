package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryDefaults(t *testing.T) {
	assert.True(t, IsValidBlockID(StoneBrickBlockID))
	assert.Equal(t, "lit_pumpkin", Name(LitPumpkinBlockID))
	assert.False(t, IsSolid(AirBlockID))
	assert.False(t, IsSolid(LavaBlockID))
	assert.True(t, IsSolid(SpawnerBlockID))
}

func TestUnknownBlock(t *testing.T) {
	unknown := BlockID(4242)

	assert.False(t, IsValidBlockID(unknown))
	assert.Equal(t, "unknown", Name(unknown))
	assert.True(t, IsSolid(unknown))
}
