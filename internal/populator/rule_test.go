package populator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/mmo-dungeon/internal/errors"
)

func TestChanceClamps(t *testing.T) {
	assert.Equal(t, 0.0, Chance{Base: 0.9, Delta: -0.5}.At(6))
	assert.Equal(t, 0.9, Chance{Base: 0.9, Delta: -0.5}.At(0))
	assert.Equal(t, 1.0, Chance{Base: 0.5, Delta: 0.2}.At(6))
	assert.Equal(t, 0.0, Chance{Base: -1}.At(0))
	assert.InDelta(t, 0.68, Chance{Base: 0.8, Delta: -0.04}.At(3), 1e-9)
}

func TestIterationsRoundAndFloor(t *testing.T) {
	assert.Equal(t, 37, Iterations{Base: 7, Delta: 5}.At(6))
	assert.Equal(t, 0, Iterations{Base: 1, Delta: -1}.At(3))
	assert.Equal(t, 3, Iterations{Base: 2.5}.At(0))
	assert.Equal(t, 2, Iterations{Base: 1, Delta: 0.4}.At(2))
}

func TestNewRuleDefaults(t *testing.T) {
	rule, err := NewRule("test", &recorder{})
	require.NoError(t, err)

	minLayer, maxLayer := rule.Layers(5)
	assert.Equal(t, 0, minLayer)
	assert.Equal(t, 4, maxLayer)
	assert.Equal(t, Chance{Base: 1}, rule.RoomChance())
	assert.Equal(t, Iterations{Base: 1}, rule.Iterations())
	assert.Equal(t, Chance{Base: 1}, rule.IterationChance())
	assert.Equal(t, "test", rule.Name())
}

func TestNewRuleOptions(t *testing.T) {
	rule := MustNewRule("opts", &recorder{},
		WithFixedLayers(2, 6),
		WithRoomChance(0.33, 0),
		WithRoomIterations(10, 0),
		WithIterationChance(0.8, -0.04),
	)

	minLayer, maxLayer := rule.Layers(3)
	assert.Equal(t, 2, minLayer)
	assert.Equal(t, 6, maxLayer)
	assert.Equal(t, Chance{Base: 0.33}, rule.RoomChance())
	assert.Equal(t, Iterations{Base: 10}, rule.Iterations())
	assert.Equal(t, Chance{Base: 0.8, Delta: -0.04}, rule.IterationChance())
}

func TestNewRuleValidation(t *testing.T) {
	_, err := NewRule("", &recorder{})
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = NewRule("nodecorator", nil)
	assert.True(t, errors.IsInvalidArgument(err))

	assert.Panics(t, func() { MustNewRule("", nil) })
}
