package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoiseDeterministic(t *testing.T) {
	a := NewNoise(42)
	b := NewNoise(42)

	for i := 0; i < 50; i++ {
		x, y := float64(i)*0.37, float64(i)*-0.91
		assert.Equal(t, a.At2D(x, y), b.At2D(x, y), "Одинаковый сид должен давать одинаковый шум")
	}
	assert.Equal(t, int64(42), a.Seed())
}

func TestNoiseRange(t *testing.T) {
	n := NewNoise(7)
	for x := -20; x < 20; x++ {
		for y := -20; y < 20; y++ {
			v := n.At2D(float64(x)*0.13, float64(y)*0.13)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)

			level := n.Levels(float64(x)*0.13, float64(y)*0.13, 1, 7)
			assert.GreaterOrEqual(t, level, 1)
			assert.LessOrEqual(t, level, 7)
		}
	}
	assert.Equal(t, 3, n.Levels(0.5, 0.5, 3, 3))
}
