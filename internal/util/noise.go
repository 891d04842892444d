package util

import (
	"github.com/aquilax/go-perlin"
)

// Параметры шума по умолчанию
const (
	perlinAlpha   = 2.0 // Сглаживание шума
	perlinBeta    = 2.0 // Частота шума
	perlinOctaves = 3   // Количество октав
)

// Noise шум Перлина с фиксированным сидом. После создания только читается.
type Noise struct {
	seed   int64
	perlin *perlin.Perlin
}

// NewNoise создаёт генератор шума для сида
func NewNoise(seed int64) *Noise {
	return &Noise{
		seed:   seed,
		perlin: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed),
	}
}

// Seed возвращает сид
func (n *Noise) Seed() int64 {
	return n.seed
}

// At2D возвращает значение шума в точке, приведённое к [0, 1]
func (n *Noise) At2D(x, y float64) float64 {
	v := (n.perlin.Noise2D(x, y) + 1.0) / 2.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Levels отображает шум в точке на целое из [min, max]
func (n *Noise) Levels(x, y float64, min, max int) int {
	if max <= min {
		return min
	}
	span := max - min + 1
	level := min + int(n.At2D(x, y)*float64(span))
	if level > max {
		level = max
	}
	return level
}
