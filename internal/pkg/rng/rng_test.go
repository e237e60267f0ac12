package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakmund/grindstone/internal/pkg/rng"
)

func TestNewSeededIsReproducible(t *testing.T) {
	a := rng.NewSeeded(42)
	b := rng.NewSeeded(42)

	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.IntN(100), b.IntN(100))
	}
}

func TestRealSourceBounds(t *testing.T) {
	src := rng.New()
	for i := 0; i < 1000; i++ {
		f := src.Float64()
		assert.GreaterOrEqual(t, f, 0.0)
		assert.Less(t, f, 1.0)

		n := src.IntN(7)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 7)
	}
}

func TestFixedCycles(t *testing.T) {
	f := &rng.Fixed{Floats: []float64{0.1, 0.9}, Ints: []int{3, 5}}

	assert.Equal(t, 0.1, f.Float64())
	assert.Equal(t, 0.9, f.Float64())
	assert.Equal(t, 0.1, f.Float64())

	assert.Equal(t, 3, f.IntN(10))
	assert.Equal(t, 5, f.IntN(10))
	assert.Equal(t, 1, f.IntN(2))
}

func TestFixedDefaults(t *testing.T) {
	f := &rng.Fixed{}
	assert.Equal(t, 0.5, f.Float64())
	assert.Equal(t, 0, f.IntN(4))
}
