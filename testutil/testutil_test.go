package testutil

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/activeset"
)

func TestUniform(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.UniformFloat64s(64)
	assert.Len(t, v, 64)
	for _, x := range v {
		assert.GreaterOrEqual(t, x, -1.0)
		assert.Less(t, x, 1.0)
	}

	f := rng.UniformFloat32s(8)
	assert.Len(t, f, 8)
	assert.Len(t, rng.GaussianFloat64s(8), 8)
}

func TestReset(t *testing.T) {
	rng := NewRNG(42)
	first := rng.UniformFloat64s(4)
	rng.Reset()
	assert.Equal(t, first, rng.UniformFloat64s(4))
	assert.Equal(t, int64(42), rng.Seed())
}

func TestIndices(t *testing.T) {
	rng := NewRNG(4711)

	idx := rng.Indices(50, 100)
	require.Len(t, idx, 50)

	sorted := slices.Clone(idx)
	slices.Sort(sorted)
	assert.Len(t, slices.Compact(sorted), 50, "indices must be distinct")
	assert.Less(t, sorted[len(sorted)-1], uint32(100))

	all := rng.Indices(200, 10)
	slices.Sort(all)
	assert.Equal(t, []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, all)
}

func TestSelector(t *testing.T) {
	rng := NewRNG(4711)

	sel := rng.Selector(10, 1000)
	assert.Equal(t, activeset.PartlyActive, sel.Mode())
	assert.Equal(t, 10, sel.ActiveSize(1000))

	assert.Equal(t, activeset.AllActive, rng.Selector(0, 1000).Mode())
}

func TestZipf(t *testing.T) {
	rng := NewRNG(4711)

	counts := make([]int, 10)
	for range 1000 {
		counts[rng.Zipf(10, 1.5)]++
	}
	assert.Greater(t, counts[0], counts[9])

	draws := rng.ZipfIndices(200, 10, 1.5)
	sel := rng.ZipfSelector(200, 10, 1.5)
	assert.Len(t, draws, 200)
	assert.LessOrEqual(t, sel.ActiveSize(10), 10)
}
