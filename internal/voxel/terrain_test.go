package voxel

import (
	"math/rand"
	"sync/atomic"
	"testing"

	"Voxelbox/internal/renderer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaveHeightRange(t *testing.T) {
	for x := 0; x < 64; x++ {
		for z := 0; z < 64; z++ {
			h := WaveHeight(x, z)
			require.GreaterOrEqual(t, h, 3)
			require.LessOrEqual(t, h, 5)
		}
	}
	assert.Equal(t, 4, WaveHeight(0, 0), "floor(3 + |0 + 1|)")
}

func TestGenerateLayers(t *testing.T) {
	g := NewGenerator()
	g.TreeChance = 0
	size := 8

	ins := g.Generate(size, rand.New(rand.NewSource(1)))

	columns := make(map[[2]int][]Insertion)
	for _, in := range ins {
		k := [2]int{in.Coordinate.X, in.Coordinate.Z}
		columns[k] = append(columns[k], in)
	}
	require.Len(t, columns, size*size)

	for k, col := range columns {
		h := WaveHeight(k[0], k[1])
		require.Len(t, col, h)
		for _, in := range col {
			y := in.Coordinate.Y
			switch {
			case y == h-1:
				assert.Equal(t, Grass, in.Type)
			case y < h-3:
				assert.Equal(t, Stone, in.Type)
			default:
				assert.Equal(t, Dirt, in.Type)
			}
		}
	}
}

func TestGenerateTrees(t *testing.T) {
	g := NewGenerator()
	g.TreeChance = 1
	size := 1

	ins := g.Generate(size, rand.New(rand.NewSource(7)))
	h := WaveHeight(0, 0)

	var trunk, canopy int
	top := 0
	for _, in := range ins {
		switch {
		case in.Type == Wood:
			trunk++
			assert.Equal(t, 0, in.Coordinate.X)
			assert.Equal(t, 0, in.Coordinate.Z)
			if in.Coordinate.Y+1 > top {
				top = in.Coordinate.Y + 1
			}
		case in.Coordinate.Y >= h:
			canopy++
		}
	}

	assert.GreaterOrEqual(t, trunk, 3)
	assert.LessOrEqual(t, trunk, 4)
	assert.Equal(t, 21, canopy, "5x5 diamond without the four corners")

	for _, in := range ins {
		if in.Type == CanopyType && in.Coordinate.Y >= h {
			assert.Equal(t, top, in.Coordinate.Y)
			assert.Less(t, abs(in.Coordinate.X)+abs(in.Coordinate.Z), 4)
		}
	}
}

func terrainOnly(ins []Insertion, size int) []Insertion {
	var out []Insertion
	for _, in := range ins {
		c := in.Coordinate
		if c.X >= 0 && c.X < size && c.Z >= 0 && c.Z < size && c.Y < WaveHeight(c.X, c.Z) {
			out = append(out, in)
		}
	}
	return out
}

func TestGenerateDeterminism(t *testing.T) {
	g := NewGenerator()
	size := 32

	a := g.Generate(size, rand.New(rand.NewSource(42)))
	b := g.Generate(size, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b, "same seed reproduces everything")

	c := g.Generate(size, rand.New(rand.NewSource(43)))
	assert.Equal(t, terrainOnly(a, size), terrainOnly(c, size), "layers do not depend on the random source")
}

func TestGenerateParallelHeightMap(t *testing.T) {
	serial := NewGenerator()
	parallel := NewGenerator()
	parallel.Workers = 4

	a := serial.Generate(24, rand.New(rand.NewSource(5)))
	b := parallel.Generate(24, rand.New(rand.NewSource(5)))
	assert.Equal(t, a, b)
}

func TestApplyCanopyOverlap(t *testing.T) {
	g := NewGenerator()
	g.TreeChance = 1
	size := 4

	ins := g.Generate(size, rand.New(rand.NewSource(3)))
	distinct := make(map[Coordinate]struct{})
	for _, in := range ins {
		distinct[in.Coordinate] = struct{}{}
	}
	require.Less(t, len(distinct), len(ins), "adjacent canopies must overlap for this test")

	w := NewWorld(nil)
	added, err := Apply(w, ins)
	require.NoError(t, err)
	assert.Equal(t, len(distinct), added)
	assert.Equal(t, len(distinct), w.Len())
}

func TestApplyOrderIndependent(t *testing.T) {
	g := NewGenerator()
	g.TreeChance = 0.3
	ins := g.Generate(10, rand.New(rand.NewSource(11)))

	forward := NewWorld(nil)
	_, err := Apply(forward, ins)
	require.NoError(t, err)

	reversed := make([]Insertion, len(ins))
	for i, in := range ins {
		reversed[len(ins)-1-i] = in
	}
	backward := NewWorld(nil)
	_, err = Apply(backward, reversed)
	require.NoError(t, err)

	assert.Equal(t, forward.Len(), backward.Len())
	for _, b := range forward.Blocks() {
		assert.True(t, backward.Has(b.Coordinate), "%s missing", b.Coordinate)
	}
}

func TestPerlinHeightDeterministic(t *testing.T) {
	a := PerlinHeight(99)
	b := PerlinHeight(99)
	for x := 0; x < 16; x++ {
		for z := 0; z < 16; z++ {
			require.Equal(t, a(x, z), b(x, z))
			require.GreaterOrEqual(t, a(x, z), 3)
			require.LessOrEqual(t, a(x, z), 9)
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	assert.Empty(t, NewGenerator().Generate(0, rand.New(rand.NewSource(1))))
}

func TestApplyStopsAtFirstError(t *testing.T) {
	g := NewGenerator()
	g.TreeChance = 0
	ins := g.Generate(4, rand.New(rand.NewSource(1)))

	pool := renderer.NewInstancePool(10)
	w := NewWorld(pool)
	added, err := Apply(w, ins)

	require.ErrorIs(t, err, renderer.ErrPoolExhausted)
	assert.Equal(t, 10, added)
	assert.Equal(t, 10, w.Len(), "blocks placed before the failure are kept")
	for _, in := range ins[:10] {
		assert.True(t, w.Has(in.Coordinate))
	}
	assert.False(t, w.Has(ins[10].Coordinate))
}

func TestParallelHeightMapRecoversFromPanic(t *testing.T) {
	var failed atomic.Bool
	parallel := NewGenerator()
	parallel.Workers = 4
	parallel.Height = func(x, z int) int {
		if x == 3 && failed.CompareAndSwap(false, true) {
			panic("height source failed")
		}
		return WaveHeight(x, z)
	}

	got := parallel.Generate(12, rand.New(rand.NewSource(5)))
	want := NewGenerator().Generate(12, rand.New(rand.NewSource(5)))

	require.True(t, failed.Load())
	assert.Equal(t, want, got, "no column is left empty")
}
