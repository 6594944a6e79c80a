package voxel

import (
	"fmt"
	"math"

	"Voxelbox/internal/logger"

	"github.com/alitto/pond/v2"
	perlin "github.com/aquilax/go-perlin"
	"go.uber.org/zap"
)

const (
	DefaultTreeChance = 0.03

	// Block types used by the generator
	SurfaceType = Grass
	CoreType    = Stone
	FillType    = Dirt
	TrunkType   = Wood
	CanopyType  = Grass

	minTrunkHeight = 3
	trunkVariation = 2 // trunk height is minTrunkHeight + [0, trunkVariation)
	canopyRadius   = 2
	canopyReach    = 4 // canopy cells satisfy |dx|+|dz| < canopyReach
	soilDepth      = 3 // cells below h-soilDepth are CoreType
)

// Rand is the random source the generator draws tree placement from
type Rand interface {
	Float64() float64
}

// HeightFunc gives the column height at (x, z). It must be deterministic.
type HeightFunc func(x, z int) int

// WaveHeight is the rolling sine/cosine terrain: floor(3 + |2 sin(0.2x) + cos(0.2z)|)
func WaveHeight(x, z int) int {
	v := math.Sin(float64(x)*0.2)*2 + math.Cos(float64(z)*0.2)
	return int(math.Floor(3 + math.Abs(v)))
}

// PerlinHeight returns a height function from seeded Perlin noise, ranging over [3, 9]
func PerlinHeight(seed int64) HeightFunc {
	p := perlin.NewPerlin(2, 2, 3, seed)
	return func(x, z int) int {
		n := p.Noise2D(float64(x)*0.08, float64(z)*0.08)
		h := 6 + int(math.Floor(n*6))
		if h < 3 {
			h = 3
		}
		if h > 9 {
			h = 9
		}
		return h
	}
}

// Insertion is one block the generator wants placed
type Insertion struct {
	Coordinate Coordinate
	Type       BlockType
}

type Generator struct {
	Height     HeightFunc
	TreeChance float64
	Workers    int // Height map workers; values below 2 evaluate inline
}

func NewGenerator() *Generator {
	return &Generator{
		Height:     WaveHeight,
		TreeChance: DefaultTreeChance,
		Workers:    1,
	}
}

// Generate lays out a size x size patch of terrain with occasional trees.
// rng is consumed once per column plus once per tree, in column order, so a
// seeded source reproduces the same trees.
func (g *Generator) Generate(size int, rng Rand) []Insertion {
	if size <= 0 {
		return nil
	}

	heights := g.heightMap(size)
	out := make([]Insertion, 0, size*size*5)

	for x := 0; x < size; x++ {
		for z := 0; z < size; z++ {
			h := heights[x*size+z]
			for y := 0; y < h; y++ {
				out = append(out, Insertion{Coordinate{X: x, Y: y, Z: z}, layerType(y, h)})
			}

			if rng.Float64() < g.TreeChance {
				out = appendTree(out, x, h, z, rng)
			}
		}
	}

	return out
}

func layerType(y, h int) BlockType {
	switch {
	case y == h-1:
		return SurfaceType
	case y < h-soilDepth:
		return CoreType
	default:
		return FillType
	}
}

func appendTree(out []Insertion, x, base, z int, rng Rand) []Insertion {
	trunk := minTrunkHeight + int(math.Floor(rng.Float64()*trunkVariation))
	for t := 0; t < trunk; t++ {
		out = append(out, Insertion{Coordinate{X: x, Y: base + t, Z: z}, TrunkType})
	}

	top := base + trunk
	for lx := -canopyRadius; lx <= canopyRadius; lx++ {
		for lz := -canopyRadius; lz <= canopyRadius; lz++ {
			if abs(lx)+abs(lz) < canopyReach {
				out = append(out, Insertion{Coordinate{X: x + lx, Y: top, Z: z + lz}, CanopyType})
			}
		}
	}
	return out
}

func (g *Generator) heightMap(size int) []int {
	heights := make([]int, size*size)
	height := g.Height
	if height == nil {
		height = WaveHeight
	}

	column := func(x int) {
		for z := 0; z < size; z++ {
			heights[x*size+z] = height(x, z)
		}
	}

	if g.Workers < 2 {
		for x := 0; x < size; x++ {
			column(x)
		}
		return heights
	}

	pool := pond.NewPool(g.Workers)
	group := pool.NewGroup()
	for x := 0; x < size; x++ {
		x := x
		group.Submit(func() { column(x) })
	}
	err := group.Wait()
	// Wait can return on the first failure while other tasks still run
	pool.StopAndWait()

	if err != nil {
		// A failed task leaves its column unset; recompute everything inline
		logger.Log.Warn("Parallel height map failed, evaluating inline", zap.Error(err))
		for x := 0; x < size; x++ {
			column(x)
		}
	}
	return heights
}

// Apply adds every insertion to w in order and returns how many new blocks were placed.
// It stops at the first add error. Blocks added before the failure stay in the
// world; the failing insertion and everything after it are not applied.
func Apply(w *World, insertions []Insertion) (int, error) {
	added := 0
	err := w.Update(func(tx *Tx) error {
		for _, ins := range insertions {
			ok, err := tx.AddBlock(ins.Coordinate, ins.Type)
			if err != nil {
				return fmt.Errorf("apply terrain: %w", err)
			}
			if ok {
				added++
			}
		}
		return nil
	})

	logger.Log.Info("Terrain applied",
		zap.Int("insertions", len(insertions)),
		zap.Int("added", added),
		zap.Int("blocks", w.Len()))
	return added, err
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
