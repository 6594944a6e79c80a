package voxel

import (
	"testing"

	"Voxelbox/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func downRay() renderer.Ray {
	return renderer.Ray{Origin: mgl32.Vec3{0.5, 5, 0.5}, Direction: mgl32.Vec3{0, -1, 0}}
}

func TestResolveSingleBlockFromAbove(t *testing.T) {
	instances := []VisibleInstance{{Coordinate: Coordinate{0, 0, 0}}}

	hit, ok := Resolve(downRay(), instances)
	require.True(t, ok)
	assert.Equal(t, Coordinate{0, 0, 0}, hit.Coordinate)
	assert.Equal(t, FaceUp, hit.Normal)
	assert.Equal(t, float32(4.0), hit.Distance)
	assert.Equal(t, Coordinate{0, 1, 0}, hit.Place())
}

func TestResolveNearestWins(t *testing.T) {
	// A column of three blocks: the top one is hit first regardless of order
	instances := []VisibleInstance{
		{Coordinate: Coordinate{0, 0, 0}},
		{Coordinate: Coordinate{0, 2, 0}},
		{Coordinate: Coordinate{0, 1, 0}},
	}

	hit, ok := Resolve(downRay(), instances)
	require.True(t, ok)
	assert.Equal(t, Coordinate{0, 2, 0}, hit.Coordinate)
	assert.Equal(t, float32(2.0), hit.Distance)
}

func TestResolveSideFace(t *testing.T) {
	ray := renderer.Ray{Origin: mgl32.Vec3{-3, 0.5, 0.5}, Direction: mgl32.Vec3{1, 0, 0}}
	instances := []VisibleInstance{{Coordinate: Coordinate{2, 0, 0}}, {Coordinate: Coordinate{0, 0, 0}}}

	hit, ok := Resolve(ray, instances)
	require.True(t, ok)
	assert.Equal(t, Coordinate{0, 0, 0}, hit.Coordinate)
	assert.Equal(t, FaceWest, hit.Normal)
	assert.Equal(t, Coordinate{-1, 0, 0}, hit.Place())
}

func TestResolveNoHit(t *testing.T) {
	_, ok := Resolve(downRay(), nil)
	assert.False(t, ok)

	_, ok = Resolve(downRay(), []VisibleInstance{{Coordinate: Coordinate{3, 0, 3}}})
	assert.False(t, ok)

	// Blocks behind the origin do not count
	_, ok = Resolve(downRay(), []VisibleInstance{{Coordinate: Coordinate{0, 7, 0}}})
	assert.False(t, ok)
}

func TestResolveNegativeCoordinates(t *testing.T) {
	ray := renderer.Ray{Origin: mgl32.Vec3{-2.5, 10, -7.5}, Direction: mgl32.Vec3{0, -1, 0}}
	instances := []VisibleInstance{{Coordinate: Coordinate{-3, 2, -8}}}

	hit, ok := Resolve(ray, instances)
	require.True(t, ok)
	assert.Equal(t, Coordinate{-3, 2, -8}, hit.Coordinate)
	assert.Equal(t, float32(7.0), hit.Distance)
}
