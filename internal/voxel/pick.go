package voxel

import (
	"Voxelbox/internal/renderer"
)

// Hit is the nearest block a ray enters
type Hit struct {
	Coordinate Coordinate
	Normal     Coordinate // Face the ray entered through, one of FaceNormals
	Distance   float32
}

// Resolve intersects ray with the unit cube of every instance and returns the
// nearest one entered at a positive distance. On an exact distance tie the
// instance listed first wins.
func Resolve(ray renderer.Ray, instances []VisibleInstance) (Hit, bool) {
	var (
		best  Hit
		found bool
	)

	for _, inst := range instances {
		c := inst.Coordinate
		ok, dist, normal := renderer.RayIntersectAABB(ray, c.Min(), c.Max())
		if !ok {
			continue
		}
		if found && dist >= best.Distance {
			continue
		}

		face, ok := QuantizeNormal(normal)
		if !ok {
			continue
		}
		best = Hit{Coordinate: c, Normal: face, Distance: dist}
		found = true
	}

	return best, found
}

// Place is the cell adjacent to the hit face
func (h Hit) Place() Coordinate {
	return h.Coordinate.Add(h.Normal)
}
