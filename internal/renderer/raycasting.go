package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space. Direction is expected to be normalized.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// At returns the point at distance t along the ray
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

const parallelEpsilon = 1e-8

// RayIntersectAABB tests a ray against an axis-aligned box using the slab method.
// Returns: (intersected, entry distance, entry face normal).
// Only boxes entered at a positive distance count as hits, so a ray starting
// inside a box does not hit it.
func RayIntersectAABB(ray Ray, boxMin, boxMax mgl32.Vec3) (bool, float32, mgl32.Vec3) {
	tNear := float32(math.Inf(-1))
	tFar := float32(math.Inf(1))
	var normal mgl32.Vec3

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin[axis]
		dir := ray.Direction[axis]

		if float32(math.Abs(float64(dir))) < parallelEpsilon {
			// Parallel to this slab: must already be between the planes
			if origin < boxMin[axis] || origin > boxMax[axis] {
				return false, 0, mgl32.Vec3{}
			}
			continue
		}

		inv := 1.0 / dir
		t1 := (boxMin[axis] - origin) * inv
		t2 := (boxMax[axis] - origin) * inv

		// Entering through the min plane means the face points towards -axis
		var faceSign float32 = -1
		if t1 > t2 {
			t1, t2 = t2, t1
			faceSign = 1
		}

		if t1 > tNear {
			tNear = t1
			normal = mgl32.Vec3{}
			normal[axis] = faceSign
		}
		if t2 < tFar {
			tFar = t2
		}
		if tNear > tFar {
			return false, 0, mgl32.Vec3{}
		}
	}

	if tNear <= 0 || math.IsInf(float64(tNear), 0) {
		return false, 0, mgl32.Vec3{}
	}

	return true, tNear, normal
}

// ScreenToRay converts a screen position (pixels, origin top-left) to a world space ray
func ScreenToRay(camera Camera, screenX, screenY float32, windowWidth, windowHeight int) Ray {
	// Normalize screen coordinates to NDC (-1 to 1)
	ndcX := 2.0*screenX/float32(windowWidth) - 1.0
	ndcY := 1.0 - 2.0*screenY/float32(windowHeight)

	clipCoords := mgl32.Vec4{ndcX, ndcY, -1.0, 1.0}

	// Clip space to eye space
	eyeCoords := camera.Projection.Inv().Mul4x1(clipCoords)
	eyeCoords = mgl32.Vec4{eyeCoords.X(), eyeCoords.Y(), -1.0, 0.0}

	// Eye space to world space
	worldDir := camera.GetViewMatrix().Inv().Mul4x1(eyeCoords).Vec3().Normalize()

	return Ray{
		Origin:    camera.Position,
		Direction: worldDir,
	}
}
