// camera.go
package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Camera struct {
	// HOT DATA - Accessed every frame for view/projection calculations
	Position   mgl32.Vec3 // Camera position in world space
	Front      mgl32.Vec3 // Forward direction vector
	Up         mgl32.Vec3 // Up direction vector
	Right      mgl32.Vec3 // Right direction vector
	Projection mgl32.Mat4 // Projection matrix
	Pitch      float32    // Pitch angle in degrees
	Yaw        float32    // Yaw angle in degrees

	// COLD DATA - Configuration, accessed less frequently
	WorldUp     mgl32.Vec3 // World up vector (usually (0,1,0))
	Fov         float32    // Vertical field of view in degrees
	Near        float32    // Near clipping plane
	Far         float32    // Far clipping plane
	AspectRatio float32    // Screen aspect ratio (width / height)
}

// NewDefaultCamera returns a perspective camera at (10,12,20) looking at (8,4,8)
func NewDefaultCamera(width int32, height int32) *Camera {
	camera := Camera{
		Position:    mgl32.Vec3{10, 12, 20},
		Front:       mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		WorldUp:     mgl32.Vec3{0, 1, 0},
		Yaw:         -90.0,
		Fov:         75.0,
		Near:        0.1,
		Far:         1000.0,
		AspectRatio: float32(width) / float32(height),
	}
	camera.LookAt(mgl32.Vec3{8, 4, 8})
	camera.UpdateProjection()
	return &camera
}

func (c *Camera) UpdateProjection() {
	c.Projection = mgl32.Perspective(mgl32.DegToRad(c.Fov), c.AspectRatio, c.Near, c.Far)
}

// Setter methods that automatically update projection
func (c *Camera) SetNear(near float32) {
	c.Near = near
	c.UpdateProjection()
}

func (c *Camera) SetFar(far float32) {
	c.Far = far
	c.UpdateProjection()
}

func (c *Camera) SetFov(fov float32) {
	c.Fov = fov
	c.UpdateProjection()
}

func (c *Camera) SetAspectRatio(aspectRatio float32) {
	c.AspectRatio = aspectRatio
	c.UpdateProjection()
}

func (c *Camera) GetViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.GetViewMatrix())
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Front), c.Up)
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return c.Projection
}

// SetOrientation sets yaw and pitch (degrees) and recomputes the basis vectors.
// Pitch is clamped to [-89, 89] so the view matrix never degenerates.
func (c *Camera) SetOrientation(yaw, pitch float32) {
	c.Yaw = yaw
	c.Pitch = mgl32.Clamp(pitch, -89.0, 89.0)
	c.updateCameraVectors()
}

// LookAt turns the camera towards target without moving it
func (c *Camera) LookAt(target mgl32.Vec3) {
	direction := target.Sub(c.Position)
	if direction.Len() == 0 {
		return
	}
	direction = direction.Normalize()
	yaw := mgl32.RadToDeg(float32(math.Atan2(float64(direction.Z()), float64(direction.X()))))
	pitch := mgl32.RadToDeg(float32(math.Asin(float64(direction.Y()))))
	c.SetOrientation(yaw, pitch)
}

func (c *Camera) updateCameraVectors() {
	yawRad := float64(mgl32.DegToRad(c.Yaw))
	pitchRad := float64(mgl32.DegToRad(c.Pitch))

	front := mgl32.Vec3{
		float32(math.Cos(yawRad) * math.Cos(pitchRad)),
		float32(math.Sin(pitchRad)),
		float32(math.Sin(yawRad) * math.Cos(pitchRad)),
	}

	c.Front = front.Normalize()
	c.Right = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.Right.Cross(c.Front).Normalize()
}
