package voxel

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Coordinate identifies one unit grid cell
type Coordinate struct {
	X, Y, Z int
}

func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Min is the lower corner of the cell
func (c Coordinate) Min() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X), float32(c.Y), float32(c.Z)}
}

// Max is the upper corner of the cell
func (c Coordinate) Max() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X + 1), float32(c.Y + 1), float32(c.Z + 1)}
}

// Center is where the cell's unit cube is drawn
func (c Coordinate) Center() mgl32.Vec3 {
	return c.Min().Add(mgl32.Vec3{0.5, 0.5, 0.5})
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%d,%d,%d", c.X, c.Y, c.Z)
}

// BlockKey packs a coordinate into 21 bits per axis
type BlockKey uint64

const (
	keyBits = 21
	keyBias = 1 << (keyBits - 1)
	keyMask = 1<<keyBits - 1

	// MinCoord and MaxCoord bound every axis of a storable coordinate
	MinCoord = -keyBias
	MaxCoord = keyBias - 1
)

// InRange reports whether every component fits the key encoding
func (c Coordinate) InRange() bool {
	return inAxisRange(c.X) && inAxisRange(c.Y) && inAxisRange(c.Z)
}

func inAxisRange(v int) bool {
	return v >= MinCoord && v <= MaxCoord
}

// KeyOf encodes c. The encoding is injective for coordinates where InRange is true.
func KeyOf(c Coordinate) BlockKey {
	x := uint64(c.X+keyBias) & keyMask
	y := uint64(c.Y+keyBias) & keyMask
	z := uint64(c.Z+keyBias) & keyMask
	return BlockKey(x<<(2*keyBits) | y<<keyBits | z)
}

// Coordinate decodes the key
func (k BlockKey) Coordinate() Coordinate {
	return Coordinate{
		X: int(uint64(k)>>(2*keyBits)&keyMask) - keyBias,
		Y: int(uint64(k)>>keyBits&keyMask) - keyBias,
		Z: int(uint64(k)&keyMask) - keyBias,
	}
}

// Face normals of a unit cube
var (
	FaceEast  = Coordinate{X: 1}
	FaceWest  = Coordinate{X: -1}
	FaceUp    = Coordinate{Y: 1}
	FaceDown  = Coordinate{Y: -1}
	FaceSouth = Coordinate{Z: 1}
	FaceNorth = Coordinate{Z: -1}

	FaceNormals = [6]Coordinate{FaceEast, FaceWest, FaceUp, FaceDown, FaceSouth, FaceNorth}
)

// QuantizeNormal rounds n to one of the six axis-aligned unit vectors.
// It returns false when n is not close to any of them.
func QuantizeNormal(n mgl32.Vec3) (Coordinate, bool) {
	q := Coordinate{
		X: int(math.Round(float64(n.X()))),
		Y: int(math.Round(float64(n.Y()))),
		Z: int(math.Round(float64(n.Z()))),
	}
	for _, f := range FaceNormals {
		if q == f {
			return q, true
		}
	}
	return Coordinate{}, false
}
