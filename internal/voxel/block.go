package voxel

import (
	"sync"

	"Voxelbox/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockType is a material id. The set is open; unknown types render as Dirt.
type BlockType string

const (
	Dirt  BlockType = "dirt"
	Grass BlockType = "grass"
	Stone BlockType = "stone"
	Wood  BlockType = "wood"

	DefaultBlockType = Dirt
)

var defaultBlockColors = map[BlockType]uint32{
	Dirt:  0x8b5a2b,
	Grass: 0x2e8b57,
	Stone: 0x808080,
	Wood:  0x8b4513,
}

var (
	blockColorsMu sync.RWMutex
	blockColors   = cloneColors(defaultBlockColors)
)

func cloneColors(src map[BlockType]uint32) map[BlockType]mgl32.Vec3 {
	dst := make(map[BlockType]mgl32.Vec3, len(src))
	for t, hex := range src {
		dst[t] = renderer.ColorFromHex(hex)
	}
	return dst
}

// RegisterBlockType adds a new block type or overrides the color of an existing one
func RegisterBlockType(t BlockType, color mgl32.Vec3) {
	blockColorsMu.Lock()
	defer blockColorsMu.Unlock()
	blockColors[t] = color
}

// ResetBlockTypes drops everything registered with RegisterBlockType
func ResetBlockTypes() {
	blockColorsMu.Lock()
	defer blockColorsMu.Unlock()
	blockColors = cloneColors(defaultBlockColors)
}

// IsKnown reports whether t has a registered material
func IsKnown(t BlockType) bool {
	blockColorsMu.RLock()
	defer blockColorsMu.RUnlock()
	_, ok := blockColors[t]
	return ok
}

// MaterialFor returns the render material of t, falling back to the default type
func MaterialFor(t BlockType) renderer.Material {
	blockColorsMu.RLock()
	defer blockColorsMu.RUnlock()

	color, ok := blockColors[t]
	name := string(t)
	if !ok {
		color = blockColors[DefaultBlockType]
		name = string(DefaultBlockType)
	}
	return renderer.Material{
		DiffuseColor: color,
		Alpha:        1.0,
		Name:         name,
	}
}

// Block is one occupied cell
type Block struct {
	Coordinate Coordinate
	Type       BlockType
	Instance   renderer.InstanceHandle
}
