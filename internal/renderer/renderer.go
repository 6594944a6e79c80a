package renderer

import (
	"sync"

	"Voxelbox/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

type Light struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
	Mode      string // "ambient", "directional"
}

func CreateAmbientLight(color mgl32.Vec3, intensity float32) Light {
	return Light{
		Mode:      "ambient",
		Color:     color,
		Intensity: intensity,
	}
}

// CreateDirectionalLight creates a sun-like light placed at position and aimed at the origin
func CreateDirectionalLight(position mgl32.Vec3, color mgl32.Vec3, intensity float32) Light {
	return Light{
		Mode:      "directional",
		Position:  position,
		Direction: position.Mul(-1).Normalize(),
		Color:     color,
		Intensity: intensity,
	}
}

// Frame is everything a renderer needs to draw one frame
type Frame struct {
	Camera     Camera
	Ambient    Light
	Sun        Light
	Background mgl32.Vec3
	Instances  []InstanceHandle
}

type Render interface {
	Render(frame Frame)
}

// Headless is a Render implementation without a graphics context. It resolves
// every instance handle against its pool and remembers the last frame. Without
// a pool every handle counts as drawn and nothing is uploaded.
type Headless struct {
	mu      sync.Mutex
	pool    *InstancePool
	frames  uint64
	uploads uint64
	drawn   int
	stale   int
	last    Frame
}

func NewHeadless(pool *InstancePool) *Headless {
	return &Headless{pool: pool}
}

func (h *Headless) Render(frame Frame) {
	h.mu.Lock()
	defer h.mu.Unlock()

	drawn, stale := len(frame.Instances), 0
	if h.pool != nil {
		if h.pool.ConsumeUpdated() {
			h.uploads++
		}

		drawn = 0
		for _, handle := range frame.Instances {
			if _, ok := h.pool.Instance(handle); ok {
				drawn++
			} else {
				stale++
			}
		}
	}
	if stale > 0 {
		logger.Log.Warn("Frame references released instances", zap.Int("stale", stale), zap.Uint64("frame", h.frames))
	}

	h.frames++
	h.drawn = drawn
	h.stale = stale
	h.last = frame
}

type HeadlessStats struct {
	Frames  uint64 // Frames rendered
	Uploads uint64 // Frames on which instance data had to be re-uploaded
	Drawn   int    // Instances drawn in the last frame
	Stale   int    // Handles in the last frame that no longer exist
}

func (h *Headless) Stats() HeadlessStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return HeadlessStats{Frames: h.frames, Uploads: h.uploads, Drawn: h.drawn, Stale: h.stale}
}

func (h *Headless) LastFrame() Frame {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}
