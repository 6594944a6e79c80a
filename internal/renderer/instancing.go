package renderer

import (
	"errors"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrPoolExhausted is returned by Acquire when every instance slot is in use
var ErrPoolExhausted = errors.New("renderer: instance pool exhausted")

// InstanceHandle identifies one drawable instance. The zero handle is never issued.
type InstanceHandle uint32

type Material struct {
	DiffuseColor mgl32.Vec3 // Base color for lighting
	Alpha        float32    // Transparency (0.0 = transparent, 1.0 = opaque)
	Name         string     // Material name for debugging
}

// ColorFromHex converts a 0xRRGGBB value to an RGB vector in [0,1]
func ColorFromHex(hex uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((hex>>16)&0xff) / 255.0,
		float32((hex>>8)&0xff) / 255.0,
		float32(hex&0xff) / 255.0,
	}
}

// Instance is the per-instance data uploaded for instanced drawing
type Instance struct {
	Handle      InstanceHandle
	Position    mgl32.Vec3
	ModelMatrix mgl32.Mat4
	Material    Material
}

// InstancePool hands out instance slots for a single instanced cube model.
// Released handles are reused before new ones are issued.
type InstancePool struct {
	mu        sync.Mutex
	capacity  int // 0 means unlimited
	scale     mgl32.Vec3
	instances map[InstanceHandle]*Instance
	free      []InstanceHandle
	next      InstanceHandle

	// Set whenever instance data changes and cleared by ConsumeUpdated
	instanceMatricesUpdated bool
}

// NewInstancePool creates a pool of unit cubes holding at most capacity instances (0 = unlimited)
func NewInstancePool(capacity int) *InstancePool {
	return &InstancePool{
		capacity:  capacity,
		scale:     mgl32.Vec3{1, 1, 1},
		instances: make(map[InstanceHandle]*Instance),
	}
}

// Acquire allocates an instance centered at position with the given material
func (p *InstancePool) Acquire(position mgl32.Vec3, material Material) (InstanceHandle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.capacity > 0 && len(p.instances) >= p.capacity {
		return 0, ErrPoolExhausted
	}

	var handle InstanceHandle
	if n := len(p.free); n > 0 {
		handle = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		p.next++
		handle = p.next
	}

	// Combine translation and scaling for each instance
	scaleMatrix := mgl32.Scale3D(p.scale[0], p.scale[1], p.scale[2])
	translationMatrix := mgl32.Translate3D(position.X(), position.Y(), position.Z())

	p.instances[handle] = &Instance{
		Handle:      handle,
		Position:    position,
		ModelMatrix: translationMatrix.Mul4(scaleMatrix),
		Material:    material,
	}
	p.instanceMatricesUpdated = true
	return handle, nil
}

// Release frees the slot behind handle. Unknown handles are ignored.
func (p *InstancePool) Release(handle InstanceHandle) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.instances[handle]; !ok {
		return
	}
	delete(p.instances, handle)
	p.free = append(p.free, handle)
	p.instanceMatricesUpdated = true
}

// Instance returns the data for a live handle
func (p *InstancePool) Instance(handle InstanceHandle) (Instance, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	inst, ok := p.instances[handle]
	if !ok {
		return Instance{}, false
	}
	return *inst, true
}

func (p *InstancePool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.instances)
}

func (p *InstancePool) Capacity() int {
	return p.capacity
}

// Snapshot returns all live instances ordered by handle
func (p *InstancePool) Snapshot() []Instance {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]Instance, 0, len(p.instances))
	for _, inst := range p.instances {
		out = append(out, *inst)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Handle < out[j].Handle })
	return out
}

// ConsumeUpdated reports whether instance data changed since the last call
func (p *InstancePool) ConsumeUpdated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	updated := p.instanceMatricesUpdated
	p.instanceMatricesUpdated = false
	return updated
}
