package voxel

import (
	"errors"
	"fmt"
	"sync"

	"Voxelbox/internal/logger"
	"Voxelbox/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ErrOutOfRange is returned when a coordinate cannot be encoded as a BlockKey
var ErrOutOfRange = errors.New("voxel: coordinate out of range")

// InstanceAllocator is the renderer capability the world uses to give every
// block a visual representation. The world owns the handles but never interprets them.
type InstanceAllocator interface {
	Acquire(position mgl32.Vec3, material renderer.Material) (renderer.InstanceHandle, error)
	Release(handle renderer.InstanceHandle)
}

type nopAllocator struct{}

func (nopAllocator) Acquire(mgl32.Vec3, renderer.Material) (renderer.InstanceHandle, error) {
	return 0, nil
}

func (nopAllocator) Release(renderer.InstanceHandle) {}

// VisibleInstance is what the renderer and the pick resolver see of a block
type VisibleInstance struct {
	Handle     renderer.InstanceHandle
	Coordinate Coordinate
}

// World is a sparse block grid keyed by BlockKey.
// All methods are safe for concurrent use; Update runs a sequence of
// operations as one critical section.
type World struct {
	mu        sync.Mutex
	blocks    map[BlockKey]*Block
	instances InstanceAllocator
}

// NewWorld creates an empty world. A nil allocator gives blocks no visual instance.
func NewWorld(instances InstanceAllocator) *World {
	if instances == nil {
		instances = nopAllocator{}
	}
	return &World{
		blocks:    make(map[BlockKey]*Block),
		instances: instances,
	}
}

// Tx gives access to the world inside Update. It must not be used after Update returns.
type Tx struct {
	w *World
}

// Update runs fn while holding the world lock
func (w *World) Update(fn func(tx *Tx) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn(&Tx{w: w})
}

// AddBlock places a block of type t at c. An occupied cell is left untouched.
// The block is only recorded once its render instance was acquired.
func (w *World) AddBlock(c Coordinate, t BlockType) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, err := w.addBlock(c, t)
	return err
}

// RemoveBlock deletes the block at c, releasing its render instance. It reports whether a block was removed.
func (w *World) RemoveBlock(c Coordinate) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.removeBlock(c)
}

func (w *World) Get(c Coordinate) (Block, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.get(c)
}

func (w *World) Has(c Coordinate) bool {
	_, ok := w.Get(c)
	return ok
}

// VisibleInstances returns a fresh list of every block's instance and coordinate
func (w *World) VisibleInstances() []VisibleInstance {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visibleInstances()
}

func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.blocks)
}

// Blocks returns a copy of every block in unspecified order
func (w *World) Blocks() []Block {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make([]Block, 0, len(w.blocks))
	for _, b := range w.blocks {
		out = append(out, *b)
	}
	return out
}

func (w *World) addBlock(c Coordinate, t BlockType) (bool, error) {
	if !c.InRange() {
		return false, fmt.Errorf("add block at %s: %w", c, ErrOutOfRange)
	}

	key := KeyOf(c)
	if _, ok := w.blocks[key]; ok {
		return false, nil
	}

	handle, err := w.instances.Acquire(c.Center(), MaterialFor(t))
	if err != nil {
		logger.Log.Warn("Could not acquire block instance",
			zap.String("coord", c.String()),
			zap.String("type", string(t)),
			zap.Error(err))
		return false, fmt.Errorf("add block at %s: %w", c, err)
	}

	w.blocks[key] = &Block{Coordinate: c, Type: t, Instance: handle}
	logger.Log.Debug("Block added", zap.String("coord", c.String()), zap.String("type", string(t)))
	return true, nil
}

func (w *World) removeBlock(c Coordinate) bool {
	if !c.InRange() {
		return false
	}

	key := KeyOf(c)
	b, ok := w.blocks[key]
	if !ok {
		return false
	}

	w.instances.Release(b.Instance)
	delete(w.blocks, key)
	logger.Log.Debug("Block removed", zap.String("coord", c.String()), zap.String("type", string(b.Type)))
	return true
}

func (w *World) get(c Coordinate) (Block, bool) {
	if !c.InRange() {
		return Block{}, false
	}
	b, ok := w.blocks[KeyOf(c)]
	if !ok {
		return Block{}, false
	}
	return *b, true
}

func (w *World) visibleInstances() []VisibleInstance {
	out := make([]VisibleInstance, 0, len(w.blocks))
	for _, b := range w.blocks {
		out = append(out, VisibleInstance{Handle: b.Instance, Coordinate: b.Coordinate})
	}
	return out
}

// AddBlock reports whether a new block was placed
func (tx *Tx) AddBlock(c Coordinate, t BlockType) (bool, error) {
	return tx.w.addBlock(c, t)
}

func (tx *Tx) RemoveBlock(c Coordinate) bool {
	return tx.w.removeBlock(c)
}

func (tx *Tx) Get(c Coordinate) (Block, bool) {
	return tx.w.get(c)
}

func (tx *Tx) VisibleInstances() []VisibleInstance {
	return tx.w.visibleInstances()
}
