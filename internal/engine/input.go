package engine

import (
	"sync"

	"Voxelbox/internal/voxel"
)

// InputSource delivers the pointer events received since the last poll
type InputSource interface {
	Poll() []voxel.PointerEvent
}

// InputQueue buffers pointer events pushed from any goroutine until the frame loop polls them
type InputQueue struct {
	mu     sync.Mutex
	events []voxel.PointerEvent
}

func NewInputQueue() *InputQueue {
	return &InputQueue{}
}

func (q *InputQueue) Push(ev voxel.PointerEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, ev)
}

func (q *InputQueue) Poll() []voxel.PointerEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	events := q.events
	q.events = nil
	return events
}
