package voxel

import (
	"Voxelbox/internal/renderer"
)

// Button is a pointer button id as reported by the input source
type Button int

const (
	ButtonPrimary   Button = 0
	ButtonSecondary Button = 2
)

// PointerEvent is a pointer-down event in screen pixels (origin top-left)
type PointerEvent struct {
	ScreenX float32
	ScreenY float32
	Button  Button
}

type Action int

const (
	ActionNone Action = iota
	ActionRemove
	ActionPlace
)

func (a Action) String() string {
	switch a {
	case ActionRemove:
		return "remove"
	case ActionPlace:
		return "place"
	default:
		return "none"
	}
}

// EditResult describes what a pointer event did to the world
type EditResult struct {
	Action  Action
	Hit     Hit
	HasHit  bool
	Target  Coordinate // Cell that was removed or placed
	Changed bool       // False when the target was already in the requested state
}

// EditController turns pointer events into block edits
type EditController struct {
	World  *World
	Width  int // Viewport width in pixels
	Height int // Viewport height in pixels
}

func NewEditController(world *World, width, height int) *EditController {
	return &EditController{World: world, Width: width, Height: height}
}

// OnPointerEvent resolves ev against the world through camera and applies at most one edit.
func (ec *EditController) OnPointerEvent(ev PointerEvent, camera renderer.Camera, selected BlockType) (EditResult, error) {
	ray := renderer.ScreenToRay(camera, ev.ScreenX, ev.ScreenY, ec.Width, ec.Height)
	return ec.Apply(ray, ev.Button, selected)
}

// Apply picks along ray and edits the world. Picking and mutation share one
// critical section so a hit can never be applied to a stale world.
func (ec *EditController) Apply(ray renderer.Ray, button Button, selected BlockType) (EditResult, error) {
	var result EditResult

	err := ec.World.Update(func(tx *Tx) error {
		hit, ok := Resolve(ray, tx.VisibleInstances())
		if !ok {
			return nil
		}
		result.Hit = hit
		result.HasHit = true

		switch button {
		case ButtonPrimary:
			result.Action = ActionRemove
			result.Target = hit.Coordinate
			result.Changed = tx.RemoveBlock(hit.Coordinate)
		case ButtonSecondary:
			result.Action = ActionPlace
			result.Target = hit.Place()
			changed, err := tx.AddBlock(result.Target, selected)
			if err != nil {
				return err
			}
			result.Changed = changed
		}
		return nil
	})

	return result, err
}
