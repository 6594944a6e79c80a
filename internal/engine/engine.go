package engine

import (
	"Voxelbox/internal/behaviour"
	"Voxelbox/internal/logger"
	"Voxelbox/internal/renderer"
	"Voxelbox/internal/voxel"

	"go.uber.org/zap"
)

// Engine runs the sandbox frame loop. Every Step is strictly ordered:
// clock, day/night, agents, pointer edits, render.
type Engine struct {
	Width      int32
	Height     int32
	World      *voxel.World
	Camera     *renderer.Camera
	DayNight   *DayNight
	Components *behaviour.ComponentManager
	Metrics    *Metrics

	clock    Clock
	input    InputSource
	renderer renderer.Render
	editor   *voxel.EditController
	selected voxel.BlockType
	frame    uint64
}

type Options struct {
	Width    int32
	Height   int32
	World    *voxel.World
	Camera   *renderer.Camera // Defaults to renderer.NewDefaultCamera
	Clock    Clock            // Defaults to a 60 Hz FixedClock
	Input    InputSource      // Defaults to an empty InputQueue
	Renderer renderer.Render
	DayNight *DayNight // Defaults to NewDayNight(DefaultDayNightRate)
	Metrics  *Metrics  // Defaults to NewMetrics
}

func NewEngine(opts Options) *Engine {
	if opts.Width <= 0 {
		opts.Width = 1024
	}
	if opts.Height <= 0 {
		opts.Height = 768
	}
	if opts.World == nil {
		opts.World = voxel.NewWorld(nil)
	}
	if opts.Camera == nil {
		opts.Camera = renderer.NewDefaultCamera(opts.Width, opts.Height)
	}
	if opts.Clock == nil {
		opts.Clock = FixedClock{Step: 1.0 / 60.0}
	}
	if opts.Input == nil {
		opts.Input = NewInputQueue()
	}
	if opts.DayNight == nil {
		opts.DayNight = NewDayNight(DefaultDayNightRate)
	}
	if opts.Metrics == nil {
		opts.Metrics = NewMetrics()
	}

	return &Engine{
		Width:      opts.Width,
		Height:     opts.Height,
		World:      opts.World,
		Camera:     opts.Camera,
		DayNight:   opts.DayNight,
		Components: behaviour.NewComponentManager(),
		Metrics:    opts.Metrics,
		clock:      opts.Clock,
		input:      opts.Input,
		renderer:   opts.Renderer,
		editor:     voxel.NewEditController(opts.World, int(opts.Width), int(opts.Height)),
		selected:   voxel.DefaultBlockType,
	}
}

// SetSelectedType sets the block type placed by secondary clicks
func (e *Engine) SetSelectedType(t voxel.BlockType) {
	e.selected = t
	logger.Log.Info("Selected block type", zap.String("type", string(t)))
}

func (e *Engine) SelectedType() voxel.BlockType {
	return e.selected
}

// Resize updates the viewport used for picking and the camera aspect ratio
func (e *Engine) Resize(width, height int32) {
	if width <= 0 || height <= 0 {
		return
	}
	e.Width, e.Height = width, height
	e.editor.Width, e.editor.Height = int(width), int(height)
	e.Camera.SetAspectRatio(float32(width) / float32(height))
}

// Frame returns how many frames have been stepped
func (e *Engine) Frame() uint64 {
	return e.frame
}

// Step runs one frame
func (e *Engine) Step() {
	deltaTime := e.clock.Tick()

	e.DayNight.Tick(deltaTime)
	e.Components.UpdateAll(deltaTime)

	for _, ev := range e.input.Poll() {
		e.HandlePointer(ev)
	}

	if e.renderer != nil {
		e.renderer.Render(e.buildFrame())
	}

	e.frame++
	e.Metrics.frames.Inc()
	e.Metrics.blocks.Set(float64(e.World.Len()))
}

// Run steps the given number of frames
func (e *Engine) Run(frames int) {
	for i := 0; i < frames; i++ {
		e.Step()
	}
}

// HandlePointer applies one pointer event to the world
func (e *Engine) HandlePointer(ev voxel.PointerEvent) voxel.EditResult {
	res, err := e.editor.OnPointerEvent(ev, *e.Camera, e.selected)
	e.Metrics.observeEdit(res, err)

	if err != nil {
		logger.Log.Warn("Edit failed",
			zap.String("target", res.Target.String()),
			zap.Error(err))
		return res
	}
	if res.HasHit {
		logger.Log.Debug("Pointer edit",
			zap.String("action", res.Action.String()),
			zap.String("target", res.Target.String()),
			zap.Bool("changed", res.Changed))
	}
	return res
}

func (e *Engine) buildFrame() renderer.Frame {
	visible := e.World.VisibleInstances()
	handles := make([]renderer.InstanceHandle, len(visible))
	for i, v := range visible {
		handles[i] = v.Handle
	}

	return renderer.Frame{
		Camera:     *e.Camera,
		Ambient:    e.DayNight.Ambient,
		Sun:        e.DayNight.Sun,
		Background: e.DayNight.Background,
		Instances:  handles,
	}
}
