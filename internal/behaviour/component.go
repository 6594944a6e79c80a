package behaviour

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Component is the base interface for all components
// Components are attached to game objects and ticked once per frame
type Component interface {
	// Lifecycle methods
	Awake()                   // Called when component is attached
	Start()                   // Called before first Update
	Update(deltaTime float64) // Called every frame with seconds since the previous frame
	OnDestroy()               // Called when component/object is destroyed

	// Component info
	GetEnabled() bool
	SetEnabled(bool)
	GetGameObject() *GameObject
	SetGameObject(*GameObject)
}

// BaseComponent provides default implementations for all Component methods
// Scripts can embed this to only override methods they need
type BaseComponent struct {
	enabled    bool
	gameObject *GameObject
}

func (c *BaseComponent) Awake()                   {}
func (c *BaseComponent) Start()                   {}
func (c *BaseComponent) Update(deltaTime float64) {}
func (c *BaseComponent) OnDestroy()               {}

func (c *BaseComponent) GetEnabled() bool {
	return c.enabled
}

func (c *BaseComponent) SetEnabled(enabled bool) {
	c.enabled = enabled
}

func (c *BaseComponent) GetGameObject() *GameObject {
	return c.gameObject
}

func (c *BaseComponent) SetGameObject(obj *GameObject) {
	c.gameObject = obj
}

// GameObject represents an entity in the scene
type GameObject struct {
	ID         string
	Name       string
	Tag        string
	Active     bool
	Transform  *Transform
	Components []Component
	started    bool
}

// Transform holds an object's placement in world space
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

func (t *Transform) Translate(delta mgl32.Vec3) {
	t.Position = t.Position.Add(delta)
}

func (t *Transform) SetPosition(pos mgl32.Vec3) {
	t.Position = pos
}

func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.Scale = scale
}

func (t *Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		ID:         uuid.NewString(),
		Name:       name,
		Active:     true,
		Components: make([]Component, 0),
		Transform: &Transform{
			Position: mgl32.Vec3{0, 0, 0},
			Rotation: mgl32.QuatIdent(),
			Scale:    mgl32.Vec3{1, 1, 1},
		},
	}
}

func (obj *GameObject) AddComponent(component Component) {
	component.SetGameObject(obj)
	component.SetEnabled(true)
	obj.Components = append(obj.Components, component)
	component.Awake()
}

func (obj *GameObject) RemoveComponent(component Component) {
	for i, comp := range obj.Components {
		if comp == component {
			comp.OnDestroy()
			obj.Components = append(obj.Components[:i], obj.Components[i+1:]...)
			return
		}
	}
}

func (obj *GameObject) internalStart() {
	if obj.started || !obj.Active {
		return
	}
	obj.started = true

	for _, comp := range obj.Components {
		if comp.GetEnabled() {
			comp.Start()
		}
	}
}

func (obj *GameObject) internalUpdate(deltaTime float64) {
	if !obj.Active {
		return
	}
	obj.internalStart()

	for _, comp := range obj.Components {
		if comp.GetEnabled() {
			comp.Update(deltaTime)
		}
	}
}

func (obj *GameObject) Destroy() {
	for _, comp := range obj.Components {
		comp.OnDestroy()
	}
	obj.Active = false
}
