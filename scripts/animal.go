package scripts

import (
	"math"
	"math/rand"

	"Voxelbox/internal/behaviour"
	"Voxelbox/internal/renderer"
	"Voxelbox/internal/voxel"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	AnimalTag = "animal"

	SpawnCeiling       = 20 // Highest y scanned when looking for the ground
	DefaultSpawnHeight = 10 // Used when the column is empty

	DefaultAnimalSpeed      = 1.2  // Units per second
	DefaultAnimalTurnChance = 0.01 // Per tick
)

// BlockLookup is the read-only view of the world an animal needs at spawn
type BlockLookup interface {
	Has(c voxel.Coordinate) bool
}

// SurfaceHeight scans (x, z) downward from SpawnCeiling and returns the cell
// above the first occupied one, or DefaultSpawnHeight if the column is empty.
func SurfaceHeight(world BlockLookup, x, z int) int {
	for y := SpawnCeiling; y >= 0; y-- {
		if world.Has(voxel.Coordinate{X: x, Y: y, Z: z}) {
			return y + 1
		}
	}
	return DefaultSpawnHeight
}

// AnimalScript wanders on the horizontal plane. It never looks at the world after spawning.
type AnimalScript struct {
	behaviour.BaseComponent
	Speed      float32
	TurnChance float64
	Color      mgl32.Vec3
	Heading    mgl32.Vec3
	rng        *rand.Rand
}

func NewAnimalScript(rng *rand.Rand) *AnimalScript {
	return &AnimalScript{
		Speed:      DefaultAnimalSpeed,
		TurnChance: DefaultAnimalTurnChance,
		Color:      renderer.ColorFromHex(0xffe0bd + uint32(rng.Intn(10000))),
		rng:        rng,
	}
}

func (a *AnimalScript) Start() {
	if a.Heading.Len() == 0 {
		a.randomHeading()
	}
}

func (a *AnimalScript) Update(deltaTime float64) {
	transform := a.GetGameObject().Transform
	transform.Translate(a.Heading.Mul(a.Speed * float32(deltaTime)))

	if a.rng.Float64() < a.TurnChance {
		a.randomHeading()
	}
}

func (a *AnimalScript) randomHeading() {
	angle := a.rng.Float64() * math.Pi * 2
	a.Heading = mgl32.Vec3{float32(math.Cos(angle)), 0, float32(math.Sin(angle))}
}

// SpawnAnimal creates an animal standing on the column (x, z)
func SpawnAnimal(world BlockLookup, x, z int, rng *rand.Rand) (*behaviour.GameObject, *AnimalScript) {
	y := SurfaceHeight(world, x, z)

	obj := behaviour.NewGameObject("Animal")
	obj.Tag = AnimalTag
	obj.Transform.SetPosition(mgl32.Vec3{float32(x) + 0.5, float32(y) + 0.6, float32(z) + 0.5})
	obj.Transform.SetScale(mgl32.Vec3{0.8, 0.6, 1.2})

	script := NewAnimalScript(rng)
	obj.AddComponent(script)
	return obj, script
}

// SpawnAnimals places count animals on random columns in [margin, margin+span)
func SpawnAnimals(cm *behaviour.ComponentManager, world BlockLookup, count, margin, span int, rng *rand.Rand) []*AnimalScript {
	out := make([]*AnimalScript, 0, count)
	for i := 0; i < count; i++ {
		x := rng.Intn(span) + margin
		z := rng.Intn(span) + margin
		obj, script := SpawnAnimal(world, x, z, rng)
		cm.RegisterGameObject(obj)
		out = append(out, script)
	}
	return out
}
