package engine

import (
	"math"

	"Voxelbox/internal/renderer"

	"github.com/go-gl/mathgl/mgl32"
)

const DefaultDayNightRate = 0.02

var (
	NightColor = renderer.ColorFromHex(0x0a0a2a)
	DayColor   = renderer.ColorFromHex(0x87ceeb)

	sunPosition = mgl32.Vec3{100, 100, 0}
	white       = mgl32.Vec3{1, 1, 1}
)

// DayNight accumulates time and derives the light levels and sky color
type DayNight struct {
	Rate       float64 // Phase advance per second
	Time       float64 // Accumulated phase
	Brightness float64 // 0 at midnight, 1 at noon

	Ambient    renderer.Light
	Sun        renderer.Light
	Background mgl32.Vec3
}

func NewDayNight(rate float64) *DayNight {
	d := &DayNight{Rate: rate}
	d.apply()
	return d
}

func (d *DayNight) Tick(deltaTime float64) {
	d.Time += deltaTime * d.Rate
	d.apply()
}

func (d *DayNight) apply() {
	t := (math.Sin(d.Time) + 1) / 2
	d.Brightness = t

	d.Ambient = renderer.CreateAmbientLight(white, float32(0.3+0.7*t))
	d.Sun = renderer.CreateDirectionalLight(sunPosition, white, float32(0.2+0.8*t))
	d.Background = lerp(NightColor, DayColor, float32(t))
}

func lerp(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
