package main

import (
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"Voxelbox/internal/config"
	"Voxelbox/internal/engine"
	"Voxelbox/internal/logger"
	"Voxelbox/internal/renderer"
	"Voxelbox/internal/voxel"
	"Voxelbox/scripts"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Animals spawn on columns in [spawnMargin, spawnMargin+spawnSpan)
const (
	spawnMargin = 2
	spawnSpan   = 24
)

// clickList collects repeated -click x,y,button flags
type clickList []voxel.PointerEvent

func (c *clickList) String() string {
	parts := make([]string, len(*c))
	for i, ev := range *c {
		parts[i] = fmt.Sprintf("%g,%g,%d", ev.ScreenX, ev.ScreenY, ev.Button)
	}
	return strings.Join(parts, " ")
}

func (c *clickList) Set(value string) error {
	ev, err := parseClick(value)
	if err != nil {
		return err
	}
	*c = append(*c, ev)
	return nil
}

func parseClick(value string) (voxel.PointerEvent, error) {
	fields := strings.Split(value, ",")
	if len(fields) != 3 {
		return voxel.PointerEvent{}, fmt.Errorf("click %q: want x,y,button", value)
	}

	x, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 32)
	if err != nil {
		return voxel.PointerEvent{}, fmt.Errorf("click %q: bad x: %w", value, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 32)
	if err != nil {
		return voxel.PointerEvent{}, fmt.Errorf("click %q: bad y: %w", value, err)
	}
	button, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return voxel.PointerEvent{}, fmt.Errorf("click %q: bad button: %w", value, err)
	}

	return voxel.PointerEvent{ScreenX: float32(x), ScreenY: float32(y), Button: voxel.Button(button)}, nil
}

func main() {
	var (
		configPath = flag.String("config", "voxelbox.yaml", "path to the YAML config")
		frames     = flag.Int("frames", 600, "number of frames to simulate")
		selected   = flag.String("block", string(voxel.DefaultBlockType), "block type placed by secondary clicks")
		clicks     clickList
	)
	flag.Var(&clicks, "click", "pointer event x,y,button replayed on the first frame (repeatable)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger.InitWithLevel(cfg.Log.Level)
	defer logger.Sync()

	if err := run(cfg, *frames, voxel.BlockType(*selected), clicks); err != nil {
		logger.Log.Error("Voxelbox failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, frames int, selected voxel.BlockType, clicks []voxel.PointerEvent) error {
	seed := cfg.World.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	pool := renderer.NewInstancePool(cfg.Render.MaxInstances)
	world := voxel.NewWorld(pool)

	gen := voxel.NewGenerator()
	gen.TreeChance = cfg.World.TreeChance
	gen.Workers = cfg.World.Workers
	if cfg.World.HeightMode == config.HeightModePerlin {
		gen.Height = voxel.PerlinHeight(seed)
	}

	start := time.Now()
	if _, err := voxel.Apply(world, gen.Generate(cfg.World.Size, rng)); err != nil {
		return err
	}
	logger.Log.Info("World generated",
		zap.Int64("seed", seed),
		zap.Int("size", cfg.World.Size),
		zap.String("heightMode", cfg.World.HeightMode),
		zap.Int("blocks", world.Len()),
		zap.Duration("elapsed", time.Since(start)))

	camera := renderer.NewDefaultCamera(cfg.Render.Width, cfg.Render.Height)
	camera.Position = mgl32.Vec3(cfg.Camera.Position)
	camera.LookAt(mgl32.Vec3(cfg.Camera.Target))
	camera.SetFov(cfg.Camera.Fov)

	input := engine.NewInputQueue()
	headless := renderer.NewHeadless(pool)
	eng := engine.NewEngine(engine.Options{
		Width:    cfg.Render.Width,
		Height:   cfg.Render.Height,
		World:    world,
		Camera:   camera,
		Clock:    engine.FixedClock{Step: 1.0 / 60.0},
		Input:    input,
		Renderer: headless,
		DayNight: engine.NewDayNight(cfg.DayNight.Rate),
	})
	if !voxel.IsKnown(selected) {
		logger.Log.Warn("Unknown block type, placing with the default material", zap.String("type", string(selected)))
	}
	eng.SetSelectedType(selected)

	animals := scripts.SpawnAnimals(eng.Components, world, cfg.Animals.Count, spawnMargin, spawnSpan, rng)
	for _, a := range animals {
		a.Speed = cfg.Animals.Speed
		a.TurnChance = cfg.Animals.TurnChance
	}
	logger.Log.Info("Animals spawned", zap.Int("count", len(animals)))

	if cfg.Metrics.Addr != "" {
		serveMetrics(cfg.Metrics.Addr, eng.Metrics)
	}

	for _, ev := range clicks {
		input.Push(ev)
	}
	eng.Run(frames)

	stats := headless.Stats()
	logger.Log.Info("Simulation finished",
		zap.Uint64("frames", eng.Frame()),
		zap.Int("blocks", world.Len()),
		zap.Int("instances", pool.Len()),
		zap.Int("drawn", stats.Drawn),
		zap.Int("stale", stats.Stale),
		zap.Float64("brightness", eng.DayNight.Brightness))
	return nil
}

func serveMetrics(addr string, metrics *engine.Metrics) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Log.Info("Serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Metrics server stopped", zap.Error(err))
		}
	}()
}
