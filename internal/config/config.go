package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	HeightModeWave   = "wave"
	HeightModePerlin = "perlin"
)

// Config is the sandbox configuration. Zero-valued fields in a file keep their defaults.
type Config struct {
	World    WorldConfig    `yaml:"world"`
	Render   RenderConfig   `yaml:"render"`
	Camera   CameraConfig   `yaml:"camera"`
	Animals  AnimalsConfig  `yaml:"animals"`
	DayNight DayNightConfig `yaml:"daynight"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type WorldConfig struct {
	Size       int     `yaml:"size"`
	Seed       int64   `yaml:"seed"` // 0 picks a time based seed
	TreeChance float64 `yaml:"tree_chance"`
	HeightMode string  `yaml:"height_mode"`
	Workers    int     `yaml:"workers"`
}

type RenderConfig struct {
	Width        int32 `yaml:"width"`
	Height       int32 `yaml:"height"`
	MaxInstances int   `yaml:"max_instances"`
}

type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	Fov      float32    `yaml:"fov"`
}

type AnimalsConfig struct {
	Count      int     `yaml:"count"`
	Speed      float32 `yaml:"speed"`
	TurnChance float64 `yaml:"turn_chance"`
}

type DayNightConfig struct {
	Rate float64 `yaml:"rate"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // Empty disables the endpoint
}

func Default() *Config {
	return &Config{
		World: WorldConfig{
			Size:       32,
			TreeChance: 0.03,
			HeightMode: HeightModeWave,
			Workers:    1,
		},
		Render: RenderConfig{
			Width:        1024,
			Height:       768,
			MaxInstances: 65536,
		},
		Camera: CameraConfig{
			Position: [3]float32{10, 12, 20},
			Target:   [3]float32{8, 4, 8},
			Fov:      75,
		},
		Animals: AnimalsConfig{
			Count:      12,
			Speed:      1.2,
			TurnChance: 0.01,
		},
		DayNight: DayNightConfig{Rate: 0.02},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads a YAML config on top of the defaults. An empty path or a
// missing file returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.World.Size <= 0 {
		return fmt.Errorf("world.size must be positive, got %d", c.World.Size)
	}
	if c.World.TreeChance < 0 || c.World.TreeChance > 1 {
		return fmt.Errorf("world.tree_chance must be in [0,1], got %g", c.World.TreeChance)
	}
	switch c.World.HeightMode {
	case HeightModeWave, HeightModePerlin:
	default:
		return fmt.Errorf("unknown world.height_mode %q", c.World.HeightMode)
	}
	if c.World.Workers < 1 {
		return fmt.Errorf("world.workers must be at least 1, got %d", c.World.Workers)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render dimensions must be positive, got %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.MaxInstances < 0 {
		return fmt.Errorf("render.max_instances must not be negative, got %d", c.Render.MaxInstances)
	}
	if c.Camera.Fov <= 0 || c.Camera.Fov >= 180 {
		return fmt.Errorf("camera.fov must be in (0,180), got %g", c.Camera.Fov)
	}
	if c.Animals.Count < 0 {
		return fmt.Errorf("animals.count must not be negative, got %d", c.Animals.Count)
	}
	if c.Animals.TurnChance < 0 || c.Animals.TurnChance > 1 {
		return fmt.Errorf("animals.turn_chance must be in [0,1], got %g", c.Animals.TurnChance)
	}
	return nil
}
