package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voxelbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 32, cfg.World.Size)
	assert.Equal(t, 0.03, cfg.World.TreeChance)
	assert.Equal(t, [3]float32{10, 12, 20}, cfg.Camera.Position)
	assert.Equal(t, 12, cfg.Animals.Count)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
world:
  size: 16
  seed: 42
  height_mode: perlin
  workers: 4
render:
  max_instances: 100
camera:
  position: [1, 2, 3]
log:
  level: debug
metrics:
  addr: ":2112"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 16, cfg.World.Size)
	assert.Equal(t, int64(42), cfg.World.Seed)
	assert.Equal(t, HeightModePerlin, cfg.World.HeightMode)
	assert.Equal(t, 4, cfg.World.Workers)
	assert.Equal(t, 100, cfg.Render.MaxInstances)
	assert.Equal(t, [3]float32{1, 2, 3}, cfg.Camera.Position)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":2112", cfg.Metrics.Addr)

	// Untouched fields keep their defaults
	assert.Equal(t, 0.03, cfg.World.TreeChance)
	assert.Equal(t, int32(1024), cfg.Render.Width)
	assert.Equal(t, [3]float32{8, 4, 8}, cfg.Camera.Target)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"size":        "world:\n  size: -1\n",
		"tree chance": "world:\n  tree_chance: 1.5\n",
		"height mode": "world:\n  height_mode: cliffs\n",
		"dimensions":  "render:\n  width: -5\n",
		"syntax":      "world: [",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}
