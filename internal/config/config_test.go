package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, float32(100), cfg.WorldSize)
	assert.Equal(t, 100, cfg.NodeCapacity)
	assert.Equal(t, 60, cfg.TickRate)
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physics.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world_size: 500\ngravity:\n  y: -0.01\nworkers: 3\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, float32(500), cfg.WorldSize)
	assert.Equal(t, float32(-0.01), cfg.Gravity.Y)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 100, cfg.NodeCapacity, "untouched fields keep defaults")
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physics.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world_size: [1, 2"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physics.yaml")
	cfg := Default()
	cfg.TickRate = 120
	cfg.WorldCenter = Vec3{X: 1, Y: 2, Z: 3}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PHYSICS_WORKERS", "6")
	t.Setenv("PHYSICS_WORLD_SIZE", "250.5")
	t.Setenv("PHYSICS_TICK_RATE", "not-a-number")
	t.Setenv("PHYSICS_LOG_LEVEL", "DEBUG")

	cfg := Default()
	cfg.ApplyEnv()
	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, float32(250.5), cfg.WorldSize)
	assert.Equal(t, 60, cfg.TickRate)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Physics){
		"world size":     func(c *Physics) { c.WorldSize = 0 },
		"node capacity":  func(c *Physics) { c.NodeCapacity = -1 },
		"workers":        func(c *Physics) { c.Workers = -2 },
		"max iterations": func(c *Physics) { c.MaxIterations = 0 },
		"epsilon":        func(c *Physics) { c.Epsilon = 0 },
		"tick rate":      func(c *Physics) { c.TickRate = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
