// Package config holds the settings for one physics session.
//
// Values come from Default(), optionally overlaid by a YAML file (Load) and
// then by environment variables (ApplyEnv).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid physics config")

// Vec3 is a plain vector for config files.
type Vec3 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Physics configures the collision world and its tick loop.
type Physics struct {
	// WorldSize is the edge length of the cube the partition tree covers.
	WorldSize   float32 `yaml:"world_size"`
	WorldCenter Vec3    `yaml:"world_center"`
	// NodeCapacity is how many colliders a tree leaf holds before splitting.
	NodeCapacity int `yaml:"node_capacity"`
	// Workers sizes the narrow-phase pool. 0 means one per CPU.
	Workers       int     `yaml:"workers"`
	MaxIterations int     `yaml:"max_iterations"`
	Epsilon       float32 `yaml:"epsilon"`
	// Gravity is added to every body's velocity once per tick, in units per tick.
	Gravity  Vec3   `yaml:"gravity"`
	TickRate int    `yaml:"tick_rate"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the settings used when nothing else is configured.
func Default() Physics {
	return Physics{
		WorldSize:     100,
		NodeCapacity:  100,
		Workers:       0,
		MaxIterations: 100,
		Epsilon:       0.001,
		// 9.81 u/s^2 at 60 ticks per second, expressed per tick.
		Gravity:  Vec3{Y: -0.0027},
		TickRate: 60,
		LogLevel: "info",
	}
}

// Load reads a YAML file over Default(). A missing file is not an error.
func Load(path string) (Physics, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func Save(path string, cfg Physics) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from PHYSICS_* environment variables.
func (c *Physics) ApplyEnv() {
	if n := getEnvInt("PHYSICS_WORKERS", -1); n >= 0 {
		c.Workers = n
	}
	if f := getEnvFloat("PHYSICS_WORLD_SIZE", 0); f > 0 {
		c.WorldSize = f
	}
	if n := getEnvInt("PHYSICS_TICK_RATE", 0); n > 0 {
		c.TickRate = n
	}
	if n := getEnvInt("PHYSICS_NODE_CAPACITY", 0); n > 0 {
		c.NodeCapacity = n
	}
	if s := os.Getenv("PHYSICS_LOG_LEVEL"); s != "" {
		c.LogLevel = strings.ToLower(s)
	}
}

// Validate reports the first unusable value.
func (c Physics) Validate() error {
	switch {
	case c.WorldSize <= 0:
		return fmt.Errorf("%w: world_size must be positive, got %v", ErrInvalidConfig, c.WorldSize)
	case c.NodeCapacity <= 0:
		return fmt.Errorf("%w: node_capacity must be positive, got %d", ErrInvalidConfig, c.NodeCapacity)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	case c.MaxIterations <= 0:
		return fmt.Errorf("%w: max_iterations must be positive, got %d", ErrInvalidConfig, c.MaxIterations)
	case c.Epsilon <= 0:
		return fmt.Errorf("%w: epsilon must be positive, got %v", ErrInvalidConfig, c.Epsilon)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	}
	return nil
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float32) float32 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(f)
		}
	}
	return fallback
}
