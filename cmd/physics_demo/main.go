// Command physics_demo opens a window onto a box physics arena.
package main

import (
	"flag"
	"fmt"
	"os"

	"boxphys/internal/config"
	"boxphys/internal/game"
	"boxphys/internal/logging"
	"boxphys/internal/physics"
	"boxphys/internal/world"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "physics.yaml", "physics config YAML; missing means defaults")
	bodies := flag.Int("bodies", 150, "crates dropped into the arena")
	seed := flag.Int64("seed", 1, "arena layout seed")
	flag.Parse()

	if err := run(*configPath, *bodies, *seed); err != nil {
		fmt.Fprintln(os.Stderr, "physics_demo:", err)
		os.Exit(1)
	}
}

func run(configPath string, bodies int, seed int64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, "console")
	if err != nil {
		return err
	}
	defer logger.Sync()

	p := physics.NewWorld(cfg, logger.Named("physics"), nil)
	defer p.Close()

	logger.Info("starting demo", zap.Int("bodies", bodies), zap.Int64("seed", seed))
	game.New(world.New(p, logger), logger, bodies, seed).Run()
	return nil
}
