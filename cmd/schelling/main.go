//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"schelling/internal/app"
	"schelling/internal/core"
	"schelling/internal/logging"
	"schelling/internal/sims/schelling"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	cfg.Normalize()

	logger := logging.NewLogger(cfg.LogLevel, os.Stderr)

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q (available: %v)", cfg.Sim, core.Names())
	}

	var params map[string]string
	if cfg.ConfigPath != "" {
		world, err := schelling.LoadFile(cfg.ConfigPath)
		if err != nil {
			log.Fatal(err)
		}
		world.ApplyEnv()
		if err := world.Validate(); err != nil {
			log.Fatal(err)
		}
		params = world.Map()
	}

	sim := factory(params)
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.HUDWidth, cfg.Seed, logger)
	size := sim.Size()

	ebiten.SetWindowTitle("Schelling segregation - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	logger.Info("starting", "sim", sim.Name(), "width", size.W, "height", size.H, "tps", cfg.TPS)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
