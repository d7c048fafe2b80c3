//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"boids-sim/internal/config"
	"boids-sim/internal/loop"
	"boids-sim/internal/visualization"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := config.Default()
	cfg.Bind(flag.CommandLine)
	configPath := flag.String("config", "", "TOML config file")
	flag.Parse()

	if *configPath != "" {
		undecoded, err := cfg.LoadOver(*configPath, flag.CommandLine)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		for _, key := range undecoded {
			log.Printf("Warning: unknown config key %q", key)
		}
	}

	sim, err := cfg.Build()
	if err != nil {
		log.Fatalf("Error creating simulation: %v", err)
	}

	renderer := visualization.NewRenderer(sim, loop.NewClock(cfg.TPS))
	size := sim.World().Size

	ebiten.SetWindowTitle("boids-sim")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(size.X), int(size.Y))
	if cfg.FPS > 0 {
		ebiten.SetTPS(cfg.FPS)
	}

	if err := ebiten.RunGame(renderer); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
