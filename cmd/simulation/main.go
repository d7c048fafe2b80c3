package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"boids-sim/internal/config"
	"boids-sim/internal/loop"
	"boids-sim/internal/preset"
	"boids-sim/internal/simulation"
)

func main() {
	cfg := config.Default()
	cfg.Bind(flag.CommandLine)
	configPath := flag.String("config", "", "TOML config file")
	feed := flag.Bool("feed", false, "read sensor readings as \"index distance\" lines from stdin")
	listPresets := flag.Bool("presets", false, "list the available presets and exit")
	flag.Parse()

	if *listPresets {
		for _, name := range preset.Names() {
			p, _ := preset.Get(name)
			fmt.Printf("%-20s %s\n", name, p.Description)
		}
		return
	}

	if *configPath != "" {
		undecoded, err := cfg.LoadOver(*configPath, flag.CommandLine)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
		for _, key := range undecoded {
			log.Printf("Warning: unknown config key %q", key)
		}
	}

	// --- Create Simulation ---
	sim, err := cfg.Build()
	if err != nil {
		log.Fatalf("Error creating simulation: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *feed {
		go feedSensors(sim.DistanceSensors(), os.Stdin)
	}

	// --- Run Simulation ---
	runner := &loop.Runner{
		Sim:      sim,
		FPS:      cfg.FPS,
		MaxTicks: cfg.Ticks,
		LogEvery: cfg.LogEvery,
	}
	if cfg.Realtime {
		runner.Clock = loop.NewClock(cfg.TPS)
	}
	if cfg.Probe {
		runner.Probe = &simulation.Probe{Noise: cfg.ProbeNoiseFunc()}
	}

	if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Simulation stopped: %v", err)
	}
}

// feedSensors forwards readings from r to the sensors until r is exhausted.
// Each line is a sensor index and a distance; malformed lines are logged and
// skipped.
func feedSensors(sensors []*simulation.DistanceSensor, r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		index, distance, err := parseReading(line, len(sensors))
		if err != nil {
			log.Printf("Warning: ignoring reading %q: %v", line, err)
			continue
		}
		sensors[index].SetDistance(distance)
	}
	if err := scanner.Err(); err != nil {
		log.Printf("Warning: sensor feed stopped: %v", err)
	}
}

func parseReading(line string, sensors int) (int, float64, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want \"index distance\", got %d fields", len(fields))
	}
	index, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad sensor index: %w", err)
	}
	if index < 0 || index >= sensors {
		return 0, 0, fmt.Errorf("sensor index %d out of range [0,%d)", index, sensors)
	}
	distance, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("bad distance: %w", err)
	}
	return index, distance, nil
}
