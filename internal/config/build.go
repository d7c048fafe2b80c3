package config

import (
	"fmt"

	"boids-sim/internal/common"
	"boids-sim/internal/preset"
	"boids-sim/internal/simulation"
)

// Build validates c and creates the simulation it describes: the boid grid
// (or the preset, which replaces it), then the attractors and sensors.
func (c *Config) Build() (*simulation.Simulation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sim, err := simulation.NewSimulation(c.World.Width, c.World.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}
	if c.Seed != 0 {
		sim.SetSeed(c.Seed)
	}
	sim.SetWorkers(c.Workers)

	if c.Preset != "" {
		if c.Boid, err = preset.Apply(c.Preset, sim, c.Boid); err != nil {
			return nil, err
		}
	} else {
		boid := c.Boid
		boid.Position = nil
		sim.SpawnGrid(func(x, y float64) simulation.Entity {
			return simulation.NewBoidWithRand(sim.Rand(), common.NewVector2(x, y), boid)
		}, c.Grid.Cols, c.Grid.Rows)
	}

	for _, a := range c.Attractors {
		opts := c.Attractor.Merge(a.AttractorOptions)
		kind, _ := parseAttractorKind(a.Kind)
		if kind == simulation.KindAttractorLine {
			sim.Spawn(simulation.NewAttractorLine(common.Vector2{}, opts))
		} else {
			sim.Spawn(simulation.NewAttractor(common.Vector2{}, opts))
		}
	}
	for _, s := range c.Sensors {
		sim.Spawn(simulation.NewDistanceSensor(common.Vector2{}, s))
	}
	return sim, nil
}

// ProbeNoiseFunc returns the noise model for the sensor probe.
func (c *Config) ProbeNoiseFunc() simulation.NoiseFunction {
	if c.ProbeNoise <= 0 {
		return simulation.NoNoise
	}
	return simulation.UniformNoise(c.ProbeNoise)
}
