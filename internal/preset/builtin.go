package preset

import (
	"math"

	"boids-sim/internal/common"
	"boids-sim/internal/simulation"
)

func init() {
	Register(Preset{
		Name:        "prototype-300",
		Description: "LED prototype with 10 columns of 3 boids",
		Apply:       prototype(10),
	})
	Register(Preset{
		Name:        "prototype-600",
		Description: "LED prototype with 20 columns of 3 boids",
		Apply:       prototype(20),
	})
	Register(Preset{
		Name:        "smooth-follow",
		Description: "slow 14x14 grid of boids that only avoid each other",
		Apply:       smoothFollow,
	})
	Register(Preset{
		Name:        "attract-constant",
		Description: "retune the boids and add a world-wide attractor at the centre",
		Apply:       attractConstant,
	})
	Register(Preset{
		Name:        "attract-cascading",
		Description: "retune the boids and add a ring-shaped attractor at the centre",
		Apply:       attractCascading,
	})
}

// Prototype panel geometry: one column is 105 units wide and the panel is 500
// units tall.
const (
	prototypeColumnWidth = 105
	prototypeHeight      = 500
	prototypeRows        = 3
)

func prototype(cols int) Func {
	return func(sim *simulation.Simulation, _ simulation.BoidOptions) (simulation.BoidOptions, error) {
		if err := sim.World().Resize(prototypeColumnWidth*float64(cols), prototypeHeight); err != nil {
			return simulation.BoidOptions{}, err
		}
		boid := simulation.BoidOptions{
			Color:           simulation.Ptr("#f5f5f5"),
			MinSpeed:        simulation.Ptr(0.5),
			AvoidRadius:     simulation.Ptr(108.0),
			VisionRadius:    simulation.Ptr(120.0),
			EdgeMargin:      simulation.Ptr(50.0),
			EdgeTurnFactor:  simulation.Ptr(0.5),
			CenteringFactor: simulation.Ptr(0.0001),
			MatchingFactor:  simulation.Ptr(0.015),
			PrototypeTweaks: simulation.Ptr(true),
		}
		sim.KillAllOfKind(simulation.KindBoid)
		spawnBoids(sim, boid, cols, prototypeRows)
		return boid, nil
	}
}

func smoothFollow(sim *simulation.Simulation, _ simulation.BoidOptions) (simulation.BoidOptions, error) {
	boid := simulation.BoidOptions{
		Color:          simulation.Ptr("#faebd7"),
		Size:           simulation.Ptr(35.0),
		MinSpeed:       simulation.Ptr(0.0),
		MaxSpeed:       simulation.Ptr(0.5),
		AvoidRadius:    simulation.Ptr(80.0),
		AvoidFactor:    simulation.Ptr(0.004),
		VisionRadius:   simulation.Ptr(0.0),
		EdgeMargin:     simulation.Ptr(0.0),
		EdgeTurnFactor: simulation.Ptr(0.04),
	}
	sim.KillAll()
	spawnBoids(sim, boid, 14, 14)
	return boid, nil
}

func attractConstant(sim *simulation.Simulation, boid simulation.BoidOptions) (simulation.BoidOptions, error) {
	boid = boid.Merge(simulation.BoidOptions{
		MinSpeed:       simulation.Ptr(1.5),
		MaxSpeed:       simulation.Ptr(5.0),
		AvoidRadius:    simulation.Ptr(40.0),
		AvoidFactor:    simulation.Ptr(0.04),
		VisionRadius:   simulation.Ptr(200.0),
		MatchingFactor: simulation.Ptr(0.004),
		EdgeMargin:     simulation.Ptr(50.0),
		EdgeTurnFactor: simulation.Ptr(0.2),
	})
	retune(sim, boid)

	world := sim.World()
	sim.Spawn(simulation.NewAttractor(world.Center(), simulation.AttractorOptions{
		Strength: &simulation.Ramp{Start: 0.25, End: 0.5},
		Radius:   &simulation.Ramp{Start: 0, End: world.Diagonal()},
	}))
	return boid, nil
}

func attractCascading(sim *simulation.Simulation, boid simulation.BoidOptions) (simulation.BoidOptions, error) {
	boid = boid.Merge(simulation.BoidOptions{
		MinSpeed:        simulation.Ptr(1.5),
		MaxSpeed:        simulation.Ptr(5.0),
		AvoidRadius:     simulation.Ptr(40.0),
		AvoidFactor:     simulation.Ptr(0.04),
		VisionRadius:    simulation.Ptr(320.0),
		CenteringFactor: simulation.Ptr(0.001),
		MatchingFactor:  simulation.Ptr(0.01),
		EdgeMargin:      simulation.Ptr(50.0),
		EdgeTurnFactor:  simulation.Ptr(0.2),
	})
	retune(sim, boid)

	world := sim.World()
	shortSide := math.Min(world.Size.X, world.Size.Y)
	sim.Spawn(simulation.NewAttractor(world.Center(), simulation.AttractorOptions{
		Strength: &simulation.Ramp{Start: 0.3, End: 0},
		Radius:   &simulation.Ramp{Start: shortSide / 8, End: shortSide / 2},
	}))
	return boid, nil
}

// spawnBoids fills the world with a cols × rows grid of boids using opts.
// Placement comes from the grid, so opts.Position is ignored.
func spawnBoids(sim *simulation.Simulation, opts simulation.BoidOptions, cols, rows int) {
	opts.Position = nil
	sim.SpawnGrid(func(x, y float64) simulation.Entity {
		return simulation.NewBoidWithRand(sim.Rand(), common.NewVector2(x, y), opts)
	}, cols, rows)
}

// retune applies the flocking parameters of opts to every live boid, leaving
// positions and velocities alone.
func retune(sim *simulation.Simulation, opts simulation.BoidOptions) {
	opts.Position, opts.Velocity = nil, nil
	for _, b := range sim.Boids() {
		b.ApplyOptions(opts)
	}
}
