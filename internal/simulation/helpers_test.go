package simulation

import (
	"math"
	"testing"

	"boids-sim/internal/common"
)

const epsilon = 1e-9

func newTestSimulation(t *testing.T, width, height float64) *Simulation {
	t.Helper()
	sim, err := NewSimulation(width, height)
	if err != nil {
		t.Fatalf("NewSimulation(%g, %g): %v", width, height, err)
	}
	sim.SetSeed(42)
	return sim
}

// inertBoid returns options that switch off every rule except the ones the
// caller sets afterwards: no speed clamp, no edges, no neighbours.
func inertBoid(pos, vel common.Vector2) BoidOptions {
	return BoidOptions{
		Position:        Ptr(pos),
		Velocity:        Ptr(vel),
		MinSpeed:        Ptr(0.0),
		MaxSpeed:        Ptr(1e9),
		AvoidRadius:     Ptr(0.0),
		AvoidFactor:     Ptr(0.0),
		VisionRadius:    Ptr(0.0),
		CenteringFactor: Ptr(0.0),
		MatchingFactor:  Ptr(0.0),
		EdgeMargin:      Ptr(0.0),
		EdgeTurnFactor:  Ptr(0.0),
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func approxVec(a, b common.Vector2) bool {
	return approxEqual(a.X, b.X) && approxEqual(a.Y, b.Y)
}
