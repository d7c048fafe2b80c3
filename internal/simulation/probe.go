package simulation

import (
	"math"
	"math/rand/v2"
)

// NoiseFunction perturbs a true distance into a measured one, drawing from r.
type NoiseFunction func(r *rand.Rand, trueDistance float64) float64

// NoNoise is a NoiseFunction that adds no noise.
func NoNoise(_ *rand.Rand, trueDistance float64) float64 {
	return trueDistance
}

// GaussianNoise creates a NoiseFunction that adds normally distributed noise.
func GaussianNoise(stdDev float64) NoiseFunction {
	stdDev = math.Max(0, stdDev)
	return func(r *rand.Rand, trueDistance float64) float64 {
		if stdDev == 0 {
			return trueDistance
		}
		return trueDistance + r.NormFloat64()*stdDev
	}
}

// UniformNoise creates a NoiseFunction that adds noise in [-maxDelta, +maxDelta].
func UniformNoise(maxDelta float64) NoiseFunction {
	maxDelta = math.Max(0, maxDelta)
	return func(r *rand.Rand, trueDistance float64) float64 {
		return trueDistance + (r.Float64()*2-1)*maxDelta
	}
}

// PercentageNoise creates a NoiseFunction whose noise is a uniform fraction of
// the true distance, e.g. 0.05 for ±5%.
func PercentageNoise(percentage float64) NoiseFunction {
	percentage = math.Max(0, percentage)
	return func(r *rand.Rand, trueDistance float64) float64 {
		return trueDistance + (r.Float64()*2-1)*trueDistance*percentage
	}
}

// Probe stands in for sensor hardware: it measures the distance from each
// DistanceSensor to the nearest boid and feeds it back through SetDistance.
type Probe struct {
	Noise NoiseFunction
}

// Measure returns the noisy distance from s to the nearest boid within
// s.MaxDistance, and false if none is in range. Noise is drawn from the
// simulation's random source, so seeded runs measure the same readings.
func (p Probe) Measure(s *DistanceSensor) (float64, bool) {
	if s.sim == nil {
		return 0, false
	}
	nearest := math.Inf(1)
	s.sim.entities.each(KindBoid, func(e Entity) {
		if d := s.position.Distance(e.Position()); d < nearest {
			nearest = d
		}
	})
	if nearest > s.MaxDistance {
		return 0, false
	}

	measured := nearest
	if p.Noise != nil {
		measured = p.Noise(s.sim.Rand(), nearest)
	}
	// A reading of exactly zero means no detection, so keep hits positive.
	return math.Max(measured, math.SmallestNonzeroFloat64), true
}

// Feed measures every sensor of sim and records the readings.
func (p Probe) Feed(sim *Simulation) {
	for _, s := range sim.DistanceSensors() {
		d, ok := p.Measure(s)
		if !ok {
			d = 0
		}
		s.SetDistance(d)
	}
}
