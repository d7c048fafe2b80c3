// Package stats summarises the state of a flock for logging and display.
package stats

import (
	"fmt"
	"math"

	"boids-sim/internal/common"
	"boids-sim/internal/simulation"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the boids of a simulation at one instant.
type Summary struct {
	Tick  uint64
	Boids int

	MeanSpeed   float64
	SpeedStdDev float64

	// Polarization is the length of the mean unit heading: 1 when every boid
	// flies the same way, near 0 for a disordered flock.
	Polarization float64

	Centroid common.Vector2
	// Spread is the root mean square distance of the boids from the centroid.
	Spread float64

	// Axis is the angle of the flock's principal axis, valid when HasAxis.
	Axis    float64
	HasAxis bool
	// Elongation is the share of positional variance along Axis.
	Elongation float64
}

// Summarize computes a Summary of the live boids of sim.
func Summarize(sim *simulation.Simulation) Summary {
	boids := sim.Boids()
	s := Summary{Tick: sim.Ticks(), Boids: len(boids)}
	if len(boids) == 0 {
		return s
	}

	xs := make([]float64, len(boids))
	ys := make([]float64, len(boids))
	vxs := make([]float64, len(boids))
	vys := make([]float64, len(boids))
	for i, b := range boids {
		p, v := b.Position(), b.Velocity()
		xs[i], ys[i] = p.X, p.Y
		vxs[i], vys[i] = v.X, v.Y
	}

	s.MeanSpeed, s.SpeedStdDev = SpeedMoments(vxs, vys)
	s.Polarization = Polarization(vxs, vys)
	s.Centroid = common.NewVector2(stat.Mean(xs, nil), stat.Mean(ys, nil))
	s.Spread = Spread(xs, ys)
	s.Axis, s.HasAxis = PrincipalAxis(xs, ys)
	s.Elongation = Elongation(xs, ys)
	return s
}

// SpeedMoments returns the mean and standard deviation of the speeds of the
// velocities (vxs[i], vys[i]). The deviation is 0 for fewer than two samples.
func SpeedMoments(vxs, vys []float64) (mean, stdDev float64) {
	speeds := make([]float64, len(vxs))
	for i := range vxs {
		speeds[i] = math.Hypot(vxs[i], vys[i])
	}
	switch len(speeds) {
	case 0:
		return 0, 0
	case 1:
		return speeds[0], 0
	}
	return stat.MeanStdDev(speeds, nil)
}

// Polarization returns the length of the mean unit velocity. Stationary
// boids count towards the mean with a zero heading.
func Polarization(vxs, vys []float64) float64 {
	if len(vxs) == 0 {
		return 0
	}
	hx := make([]float64, len(vxs))
	hy := make([]float64, len(vys))
	for i := range vxs {
		if l := math.Hypot(vxs[i], vys[i]); l > 0 {
			hx[i], hy[i] = vxs[i]/l, vys[i]/l
		}
	}
	n := float64(len(vxs))
	return math.Hypot(floats.Sum(hx)/n, floats.Sum(hy)/n)
}

// Spread returns the root mean square distance of the points from their
// centroid.
func Spread(xs, ys []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	cx, cy := stat.Mean(xs, nil), stat.Mean(ys, nil)
	dx := make([]float64, len(xs))
	dy := make([]float64, len(ys))
	copy(dx, xs)
	copy(dy, ys)
	floats.AddConst(-cx, dx)
	floats.AddConst(-cy, dy)
	n := float64(len(xs))
	return math.Sqrt((floats.Dot(dx, dx) + floats.Dot(dy, dy)) / n)
}

// String representation for logging
func (s Summary) String() string {
	axis := "n/a"
	if s.HasAxis {
		axis = fmt.Sprintf("%.1f°(%.2f)", s.Axis*180/math.Pi, s.Elongation)
	}
	return fmt.Sprintf("tick=%d boids=%d speed=%.2f±%.2f polarization=%.3f centroid=%s spread=%.1f axis=%s",
		s.Tick, s.Boids, s.MeanSpeed, s.SpeedStdDev, s.Polarization, s.Centroid, s.Spread, axis)
}
