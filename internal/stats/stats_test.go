package stats

import (
	"math"
	"strings"
	"testing"

	"boids-sim/internal/common"
	"boids-sim/internal/simulation"
)

const tolerance = 1e-9

func TestSpeedMoments(t *testing.T) {
	mean, sd := SpeedMoments([]float64{3, 6}, []float64{4, 8})
	if math.Abs(mean-7.5) > tolerance || math.Abs(sd-math.Sqrt(12.5)) > tolerance {
		t.Fatalf("SpeedMoments = %g ± %g, want 7.5 ± %g", mean, sd, math.Sqrt(12.5))
	}
	if mean, sd := SpeedMoments([]float64{0}, []float64{2}); mean != 2 || sd != 0 {
		t.Fatalf("single sample = %g ± %g", mean, sd)
	}
	if mean, sd := SpeedMoments(nil, nil); mean != 0 || sd != 0 {
		t.Fatalf("no samples = %g ± %g", mean, sd)
	}
}

func TestPolarization(t *testing.T) {
	if p := Polarization([]float64{1, 5, 0.1}, []float64{1, 5, 0.1}); math.Abs(p-1) > tolerance {
		t.Errorf("aligned flock polarization = %g, want 1", p)
	}
	if p := Polarization([]float64{1, -1}, []float64{0, 0}); math.Abs(p) > tolerance {
		t.Errorf("opposed flock polarization = %g, want 0", p)
	}
	if p := Polarization([]float64{2, 0}, []float64{0, 0}); math.Abs(p-0.5) > tolerance {
		t.Errorf("half stationary polarization = %g, want 0.5", p)
	}
}

func TestSpread(t *testing.T) {
	if s := Spread([]float64{0, 2}, []float64{0, 0}); math.Abs(s-1) > tolerance {
		t.Errorf("Spread = %g, want 1", s)
	}
	if s := Spread([]float64{0, 6, 0, 6}, []float64{0, 0, 8, 8}); math.Abs(s-5) > tolerance {
		t.Errorf("Spread = %g, want 5", s)
	}
	if Spread(nil, nil) != 0 {
		t.Error("Spread of nothing must be 0")
	}
}

func TestPrincipalAxis(t *testing.T) {
	cases := []struct {
		name   string
		xs, ys []float64
		want   float64
	}{
		{"horizontal", []float64{0, 10, 20, 30}, []float64{5, 5.1, 4.9, 5}, 0},
		{"diagonal", []float64{0, 1, 2, 3}, []float64{0, 1, 2, 3}, math.Pi / 4},
		{"anti-diagonal", []float64{0, 1, 2, 3}, []float64{3, 2, 1, 0}, -math.Pi / 4},
	}
	for _, c := range cases {
		got, ok := PrincipalAxis(c.xs, c.ys)
		if !ok {
			t.Fatalf("%s: PrincipalAxis failed", c.name)
		}
		if math.Abs(got-c.want) > 0.01 {
			t.Errorf("%s: axis = %g, want %g", c.name, got, c.want)
		}
	}

	vertical, ok := PrincipalAxis([]float64{1, 1, 1}, []float64{0, 4, 9})
	if !ok || math.Abs(math.Abs(vertical)-math.Pi/2) > 1e-6 {
		t.Errorf("vertical axis = %g, %v", vertical, ok)
	}
	if _, ok := PrincipalAxis([]float64{1}, []float64{1}); ok {
		t.Error("a single point has no axis")
	}
}

func TestElongation(t *testing.T) {
	if e := Elongation([]float64{0, 1, 2}, []float64{0, 2, 4}); math.Abs(e-1) > 1e-6 {
		t.Errorf("collinear elongation = %g, want 1", e)
	}
	if e := Elongation([]float64{0, 1, 0, 1}, []float64{0, 0, 1, 1}); math.Abs(e-0.5) > 1e-6 {
		t.Errorf("square elongation = %g, want 0.5", e)
	}
	if e := Elongation([]float64{3, 3}, []float64{3, 3}); e != 0 {
		t.Errorf("coincident points elongation = %g, want 0", e)
	}
}

func TestSummarize(t *testing.T) {
	sim, err := simulation.NewSimulation(1000, 1000)
	if err != nil {
		t.Fatal(err)
	}
	if s := Summarize(sim); s.Boids != 0 || s.HasAxis {
		t.Fatalf("empty summary = %+v", s)
	}

	for _, p := range []common.Vector2{{X: 100, Y: 500}, {X: 300, Y: 500}} {
		sim.Spawn(simulation.NewBoid(p, simulation.BoidOptions{
			Velocity: simulation.Ptr(common.NewVector2(0, 4)),
		}))
	}
	s := Summarize(sim)
	if s.Boids != 2 || s.Tick != 0 {
		t.Fatalf("summary counts = %d boids at tick %d", s.Boids, s.Tick)
	}
	if !s.Centroid.Equals(common.NewVector2(200, 500)) {
		t.Errorf("centroid = %s", s.Centroid)
	}
	if math.Abs(s.MeanSpeed-4) > tolerance || math.Abs(s.Polarization-1) > tolerance {
		t.Errorf("speed %g polarization %g", s.MeanSpeed, s.Polarization)
	}
	if math.Abs(s.Spread-100) > tolerance || !s.HasAxis || math.Abs(s.Axis) > 1e-6 {
		t.Errorf("spread %g axis %g (%v)", s.Spread, s.Axis, s.HasAxis)
	}
	if !strings.Contains(s.String(), "boids=2") {
		t.Errorf("String() = %q", s.String())
	}
}
