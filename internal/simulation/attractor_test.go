package simulation

import (
	"math"
	"testing"

	"boids-sim/internal/common"
)

func probeBoid(pos common.Vector2) *Boid {
	return NewBoid(pos, BoidOptions{Velocity: Ptr(common.Vector2{})})
}

func TestAttractorPullsTowardsCentre(t *testing.T) {
	a := NewAttractor(common.NewVector2(100, 100), AttractorOptions{
		Radius:   &Ramp{Start: 0, End: 200},
		Strength: &Ramp{Start: 2, End: 2},
	})
	b := probeBoid(common.NewVector2(100, 200))

	delta := a.Attract(b)
	if !approxVec(delta, common.NewVector2(0, -2)) {
		t.Fatalf("delta = %s, want [0, -2]", delta)
	}
	if !b.Velocity().Equals(delta) {
		t.Fatalf("velocity = %s, want the returned delta %s", b.Velocity(), delta)
	}
}

func TestAttractorRampMonotonic(t *testing.T) {
	a := NewAttractor(common.Vector2{}, AttractorOptions{
		Radius:   &Ramp{Start: 10, End: 100},
		Strength: &Ramp{Start: 1, End: 0},
	})

	prev := math.Inf(1)
	for d := 10.0; d <= 100; d++ {
		b := probeBoid(common.NewVector2(d, 0))
		strength := a.Attract(b).Length()
		if strength > prev+epsilon {
			t.Fatalf("strength rose from %g to %g at distance %g", prev, strength, d)
		}
		prev = strength
	}

	for _, d := range []float64{0, 5, 9.99, 100.01, 150} {
		b := probeBoid(common.NewVector2(0, d))
		if delta := a.Attract(b); !delta.IsZero() {
			t.Fatalf("distance %g outside the band gave %s", d, delta)
		}
		if !b.Velocity().IsZero() {
			t.Fatalf("distance %g outside the band changed velocity to %s", d, b.Velocity())
		}
	}
}

func TestAttractorReversedRamp(t *testing.T) {
	// Radius listed from far to near: the band is still [20, 80].
	a := NewAttractor(common.Vector2{}, AttractorOptions{
		Radius:   &Ramp{Start: 80, End: 20},
		Strength: &Ramp{Start: 0, End: 0.6},
	})
	near := a.Attract(probeBoid(common.NewVector2(20, 0))).Length()
	far := a.Attract(probeBoid(common.NewVector2(80, 0))).Length()
	if !approxEqual(near, 0.6) || !approxEqual(far, 0) {
		t.Fatalf("near=%g far=%g, want 0.6 and 0", near, far)
	}
}

func TestAttractorDegenerateRamp(t *testing.T) {
	a := NewAttractor(common.Vector2{}, AttractorOptions{
		Radius:   &Ramp{Start: 50, End: 50},
		Strength: &Ramp{Start: 0.3, End: 0.9},
	})
	got := a.Attract(probeBoid(common.NewVector2(0, 50)))
	if !approxVec(got, common.NewVector2(0, -0.3)) {
		t.Fatalf("delta = %s, want [0, -0.3]", got)
	}
}

func TestAttractorCloseRangeIsBounded(t *testing.T) {
	a := NewAttractor(common.Vector2{}, AttractorOptions{
		Radius:   &Ramp{Start: 0, End: 10},
		Strength: &Ramp{Start: 1, End: 1},
	})
	got := a.Attract(probeBoid(common.NewVector2(0.001, 0)))
	if got.Length() > 1 {
		t.Fatalf("delta at 0.001 = %s, must not exceed the strength", got)
	}
	if got := a.Attract(probeBoid(common.Vector2{})); !got.IsZero() {
		t.Fatalf("delta at the centre = %s, want zero", got)
	}
}

func TestAttractorLine(t *testing.T) {
	l := NewAttractorLine(common.NewVector2(100, 0), AttractorOptions{
		Radius:   &Ramp{Start: 0, End: 50},
		Strength: &Ramp{Start: 0.5, End: 0},
	})

	cases := []struct {
		pos  common.Vector2
		want common.Vector2
	}{
		{common.NewVector2(80, 999), common.NewVector2(0.3, 0)},
		{common.NewVector2(130, -40), common.NewVector2(-0.2, 0)},
		{common.NewVector2(100, 5), common.NewVector2(0.5, 0)},
		{common.NewVector2(200, 0), common.Vector2{}},
	}
	for _, tc := range cases {
		b := probeBoid(tc.pos)
		got := l.Attract(b)
		if !approxVec(got, tc.want) {
			t.Errorf("at %s delta = %s, want %s", tc.pos, got, tc.want)
		}
		if !approxVec(b.Velocity(), tc.want) {
			t.Errorf("at %s velocity = %s, want %s", tc.pos, b.Velocity(), tc.want)
		}
	}
}

func TestBoidSumsAllFields(t *testing.T) {
	sim := newTestSimulation(t, 1000, 1000)
	b := NewBoid(common.Vector2{}, inertBoid(common.NewVector2(500, 500), common.Vector2{}))
	sim.Spawn(b)
	sim.Spawn(NewAttractor(common.NewVector2(500, 600), AttractorOptions{
		Radius:   &Ramp{Start: 0, End: 200},
		Strength: &Ramp{Start: 1, End: 1},
	}))
	sim.Spawn(NewAttractorLine(common.NewVector2(400, 0), AttractorOptions{
		Radius:   &Ramp{Start: 0, End: 200},
		Strength: &Ramp{Start: 0.5, End: 0.5},
	}))
	sim.Tick()

	want := common.NewVector2(-0.5, 1)
	if !approxVec(b.Deltas().Attraction, want) {
		t.Fatalf("attraction = %s, want %s", b.Deltas().Attraction, want)
	}
	if !approxVec(b.Velocity(), want) {
		t.Fatalf("velocity = %s, want %s", b.Velocity(), want)
	}
}

func TestWanderingAttractorStaysInWorld(t *testing.T) {
	sim := newTestSimulation(t, 200, 100)
	a := NewAttractor(common.NewVector2(100, 50), AttractorOptions{Wander: Ptr(7.0)})
	sim.Spawn(a)

	start := a.Position()
	for i := 0; i < 500; i++ {
		sim.Tick()
		p := a.Position()
		if p.X < 0 || p.X > 200 || p.Y < 0 || p.Y > 100 {
			t.Fatalf("tick %d: attractor left the world at %s", i, p)
		}
	}
	if a.Position().Equals(start) {
		t.Fatal("wandering attractor never moved")
	}
}

func TestStaticAttractorDoesNotMove(t *testing.T) {
	sim := newTestSimulation(t, 200, 100)
	a := NewAttractor(common.NewVector2(100, 50))
	sim.Spawn(a)
	for i := 0; i < 10; i++ {
		sim.Tick()
	}
	if !a.Position().Equals(common.NewVector2(100, 50)) {
		t.Fatalf("static attractor moved to %s", a.Position())
	}
}
