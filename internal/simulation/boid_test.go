package simulation

import (
	"testing"

	"boids-sim/internal/common"
)

func TestSeparationSymmetry(t *testing.T) {
	sim := newTestSimulation(t, 1000, 1000)

	opts := BoidOptions{AvoidRadius: Ptr(40.0), AvoidFactor: Ptr(0.04)}
	a := NewBoid(common.Vector2{}, inertBoid(common.NewVector2(500, 500), common.Vector2{}), opts)
	b := NewBoid(common.Vector2{}, inertBoid(common.NewVector2(510, 500), common.Vector2{}), opts)
	sim.Spawn(a)
	sim.Spawn(b)
	sim.Tick()

	da, db := a.Deltas().Avoidance, b.Deltas().Avoidance
	if !approxVec(da, common.NewVector2(-1.2, 0)) {
		t.Fatalf("avoidance of A = %s, want [-1.2, 0]", da)
	}
	if !approxVec(*da.Copy().Add(db), common.Vector2{}) {
		t.Fatalf("avoidance not symmetric: A=%s B=%s", da, db)
	}
	if !approxVec(a.Velocity(), da) {
		t.Fatalf("velocity of A = %s, want %s", a.Velocity(), da)
	}
}

func TestSeparationCloserPushesHarder(t *testing.T) {
	push := func(gap float64) float64 {
		sim := newTestSimulation(t, 1000, 1000)
		opts := BoidOptions{AvoidRadius: Ptr(40.0), AvoidFactor: Ptr(1.0)}
		a := NewBoid(common.Vector2{}, inertBoid(common.NewVector2(500, 500), common.Vector2{}), opts)
		b := NewBoid(common.Vector2{}, inertBoid(common.NewVector2(500+gap, 500), common.Vector2{}), opts)
		sim.Spawn(a)
		sim.Spawn(b)
		sim.Tick()
		return a.Deltas().Avoidance.Length()
	}
	if near, far := push(5), push(30); near <= far {
		t.Fatalf("push at 5 = %g, at 30 = %g; nearer neighbour must push harder", near, far)
	}
}

func TestLoneBoidStability(t *testing.T) {
	sim := newTestSimulation(t, 1000, 1000)
	b := NewBoid(common.NewVector2(500, 500), BoidOptions{Velocity: Ptr(common.NewVector2(5, 0))})
	sim.Spawn(b)

	for i := 0; i < 10; i++ {
		sim.Tick()
		d := b.Deltas()
		if !d.Avoidance.IsZero() || !d.Centering.IsZero() || !d.Matching.IsZero() || !d.Attraction.IsZero() {
			t.Fatalf("tick %d: lone boid has deltas %+v", i, d)
		}
		if !b.Velocity().Equals(common.NewVector2(5, 0)) {
			t.Fatalf("tick %d: velocity changed to %s", i, b.Velocity())
		}
	}
	if !approxVec(b.Position(), common.NewVector2(550, 500)) {
		t.Fatalf("position = %s, want [550, 500]", b.Position())
	}
}

func TestSpeedBounds(t *testing.T) {
	sim := newTestSimulation(t, 800, 600)
	sim.Spawn(NewAttractor(sim.World().Center()))
	sim.SpawnGrid(func(x, y float64) Entity {
		return NewBoidWithRand(sim.Rand(), common.NewVector2(x, y), BoidOptions{
			MinSpeed: Ptr(2.0),
			MaxSpeed: Ptr(6.0),
		})
	}, 8, 6)

	for tick := 0; tick < 200; tick++ {
		sim.Tick()
		for _, b := range sim.Boids() {
			speed := b.Velocity().Length()
			if speed == 0 {
				continue
			}
			if speed < 2-epsilon || speed > 6+epsilon {
				t.Fatalf("tick %d: %s speed %g outside [2, 6]", tick, b.ID(), speed)
			}
		}
	}
}

func TestClampSpeed(t *testing.T) {
	cases := []struct {
		name string
		in   common.Vector2
		want common.Vector2
	}{
		{"below min", common.NewVector2(1, 0), common.NewVector2(3, 0)},
		{"above max", common.NewVector2(0, -10), common.NewVector2(0, -8)},
		{"within", common.NewVector2(3, 4), common.NewVector2(3, 4)},
		{"zero", common.Vector2{}, common.Vector2{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBoid(common.Vector2{}, BoidOptions{
				Velocity: Ptr(tc.in),
				MinSpeed: Ptr(3.0),
				MaxSpeed: Ptr(8.0),
			})
			b.clampSpeed()
			if !approxVec(b.Velocity(), tc.want) {
				t.Fatalf("clamp(%s) = %s, want %s", tc.in, b.Velocity(), tc.want)
			}
		})
	}
}

func TestEdgeSteering(t *testing.T) {
	size := common.NewVector2(1000, 1000)
	cases := []struct {
		pos  common.Vector2
		want common.Vector2
	}{
		{common.NewVector2(10, 500), common.NewVector2(0.5, 0)},
		{common.NewVector2(990, 500), common.NewVector2(-0.5, 0)},
		{common.NewVector2(500, 20), common.NewVector2(0, 0.5)},
		{common.NewVector2(990, 990), common.NewVector2(-0.5, -0.5)},
		{common.NewVector2(10, 10), common.NewVector2(0.5, 0.5)},
		{common.NewVector2(500, 500), common.Vector2{}},
	}
	for _, tc := range cases {
		b := NewBoid(tc.pos, BoidOptions{
			Velocity:       Ptr(common.Vector2{}),
			EdgeMargin:     Ptr(50.0),
			EdgeTurnFactor: Ptr(0.5),
		})
		b.steerFromEdges(size)
		if !b.Velocity().Equals(tc.want) {
			t.Errorf("at %s velocity = %s, want %s", tc.pos, b.Velocity(), tc.want)
		}
	}
}

func TestGridCohesionScenario(t *testing.T) {
	sim := newTestSimulation(t, 300, 300)
	opts := BoidOptions{
		VisionRadius:    Ptr(1000.0),
		AvoidRadius:     Ptr(0.0),
		CenteringFactor: Ptr(0.5),
		MatchingFactor:  Ptr(0.0),
	}
	sim.SpawnGrid(func(x, y float64) Entity {
		return NewBoid(common.Vector2{}, inertBoid(common.NewVector2(x, y), common.Vector2{}), opts)
	}, 3, 3)

	before := map[*Boid]common.Vector2{}
	var sum common.Vector2
	for _, b := range sim.Boids() {
		before[b] = b.Position()
		sum.Add(b.Position())
	}
	if len(before) != 9 {
		t.Fatalf("spawned %d boids, want 9", len(before))
	}

	sim.Tick()

	for b, pos := range before {
		mean := *sum.Copy().Sub(pos).Div(8)
		want := *mean.Copy().Sub(pos).Mul(0.5)
		if !approxVec(b.Velocity(), want) {
			t.Errorf("boid at %s: velocity %s, want %s", pos, b.Velocity(), want)
		}
		if !approxVec(b.Position(), *pos.Copy().Add(want)) {
			t.Errorf("boid at %s: moved to %s", pos, b.Position())
		}
	}

	corner := common.NewVector2(50, 50)
	for b, pos := range before {
		if pos.Equals(corner) && !approxVec(b.Velocity(), common.NewVector2(56.25, 56.25)) {
			t.Errorf("corner boid velocity = %s, want [56.25, 56.25]", b.Velocity())
		}
	}
}

func TestAlignment(t *testing.T) {
	sim := newTestSimulation(t, 1000, 1000)
	opts := BoidOptions{VisionRadius: Ptr(100.0), MatchingFactor: Ptr(0.5)}
	a := NewBoid(common.Vector2{}, inertBoid(common.NewVector2(500, 500), common.NewVector2(0, 0)), opts)
	b := NewBoid(common.Vector2{}, inertBoid(common.NewVector2(550, 500), common.NewVector2(2, 4)), opts)
	sim.Spawn(a)
	sim.Spawn(b)
	sim.Tick()

	if !approxVec(a.Deltas().Matching, common.NewVector2(1, 2)) {
		t.Fatalf("matching delta of A = %s, want [1, 2]", a.Deltas().Matching)
	}
	if !approxVec(b.Deltas().Matching, common.NewVector2(-1, -2)) {
		t.Fatalf("matching delta of B = %s, want [-1, -2]", b.Deltas().Matching)
	}
}

func TestPrototypeTweaks(t *testing.T) {
	sim := newTestSimulation(t, 1000, 1000)
	b := NewBoid(common.Vector2{}, inertBoid(common.NewVector2(500, 500), common.NewVector2(1, 0)),
		BoidOptions{PrototypeTweaks: Ptr(true)})
	sim.Spawn(b)

	sim.Tick()
	if b.MaxSpeed != 5 || b.AvoidRadius != 108 {
		t.Fatalf("without attraction: MaxSpeed=%g AvoidRadius=%g, want 5 and 108", b.MaxSpeed, b.AvoidRadius)
	}

	sim.Spawn(NewAttractor(common.NewVector2(600, 500), AttractorOptions{
		Radius:   &Ramp{Start: 0, End: 1000},
		Strength: &Ramp{Start: 0.5, End: 0.5},
	}))
	sim.Tick()
	if b.AvoidRadius != 60 {
		t.Fatalf("with attraction: AvoidRadius=%g, want 60", b.AvoidRadius)
	}
	if !approxEqual(b.MaxSpeed, 17.5) {
		t.Fatalf("with attraction 0.5: MaxSpeed=%g, want 17.5", b.MaxSpeed)
	}
}

func TestBoidApplyOptions(t *testing.T) {
	b := NewBoid(common.NewVector2(1, 2))
	before := b.BoidParams

	b.ApplyOptions(BoidOptions{})
	if b.BoidParams != before {
		t.Fatal("empty options changed parameters")
	}

	b.ApplyOptions(BoidOptions{MaxSpeed: Ptr(12.0), Color: Ptr("#ff8000")})
	if b.MaxSpeed != 12 {
		t.Fatalf("MaxSpeed = %g, want 12", b.MaxSpeed)
	}
	if b.Color.R != 0xff || b.Color.G != 0x80 || b.Color.B != 0 {
		t.Fatalf("Color = %v", b.Color)
	}
	if b.MinSpeed != before.MinSpeed {
		t.Fatal("unset field changed")
	}

	b.ApplyOptions(BoidOptions{Color: Ptr("not a colour")})
	if b.Color.R != 0xff {
		t.Fatal("invalid colour was not ignored")
	}
}

func TestBoidOptionsMergeDoesNotAlias(t *testing.T) {
	base := BoidOptions{MaxSpeed: Ptr(5.0), Position: Ptr(common.NewVector2(1, 1))}
	over := BoidOptions{MaxSpeed: Ptr(9.0)}
	merged := base.Merge(over)

	*over.MaxSpeed = 100
	base.Position.X = 50

	if *merged.MaxSpeed != 9 {
		t.Fatalf("merged MaxSpeed = %g, want 9", *merged.MaxSpeed)
	}
	if merged.Position.X != 1 {
		t.Fatalf("merged Position aliased base: %s", merged.Position)
	}

	b := NewBoid(common.Vector2{}, merged)
	merged.Position.X = 77
	if b.Position().X != 1 {
		t.Fatalf("boid position aliased options: %s", b.Position())
	}
}
