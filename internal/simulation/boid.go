package simulation

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"boids-sim/internal/common"
)

// BoidParams are the tunable flocking parameters of a Boid.
type BoidParams struct {
	Color color.RGBA
	Size  float64

	MinSpeed float64
	MaxSpeed float64

	AvoidRadius float64 // separation range
	AvoidFactor float64

	VisionRadius    float64 // cohesion and alignment range
	CenteringFactor float64
	MatchingFactor  float64

	EdgeMargin     float64 // distance from a wall where turning starts
	EdgeTurnFactor float64

	// PrototypeTweaks retunes MaxSpeed and AvoidRadius from the attraction
	// felt each tick, as used by the physical LED prototype.
	PrototypeTweaks bool
}

// DefaultBoidParams returns the standard flocking parameters. Color is left
// zero; NewBoid picks a random hue.
func DefaultBoidParams() BoidParams {
	return BoidParams{
		Size:            25,
		MinSpeed:        3,
		MaxSpeed:        8,
		AvoidRadius:     40,
		AvoidFactor:     0.04,
		VisionRadius:    100,
		CenteringFactor: 0.0005,
		MatchingFactor:  0.04,
		EdgeMargin:      200,
		EdgeTurnFactor:  0.12,
	}
}

// Deltas are the force contributions of the latest tick, kept for
// diagnostics and debug rendering only.
type Deltas struct {
	Avoidance  common.Vector2
	Centering  common.Vector2
	Matching   common.Vector2
	Attraction common.Vector2
}

// Boid is a flocking agent.
type Boid struct {
	entityCore
	BoidParams

	velocity common.Vector2
	deltas   Deltas
}

// NewBoid creates a boid at pos with default parameters, a random velocity in
// [-1,1)² and a random hue. Options are applied in order.
func NewBoid(pos common.Vector2, opts ...BoidOptions) *Boid {
	return NewBoidWithRand(nil, pos, opts...)
}

// NewBoidWithRand is NewBoid drawing its random velocity and colour from r.
// A nil r uses the global source.
func NewBoidWithRand(r *rand.Rand, pos common.Vector2, opts ...BoidOptions) *Boid {
	random := rand.Float64
	if r != nil {
		random = r.Float64
	}

	b := &Boid{
		entityCore: newEntityCore(KindBoid, pos),
		BoidParams: DefaultBoidParams(),
		velocity:   common.NewVector2(random()*2-1, random()*2-1),
	}
	b.Color = common.HSLToRGBA(random(), 1, 0.7)
	for _, o := range opts {
		b.ApplyOptions(o)
	}
	resetInterpolation(b)
	return b
}

// Velocity returns the current velocity.
func (b *Boid) Velocity() common.Vector2 { return b.velocity }

// SetVelocity overwrites the velocity.
func (b *Boid) SetVelocity(v common.Vector2) { b.velocity = v }

// Accelerate adds delta to the velocity.
func (b *Boid) Accelerate(delta common.Vector2) { b.velocity.Add(delta) }

// Deltas returns the force contributions computed in the latest tick.
func (b *Boid) Deltas() Deltas { return b.deltas }

// ApplyOptions merges the set fields of o onto the boid.
func (b *Boid) ApplyOptions(o BoidOptions) {
	if o.Position != nil {
		b.position = *o.Position
	}
	if o.Velocity != nil {
		b.velocity = *o.Velocity
	}
	if o.Color != nil {
		if c, err := common.ParseHexColor(*o.Color); err == nil {
			b.Color = c
		}
	}
	setIf(&b.Size, o.Size)
	setIf(&b.MinSpeed, o.MinSpeed)
	setIf(&b.MaxSpeed, o.MaxSpeed)
	setIf(&b.AvoidRadius, o.AvoidRadius)
	setIf(&b.AvoidFactor, o.AvoidFactor)
	setIf(&b.VisionRadius, o.VisionRadius)
	setIf(&b.CenteringFactor, o.CenteringFactor)
	setIf(&b.MatchingFactor, o.MatchingFactor)
	setIf(&b.EdgeMargin, o.EdgeMargin)
	setIf(&b.EdgeTurnFactor, o.EdgeTurnFactor)
	setIf(&b.PrototypeTweaks, o.PrototypeTweaks)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Tick advances the boid one step.
func (b *Boid) Tick() { tickEntity(b) }

// Frame recomputes the interpolated position and velocity.
func (b *Boid) Frame(t, u float64) { frameEntity(b, t, u) }

func (b *Boid) snapshot() Snapshot {
	return Snapshot{Position: b.position, Velocity: b.velocity}
}

func (b *Boid) interpolate(t, u float64) Snapshot {
	return Snapshot{
		Position: *b.position.Copy().Lerp(b.last.Position, u),
		Velocity: *b.velocity.Copy().Lerp(b.last.Velocity, u),
	}
}

func (b *Boid) onTick() {
	if b.sim == nil {
		return
	}
	b.flock()
	b.attract()
	if b.PrototypeTweaks {
		b.applyPrototypeTweaks()
	}
	b.steerFromEdges(b.sim.World().Size)
	b.clampSpeed()
	b.position.Add(b.velocity)
}

// flock applies separation, cohesion and alignment against every other boid.
// Neighbours are read from their pre-tick snapshot.
func (b *Boid) flock() {
	var (
		avoidance     common.Vector2
		positionsSum  common.Vector2
		velocitiesSum common.Vector2
		visible       int
	)
	visionRadiusSq := b.VisionRadius * b.VisionRadius
	avoidRadiusSq := b.AvoidRadius * b.AvoidRadius

	b.sim.entities.each(KindBoid, func(e Entity) {
		if e == Entity(b) {
			return
		}
		other := e.LastTick()

		distanceSq := b.position.DistanceSq(other.Position)
		if distanceSq > visionRadiusSq && distanceSq > avoidRadiusSq {
			return
		}

		if distanceSq <= avoidRadiusSq {
			distance := math.Sqrt(distanceSq)
			avoidance.Add(*b.position.Copy().
				Sub(other.Position).
				Div(math.Max(distance, 1)).
				Mul(b.AvoidRadius - distance))
		} else {
			positionsSum.Add(other.Position)
			velocitiesSum.Add(other.Velocity)
			visible++
		}
	})

	b.deltas.Centering = common.Vector2{}
	b.deltas.Matching = common.Vector2{}
	if visible > 0 {
		n := float64(visible)
		centering := *positionsSum.Copy().Div(n).Sub(b.position).Mul(b.CenteringFactor)
		matching := *velocitiesSum.Copy().Div(n).Sub(b.velocity).Mul(b.MatchingFactor)
		b.velocity.Add(centering).Add(matching)
		b.deltas.Centering = centering
		b.deltas.Matching = matching
	}

	avoidance.Mul(b.AvoidFactor)
	b.velocity.Add(avoidance)
	b.deltas.Avoidance = avoidance
}

// attract lets every force field in the simulation push the boid.
func (b *Boid) attract() {
	var total common.Vector2
	for _, k := range [...]Kind{KindAttractor, KindAttractorLine} {
		b.sim.entities.each(k, func(e Entity) {
			if f, ok := e.(ForceField); ok {
				total.Add(f.Attract(b))
			}
		})
	}
	b.deltas.Attraction = total
}

func (b *Boid) applyPrototypeTweaks() {
	attraction := b.deltas.Attraction.Length()
	b.MaxSpeed = common.Remap(attraction, 0, 1, 5, 30)
	if attraction > 0 {
		b.AvoidRadius = 60
	} else {
		b.AvoidRadius = 108
	}
}

// steerFromEdges nudges the velocity away from walls within EdgeMargin. Each
// axis is handled independently.
func (b *Boid) steerFromEdges(size common.Vector2) {
	if b.position.X < b.EdgeMargin {
		b.velocity.X += b.EdgeTurnFactor
	} else if b.position.X > size.X-b.EdgeMargin {
		b.velocity.X -= b.EdgeTurnFactor
	}
	if b.position.Y < b.EdgeMargin {
		b.velocity.Y += b.EdgeTurnFactor
	} else if b.position.Y > size.Y-b.EdgeMargin {
		b.velocity.Y -= b.EdgeTurnFactor
	}
}

// clampSpeed rescales the velocity into [MinSpeed, MaxSpeed]. A zero velocity
// has no direction to rescale and is left alone.
func (b *Boid) clampSpeed() {
	speed := b.velocity.Length()
	if speed == 0 {
		return
	}
	if speed < b.MinSpeed {
		b.velocity.Div(speed).Mul(b.MinSpeed)
	}
	if speed > b.MaxSpeed {
		b.velocity.Div(speed).Mul(b.MaxSpeed)
	}
}

// String representation for logging
func (b *Boid) String() string {
	return fmt.Sprintf("Boid[%s] Pos: %s Vel: %s", b.id, b.position, b.velocity)
}
