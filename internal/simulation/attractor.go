package simulation

import (
	"hash/fnv"
	"math"

	"boids-sim/internal/common"

	"github.com/aquilax/go-perlin"
)

// Ramp is a linear range between a start and an end value. Attractors use a
// radius ramp and a strength ramp: strength varies linearly with distance
// from Radius.Start to Radius.End.
type Ramp struct {
	Start float64 `toml:"start"`
	End   float64 `toml:"end"`
}

// Min returns the smaller bound.
func (r Ramp) Min() float64 { return math.Min(r.Start, r.End) }

// Max returns the larger bound.
func (r Ramp) Max() float64 { return math.Max(r.Start, r.End) }

// Contains reports whether v lies in the closed interval spanned by the ramp.
func (r Ramp) Contains(v float64) bool {
	return v >= r.Min() && v <= r.Max()
}

// Steerable is anything a force field can push: it exposes a position and
// accepts velocity changes.
type Steerable interface {
	Position() common.Vector2
	Accelerate(delta common.Vector2)
}

// ForceField is implemented by Attractor and AttractorLine.
type ForceField interface {
	Entity
	// Attract adds the field's contribution to target's velocity and returns it.
	Attract(target Steerable) common.Vector2
}

// Perlin parameters for wandering attractors.
const (
	wanderAlpha = 2.0
	wanderBeta  = 2.0
	wanderOct   = 3
	// wanderStep is how far along the noise axis one tick advances.
	wanderStep = 0.01
)

// field holds the ramp configuration shared by both attractor kinds.
type field struct {
	entityCore

	Radius   Ramp
	Strength Ramp

	// Wander is the drift speed in units per tick; zero keeps it static.
	Wander float64

	noise   *perlin.Perlin
	noiseY  float64
	elapsed uint64
}

// Default attractor ramps: a pull that fades out towards 250 units.
var (
	DefaultAttractorRadius   = Ramp{Start: 0, End: 250}
	DefaultAttractorStrength = Ramp{Start: 0.25, End: 0}
)

func newField(kind Kind, pos common.Vector2) field {
	return field{
		entityCore: newEntityCore(kind, pos),
		Radius:     DefaultAttractorRadius,
		Strength:   DefaultAttractorStrength,
	}
}

// strengthAt remaps distance from the radius ramp onto the strength ramp. ok
// is false when distance lies outside the radius band.
func (f *field) strengthAt(distance float64) (strength float64, ok bool) {
	if !f.Radius.Contains(distance) {
		return 0, false
	}
	return common.Remap(distance, f.Radius.Start, f.Radius.End, f.Strength.Start, f.Strength.End), true
}

func (f *field) applyOptions(o AttractorOptions) {
	if o.Position != nil {
		f.position = *o.Position
	}
	if o.Radius != nil {
		f.Radius = *o.Radius
	}
	if o.Strength != nil {
		f.Strength = *o.Strength
	}
	if o.Wander != nil {
		f.Wander = math.Max(0, *o.Wander)
	}
}

func (f *field) snapshot() Snapshot {
	return Snapshot{Position: f.position}
}

func (f *field) interpolate(t, u float64) Snapshot {
	return Snapshot{Position: *f.position.Copy().Lerp(f.last.Position, u)}
}

// wander drifts the field along a Perlin-noise heading and reflects it off
// the world bounds.
func (f *field) wander() {
	if f.Wander <= 0 || f.sim == nil {
		return
	}
	if f.noise == nil {
		seed := f.sim.Seed()
		f.noise = perlin.NewPerlin(wanderAlpha, wanderBeta, wanderOct, seed)
		h := fnv.New32a()
		h.Write([]byte(f.id))
		// Each attractor walks its own lane of the noise plane.
		f.noiseY = float64(h.Sum32()%1024) + 0.5
	}
	f.elapsed++
	heading := f.noise.Noise2D(float64(f.elapsed)*wanderStep, f.noiseY) * 2 * math.Pi
	step := common.NewVector2(f.Wander, 0)
	step.Rotate(heading)
	f.position.Add(step)

	size := f.sim.World().Size
	f.position.X = bounce(f.position.X, size.X)
	f.position.Y = bounce(f.position.Y, size.Y)
}

// bounce folds v back into [0, limit] as if it bounced off the walls.
func bounce(v, limit float64) float64 {
	if v < 0 {
		v = -v
	}
	if v > limit {
		v = limit - (v - limit)
	}
	return common.Clamp(v, 0, limit)
}

// Attractor is a radial force field.
type Attractor struct {
	field
}

// NewAttractor creates an attractor at pos with the default ramps.
func NewAttractor(pos common.Vector2, opts ...AttractorOptions) *Attractor {
	a := &Attractor{field: newField(KindAttractor, pos)}
	for _, o := range opts {
		a.ApplyOptions(o)
	}
	resetInterpolation(a)
	return a
}

// ApplyOptions merges the set fields of o onto the attractor.
func (a *Attractor) ApplyOptions(o AttractorOptions) { a.applyOptions(o) }

// Attract pulls target towards the attractor when it lies within the radius
// band. The direction is divided by max(distance, 1) so very close targets do
// not explode.
func (a *Attractor) Attract(target Steerable) common.Vector2 {
	distance := a.position.Distance(target.Position())
	strength, ok := a.strengthAt(distance)
	if !ok {
		return common.Vector2{}
	}
	delta := *a.position.Copy().
		Sub(target.Position()).
		Div(math.Max(distance, 1)).
		Mul(strength)
	target.Accelerate(delta)
	return delta
}

// Tick advances the attractor one step.
func (a *Attractor) Tick() { tickEntity(a) }

// Frame recomputes the interpolated position.
func (a *Attractor) Frame(t, u float64) { frameEntity(a, t, u) }

func (a *Attractor) onTick() { a.wander() }

// AttractorLine is a vertical line field: it measures distance along x only
// and pushes along x only.
type AttractorLine struct {
	field
}

// NewAttractorLine creates a line attractor through pos.
func NewAttractorLine(pos common.Vector2, opts ...AttractorOptions) *AttractorLine {
	l := &AttractorLine{field: newField(KindAttractorLine, pos)}
	for _, o := range opts {
		l.ApplyOptions(o)
	}
	resetInterpolation(l)
	return l
}

// ApplyOptions merges the set fields of o onto the line.
func (l *AttractorLine) ApplyOptions(o AttractorOptions) { l.applyOptions(o) }

// Attract pulls target horizontally towards the line.
func (l *AttractorLine) Attract(target Steerable) common.Vector2 {
	offset := l.position.X - target.Position().X
	strength, ok := l.strengthAt(math.Abs(offset))
	if !ok {
		return common.Vector2{}
	}
	direction := 1.0
	if offset < 0 {
		direction = -1
	}
	delta := common.NewVector2(strength*direction, 0)
	target.Accelerate(delta)
	return delta
}

// Tick advances the line one step.
func (l *AttractorLine) Tick() { tickEntity(l) }

// Frame recomputes the interpolated position.
func (l *AttractorLine) Frame(t, u float64) { frameEntity(l, t, u) }

func (l *AttractorLine) onTick() { l.wander() }
