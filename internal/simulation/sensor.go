package simulation

import (
	"fmt"
	"math"
	"sync/atomic"

	"boids-sim/internal/common"
)

// Default tuning of a DistanceSensor. Readings are in the same units as the
// world, with detection fading out at DefaultSensorMaxDistance.
var (
	DefaultSensorMaxDistance = 150.0
	DefaultSensorStrength    = Ramp{Start: 0.1, End: 0.4}
	DefaultSensorRadius      = Ramp{Start: 40, End: 200}
)

// DistanceSensor republishes an externally supplied distance reading as the
// ramps of a private AttractorLine. The closer the detected object, the wider
// and stronger the line pulls.
type DistanceSensor struct {
	entityCore

	// MaxDistance is the reading at which detection fades to nothing. A
	// reading of 0 means no detection and is treated as MaxDistance.
	MaxDistance float64
	// Strength and Radius are the line ramps at full detection. Their End
	// scales linearly down to 0 as the reading approaches MaxDistance.
	Strength Ramp
	Radius   Ramp

	// reading holds the float64 bits of the latest reading; pending marks it
	// as not yet applied to the line.
	reading atomic.Uint64
	pending atomic.Bool

	line *AttractorLine
}

// NewDistanceSensor creates a sensor at pos. Its line starts with a zero
// strength ramp until the first reading is applied.
func NewDistanceSensor(pos common.Vector2, opts ...SensorOptions) *DistanceSensor {
	s := &DistanceSensor{
		entityCore:  newEntityCore(KindDistanceSensor, pos),
		MaxDistance: DefaultSensorMaxDistance,
		Strength:    DefaultSensorStrength,
		Radius:      DefaultSensorRadius,
		line: NewAttractorLine(pos, AttractorOptions{
			Strength: &Ramp{},
		}),
	}
	for _, o := range opts {
		s.ApplyOptions(o)
	}
	resetInterpolation(s)
	return s
}

// ApplyOptions merges the set fields of o onto the sensor. A Distance in o is
// applied to the line immediately, so only call this between ticks.
func (s *DistanceSensor) ApplyOptions(o SensorOptions) {
	if o.Position != nil {
		s.SetPosition(*o.Position)
	}
	if o.MaxDistance != nil && *o.MaxDistance > 0 {
		s.MaxDistance = *o.MaxDistance
	}
	setIf(&s.Strength, o.Strength)
	setIf(&s.Radius, o.Radius)
	if o.Distance != nil {
		s.SetDistance(*o.Distance)
		s.applyReading()
	}
}

// Line returns the attractor line owned by the sensor.
func (s *DistanceSensor) Line() *AttractorLine { return s.line }

// SetPosition moves the sensor together with its line.
func (s *DistanceSensor) SetPosition(pos common.Vector2) {
	s.position = pos
	s.line.SetPosition(pos)
}

// Distance returns the latest reading.
func (s *DistanceSensor) Distance() float64 {
	return math.Float64frombits(s.reading.Load())
}

// SetDistance records a new reading. It is safe to call from any goroutine at
// any time; the line is retuned at the start of the next simulation tick.
// Negative and NaN readings count as no detection.
func (s *DistanceSensor) SetDistance(distance float64) {
	if distance < 0 || math.IsNaN(distance) {
		distance = 0
	}
	s.reading.Store(math.Float64bits(distance))
	s.pending.Store(true)
}

// applyReading retunes the line from the latest reading if it changed.
func (s *DistanceSensor) applyReading() {
	if !s.pending.Swap(false) {
		return
	}
	s.retune(s.Distance())
}

// detection maps a reading to a factor in [0,1]: 1 right at the sensor, 0 at
// or beyond MaxDistance and for the no-detection sentinel.
func (s *DistanceSensor) detection(distance float64) float64 {
	if distance == 0 {
		distance = s.MaxDistance
	}
	return math.Max(0, s.MaxDistance-distance) / s.MaxDistance
}

func (s *DistanceSensor) retune(distance float64) {
	f := s.detection(distance)
	s.line.Strength = Ramp{Start: s.Strength.Start, End: s.Strength.End * f}
	s.line.Radius = Ramp{Start: s.Radius.Start, End: s.Radius.End * f}
	s.line.position = s.position
}

// Tick advances the sensor one step.
func (s *DistanceSensor) Tick() { tickEntity(s) }

// Frame is a no-op apart from bookkeeping; sensors do not move on their own.
func (s *DistanceSensor) Frame(t, u float64) { frameEntity(s, t, u) }

func (s *DistanceSensor) onSpawn() {
	s.applyReading()
	s.sim.Spawn(s.line)
}

func (s *DistanceSensor) onKill() {
	s.sim.Kill(s.line)
}

// String representation for logging
func (s *DistanceSensor) String() string {
	return fmt.Sprintf("DistanceSensor[%s] Pos: %s Distance: %.2f Line: %+v/%+v",
		s.id, s.position, s.Distance(), s.line.Radius, s.line.Strength)
}
