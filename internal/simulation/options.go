package simulation

import "boids-sim/internal/common"

// Option patches are partial updates: nil fields are left untouched, set
// fields are copied onto the entity. They decode from TOML, where absent keys
// stay nil.

// Ptr returns a pointer to a copy of v. It is a convenience for building
// option patches in code.
func Ptr[T any](v T) *T {
	return &v
}

// overlay returns a fresh copy of over if set, else a fresh copy of base.
func overlay[T any](base, over *T) *T {
	switch {
	case over != nil:
		v := *over
		return &v
	case base != nil:
		v := *base
		return &v
	}
	return nil
}

// BoidOptions is a partial update of a Boid.
type BoidOptions struct {
	Position *common.Vector2 `toml:"position"`
	Velocity *common.Vector2 `toml:"velocity"`

	// Color is "#rrggbb" or "#rgb". Unparsable values are ignored.
	Color *string  `toml:"color"`
	Size  *float64 `toml:"size"`

	MinSpeed *float64 `toml:"min_speed"`
	MaxSpeed *float64 `toml:"max_speed"`

	AvoidRadius *float64 `toml:"avoid_radius"`
	AvoidFactor *float64 `toml:"avoid_factor"`

	VisionRadius    *float64 `toml:"vision_radius"`
	CenteringFactor *float64 `toml:"centering_factor"`
	MatchingFactor  *float64 `toml:"matching_factor"`

	EdgeMargin     *float64 `toml:"edge_margin"`
	EdgeTurnFactor *float64 `toml:"edge_turn_factor"`

	PrototypeTweaks *bool `toml:"prototype_tweaks"`
}

// Merge returns o with every field set in over replacing its counterpart.
// The result shares no pointers with either input.
func (o BoidOptions) Merge(over BoidOptions) BoidOptions {
	return BoidOptions{
		Position:        overlay(o.Position, over.Position),
		Velocity:        overlay(o.Velocity, over.Velocity),
		Color:           overlay(o.Color, over.Color),
		Size:            overlay(o.Size, over.Size),
		MinSpeed:        overlay(o.MinSpeed, over.MinSpeed),
		MaxSpeed:        overlay(o.MaxSpeed, over.MaxSpeed),
		AvoidRadius:     overlay(o.AvoidRadius, over.AvoidRadius),
		AvoidFactor:     overlay(o.AvoidFactor, over.AvoidFactor),
		VisionRadius:    overlay(o.VisionRadius, over.VisionRadius),
		CenteringFactor: overlay(o.CenteringFactor, over.CenteringFactor),
		MatchingFactor:  overlay(o.MatchingFactor, over.MatchingFactor),
		EdgeMargin:      overlay(o.EdgeMargin, over.EdgeMargin),
		EdgeTurnFactor:  overlay(o.EdgeTurnFactor, over.EdgeTurnFactor),
		PrototypeTweaks: overlay(o.PrototypeTweaks, over.PrototypeTweaks),
	}
}

// AttractorOptions is a partial update of an Attractor or AttractorLine.
type AttractorOptions struct {
	Position *common.Vector2 `toml:"position"`
	Radius   *Ramp           `toml:"radius"`
	Strength *Ramp           `toml:"strength"`
	// Wander makes the attractor drift this many units per tick.
	Wander *float64 `toml:"wander"`
}

// Merge returns o with every field set in over replacing its counterpart.
func (o AttractorOptions) Merge(over AttractorOptions) AttractorOptions {
	return AttractorOptions{
		Position: overlay(o.Position, over.Position),
		Radius:   overlay(o.Radius, over.Radius),
		Strength: overlay(o.Strength, over.Strength),
		Wander:   overlay(o.Wander, over.Wander),
	}
}

// SensorOptions is a partial update of a DistanceSensor.
type SensorOptions struct {
	Position    *common.Vector2 `toml:"position"`
	Distance    *float64        `toml:"distance"`
	MaxDistance *float64        `toml:"max_distance"`
	// Strength and Radius are the line ramps at full detection; their End is
	// scaled down as the reading approaches MaxDistance.
	Strength *Ramp `toml:"strength"`
	Radius   *Ramp `toml:"radius"`
}
