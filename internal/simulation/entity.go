package simulation

import (
	"fmt"

	"boids-sim/internal/common"

	"github.com/google/uuid"
)

// Snapshot holds the interpolatable state of an entity. Entities without
// motion leave the fields they do not track at zero.
type Snapshot struct {
	Position common.Vector2
	Velocity common.Vector2
}

// Entity is any object living in a Simulation. The set of implementations is
// closed: Boid, Attractor, AttractorLine and DistanceSensor.
type Entity interface {
	// ID returns the unique identifier of the entity.
	ID() string
	// Kind returns the concrete kind, which never changes.
	Kind() Kind
	// Position returns the current (live) position.
	Position() common.Vector2
	// SetPosition moves the entity.
	SetPosition(pos common.Vector2)
	// Simulation returns the simulation the entity is spawned into, or nil.
	Simulation() *Simulation
	// Tick captures the last-tick snapshot and advances the entity one step.
	Tick()
	// Frame recomputes the interpolated state. u = 1 - t is the remaining
	// fraction towards the previous tick.
	Frame(t, u float64)
	// Interpolated returns the latest interpolated state and whether it is
	// available, which is only the case after the first tick.
	Interpolated() (Snapshot, bool)
	// LastTick returns the state captured at the start of the latest tick.
	LastTick() Snapshot

	core() *entityCore
	snapshot() Snapshot
	interpolate(t, u float64) Snapshot
	onTick()
	onSpawn()
	onKill()
}

// entityCore carries the state shared by every entity kind.
type entityCore struct {
	id       string
	kind     Kind
	position common.Vector2

	// sim is a non-owning back-reference set while the entity is spawned.
	sim *Simulation

	last        Snapshot
	interp      Snapshot
	interpReady bool
}

func newEntityCore(kind Kind, pos common.Vector2) entityCore {
	return entityCore{
		id:       fmt.Sprintf("%s-%s", kind, uuid.NewString()[:8]),
		kind:     kind,
		position: pos,
	}
}

func (c *entityCore) core() *entityCore { return c }

func (c *entityCore) ID() string { return c.id }

func (c *entityCore) Kind() Kind { return c.kind }

func (c *entityCore) Position() common.Vector2 { return c.position }

func (c *entityCore) SetPosition(pos common.Vector2) { c.position = pos }

func (c *entityCore) Simulation() *Simulation { return c.sim }

func (c *entityCore) Interpolated() (Snapshot, bool) { return c.interp, c.interpReady }

func (c *entityCore) LastTick() Snapshot { return c.last }

func (c *entityCore) snapshot() Snapshot {
	return Snapshot{Position: c.position}
}

// interpolate is the default for entities with nothing to blend.
func (c *entityCore) interpolate(t, u float64) Snapshot { return Snapshot{} }

func (c *entityCore) onTick()  {}
func (c *entityCore) onSpawn() {}
func (c *entityCore) onKill()  {}

// String representation for logging
func (c *entityCore) String() string {
	return fmt.Sprintf("%s Pos: %s", c.id, c.position)
}

// beginTick stores the pre-tick snapshot of e.
func beginTick(e Entity) {
	c := e.core()
	c.last = e.snapshot()
	c.interpReady = true
}

// tickEntity is the shared Tick implementation: snapshot, then the kind hook.
func tickEntity(e Entity) {
	beginTick(e)
	e.onTick()
}

// frameEntity is the shared Frame implementation.
func frameEntity(e Entity, t, u float64) {
	e.core().interp = e.interpolate(t, u)
}

// resetInterpolation makes the last-tick snapshot match the live state, so an
// entity that has not ticked yet interpolates onto itself.
func resetInterpolation(e Entity) {
	c := e.core()
	c.last = e.snapshot()
	c.interp = e.interpolate(0, 1)
}
