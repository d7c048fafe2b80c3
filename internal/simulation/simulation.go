package simulation

import (
	"fmt"
	"math/rand/v2"
	"time"

	"boids-sim/internal/common"

	"golang.org/x/sync/errgroup"
)

// RenderCallback observes the simulation after each Frame.
type RenderCallback func(*Simulation)

// Factory builds an entity at a grid point for SpawnGrid.
type Factory func(x, y float64) Entity

// hooks is an ordered set of callbacks that can be removed by handle.
type hooks[F any] struct {
	next    int
	entries []hookEntry[F]
}

type hookEntry[F any] struct {
	id int
	fn F
}

func (h *hooks[F]) add(fn F) func() {
	h.next++
	id := h.next
	h.entries = append(h.entries, hookEntry[F]{id: id, fn: fn})
	return func() {
		for i, e := range h.entries {
			if e.id == id {
				h.entries = append(h.entries[:i:i], h.entries[i+1:]...)
				return
			}
		}
	}
}

func (h *hooks[F]) each(fn func(F)) {
	for _, e := range append([]hookEntry[F](nil), h.entries...) {
		fn(e.fn)
	}
}

// Simulation holds the world, the live entities and the tick/frame passes.
//
// A Simulation is driven from a single goroutine. The only method of any
// entity that may be called concurrently with Tick is DistanceSensor.SetDistance.
type Simulation struct {
	world    *World
	entities *Registry

	seed    int64
	rng     *rand.Rand
	workers int
	ticks   uint64

	observers hooks[func()]
	renderers hooks[RenderCallback]
}

// NewSimulation creates an empty simulation with a world of the given size.
func NewSimulation(width, height float64) (*Simulation, error) {
	world, err := NewWorld(width, height)
	if err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}
	s := &Simulation{
		world:    world,
		entities: NewRegistry(),
		workers:  1,
	}
	s.SetSeed(time.Now().UnixNano())
	return s, nil
}

// World returns the simulation world.
func (s *Simulation) World() *World { return s.world }

// Entities returns the entity registry.
func (s *Simulation) Entities() *Registry { return s.entities }

// Seed returns the seed of the simulation's random source.
func (s *Simulation) Seed() int64 { return s.seed }

// SetSeed reseeds the simulation's random source.
func (s *Simulation) SetSeed(seed int64) {
	s.seed = seed
	s.rng = rand.New(rand.NewPCG(uint64(seed), 0))
}

// Rand returns the simulation's random source. It is not safe for concurrent use.
func (s *Simulation) Rand() *rand.Rand { return s.rng }

// Ticks returns the number of ticks run so far.
func (s *Simulation) Ticks() uint64 { return s.ticks }

// Workers returns the number of goroutines boid updates are spread over.
func (s *Simulation) Workers() int { return s.workers }

// SetWorkers spreads boid updates over n goroutines. n <= 1 runs every update
// on the calling goroutine, which is the default.
func (s *Simulation) SetWorkers(n int) {
	s.workers = max(n, 1)
}

// Subscribe registers fn to be called after every change (spawn, kill, tick).
// The returned function unregisters it.
func (s *Simulation) Subscribe(fn func()) (remove func()) {
	return s.observers.add(fn)
}

// AddRenderCallback registers fn to be called after every Frame. The returned
// function unregisters it.
func (s *Simulation) AddRenderCallback(fn RenderCallback) (remove func()) {
	return s.renderers.add(fn)
}

func (s *Simulation) notify() {
	s.observers.each(func(fn func()) { fn() })
}

// Spawn adds e to the simulation and runs its spawn hook. Spawning an entity
// that is already live here is a no-op; an entity live in another simulation
// is killed there first.
func (s *Simulation) Spawn(e Entity) {
	if s.spawn(e) {
		s.notify()
	}
}

func (s *Simulation) spawn(e Entity) bool {
	if e == nil {
		return false
	}
	c := e.core()
	if c.sim == s && s.entities.Has(e) {
		return false
	}
	if c.sim != nil && c.sim != s {
		c.sim.Kill(e)
	}
	c.sim = s
	c.interpReady = false
	resetInterpolation(e)
	s.entities.Add(e)
	e.onSpawn()
	return true
}

// SpawnGrid spawns one entity per point of a cols × rows grid evenly spread
// over the world, each point at the centre of its cell. It returns the
// spawned entities, column by column.
func (s *Simulation) SpawnGrid(factory Factory, cols, rows int) []Entity {
	if factory == nil || cols <= 0 || rows <= 0 {
		return nil
	}
	colGap := s.world.Size.X / float64(cols)
	rowGap := s.world.Size.Y / float64(rows)

	spawned := make([]Entity, 0, cols*rows)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			e := factory(colGap*(float64(i)+0.5), rowGap*(float64(j)+0.5))
			if s.spawn(e) {
				spawned = append(spawned, e)
			}
		}
	}
	s.notify()
	return spawned
}

// Kill removes e and runs its kill hook. It reports whether e was live.
func (s *Simulation) Kill(e Entity) bool {
	if !s.kill(e) {
		return false
	}
	s.notify()
	return true
}

func (s *Simulation) kill(e Entity) bool {
	if !s.entities.Delete(e) {
		return false
	}
	e.onKill()
	e.core().sim = nil
	return true
}

// KillAll removes every entity, running each kill hook.
func (s *Simulation) KillAll() {
	all := s.entities.All()
	s.entities.Clear()
	for _, e := range all {
		e.onKill()
		e.core().sim = nil
	}
	s.notify()
}

// KillAllOfKind removes every entity of kind k.
func (s *Simulation) KillAllOfKind(k Kind) {
	for _, e := range s.entities.Get(k) {
		s.kill(e)
	}
	s.notify()
}

// Boids returns the live boids.
func (s *Simulation) Boids() []*Boid { return entitiesOf[*Boid](s.entities, KindBoid) }

// Attractors returns the live radial attractors.
func (s *Simulation) Attractors() []*Attractor {
	return entitiesOf[*Attractor](s.entities, KindAttractor)
}

// AttractorLines returns the live line attractors, including those owned by
// sensors.
func (s *Simulation) AttractorLines() []*AttractorLine {
	return entitiesOf[*AttractorLine](s.entities, KindAttractorLine)
}

// DistanceSensors returns the live distance sensors.
func (s *Simulation) DistanceSensors() []*DistanceSensor {
	return entitiesOf[*DistanceSensor](s.entities, KindDistanceSensor)
}

func entitiesOf[T Entity](r *Registry, k Kind) []T {
	out := make([]T, 0, r.Count(k))
	r.each(k, func(e Entity) {
		if t, ok := e.(T); ok {
			out = append(out, t)
		}
	})
	return out
}

// Tick advances every entity by one step and notifies observers.
//
// Pending sensor readings are applied first. Then every entity captures its
// snapshot before any entity moves, so neighbour reads within the tick see
// pre-tick state regardless of order. Boids update next, possibly in
// parallel, followed by the remaining kinds.
func (s *Simulation) Tick() {
	s.entities.each(KindDistanceSensor, func(e Entity) {
		e.(*DistanceSensor).applyReading()
	})

	all := s.entities.All()
	for _, e := range all {
		beginTick(e)
	}
	s.tickBoids(s.entities.Get(KindBoid))
	for _, e := range all {
		if e.Kind() != KindBoid {
			e.onTick()
		}
	}

	s.ticks++
	s.notify()
}

// chunksPerWorker splits a tick into more chunks than workers, so a worker
// that finishes early picks up another chunk instead of idling.
const chunksPerWorker = 4

// chunkSize returns how many of n boids each chunk holds when ticking with
// the given number of workers.
func chunkSize(n, workers int) int {
	chunks := max(workers, 1) * chunksPerWorker
	return max((n+chunks-1)/chunks, 1)
}

func (s *Simulation) tickBoids(boids []Entity) {
	if s.workers <= 1 || len(boids) < 2 {
		for _, b := range boids {
			b.onTick()
		}
		return
	}

	// Each boid writes only its own state and reads neighbour snapshots, so
	// chunks can run concurrently.
	chunk := chunkSize(len(boids), s.workers)
	var g errgroup.Group
	g.SetLimit(s.workers)
	for start := 0; start < len(boids); start += chunk {
		part := boids[start:min(start+chunk, len(boids))]
		g.Go(func() error {
			for _, b := range part {
				b.onTick()
			}
			return nil
		})
	}
	// Boid hooks cannot fail; Wait only joins the goroutines.
	_ = g.Wait()
}

// Frame interpolates every entity at fraction t ∈ [0,1] of the way from the
// previous tick to the current one, then runs the render callbacks.
func (s *Simulation) Frame(t float64) {
	t = common.Clamp(t, 0, 1)
	u := 1 - t
	for _, e := range s.entities.All() {
		e.Frame(t, u)
	}
	s.renderers.each(func(fn RenderCallback) { fn(s) })
}

// String representation for logging
func (s *Simulation) String() string {
	return fmt.Sprintf("Simulation tick=%d world=%s boids=%d attractors=%d lines=%d sensors=%d",
		s.ticks, s.world.Size,
		s.entities.Count(KindBoid), s.entities.Count(KindAttractor),
		s.entities.Count(KindAttractorLine), s.entities.Count(KindDistanceSensor))
}
