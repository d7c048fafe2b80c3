package loop

import (
	"context"
	"log"
	"time"

	"boids-sim/internal/simulation"
	"boids-sim/internal/stats"
)

// DefaultFPS is the frame rate of a clocked Runner when FPS is unset.
const DefaultFPS = 60

// Runner drives a Simulation without a window. Without a Clock it ticks as
// fast as possible; with one it ticks in real time and renders interpolated
// frames at FPS.
type Runner struct {
	Sim   *simulation.Simulation
	Clock *Clock
	FPS   int

	// MaxTicks stops the run after that many ticks; zero runs until the
	// context is cancelled.
	MaxTicks uint64
	// LogEvery logs a flock summary every that many ticks; zero disables it.
	LogEvery uint64
	Logger   *log.Logger

	// Probe, when set, feeds every distance sensor from the nearest boid
	// before each tick.
	Probe *simulation.Probe

	ticks uint64
}

// Ticks returns the number of ticks run by this runner.
func (r *Runner) Ticks() uint64 { return r.ticks }

func (r *Runner) logger() *log.Logger {
	if r.Logger == nil {
		return log.Default()
	}
	return r.Logger
}

func (r *Runner) done() bool {
	return r.MaxTicks > 0 && r.ticks >= r.MaxTicks
}

func (r *Runner) step() {
	if r.Probe != nil {
		r.Probe.Feed(r.Sim)
	}
	r.Sim.Tick()
	r.ticks++
	if r.LogEvery > 0 && r.ticks%r.LogEvery == 0 {
		r.logger().Printf("%s", stats.Summarize(r.Sim))
	}
}

// Run ticks the simulation until MaxTicks is reached or ctx is done. It
// returns ctx.Err() when stopped by the context.
func (r *Runner) Run(ctx context.Context) error {
	r.logger().Printf("starting %s", r.Sim)
	defer func() { r.logger().Printf("stopped after %d ticks: %s", r.ticks, r.Sim) }()

	if r.Clock == nil {
		return r.runUnclocked(ctx)
	}
	return r.runClocked(ctx)
}

func (r *Runner) runUnclocked(ctx context.Context) error {
	for !r.done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.step()
		r.Sim.Frame(1)
	}
	return nil
}

func (r *Runner) runClocked(ctx context.Context) error {
	fps := r.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	r.Clock.Advance(time.Now())
	for !r.done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			n, frac := r.Clock.Advance(now)
			for i := 0; i < n && !r.done(); i++ {
				r.step()
			}
			r.Sim.Frame(frac)
		}
	}
	return nil
}
