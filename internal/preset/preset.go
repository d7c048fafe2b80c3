// Package preset holds named scenes that reset or retune a simulation.
package preset

import (
	"errors"
	"fmt"
	"sort"

	"boids-sim/internal/simulation"
)

// ErrUnknownPreset is returned by Get for names that were never registered.
var ErrUnknownPreset = errors.New("unknown preset")

// Func sets up sim starting from the boid options currently in effect and
// returns the boid options it leaves in effect, so presets can be chained.
type Func func(sim *simulation.Simulation, boid simulation.BoidOptions) (simulation.BoidOptions, error)

// Preset is a named scene.
type Preset struct {
	Name        string
	Description string
	Apply       Func
}

var presets = map[string]Preset{}

// Register adds a preset under its name, replacing any previous one.
func Register(p Preset) {
	if p.Name == "" || p.Apply == nil {
		return
	}
	presets[p.Name] = p
}

// Get returns the preset registered under name.
func Get(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w %q", ErrUnknownPreset, name)
	}
	return p, nil
}

// Names lists the registered presets in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply runs the named preset on sim.
func Apply(name string, sim *simulation.Simulation, boid simulation.BoidOptions) (simulation.BoidOptions, error) {
	p, err := Get(name)
	if err != nil {
		return boid, err
	}
	out, err := p.Apply(sim, boid)
	if err != nil {
		return boid, fmt.Errorf("preset %q: %w", name, err)
	}
	return out, nil
}
