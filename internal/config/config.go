// Package config loads the run configuration from TOML files and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"math"

	"boids-sim/internal/preset"
	"boids-sim/internal/simulation"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid config")

// WorldConfig is the size of the simulated area.
type WorldConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// GridConfig is the initial grid of boids spawned when no preset is used.
type GridConfig struct {
	Cols int `toml:"cols"`
	Rows int `toml:"rows"`
}

// AttractorConfig describes one attractor to spawn. Kind is "radial" (the
// default) or "line".
type AttractorConfig struct {
	Kind string `toml:"kind"`
	simulation.AttractorOptions
}

// Config holds the parameters of a run.
type Config struct {
	TPS      int    `toml:"tps"` // ticks per second, 0 pauses a realtime run
	FPS      int    `toml:"fps"`
	Realtime bool   `toml:"realtime"`
	Ticks    uint64 `toml:"ticks"` // 0 runs until interrupted
	LogEvery uint64 `toml:"log_every"`

	Workers int    `toml:"workers"`
	Seed    int64  `toml:"seed"` // 0 seeds from the clock
	Preset  string `toml:"preset"`

	// Probe feeds sensors from the nearest boid with ProbeNoise units of
	// uniform noise.
	Probe      bool    `toml:"probe"`
	ProbeNoise float64 `toml:"probe_noise"`

	World WorldConfig `toml:"world"`
	Grid  GridConfig  `toml:"grid"`

	Boid simulation.BoidOptions `toml:"boid"`
	// Attractor holds defaults merged under every entry of Attractors.
	Attractor  simulation.AttractorOptions `toml:"attractor"`
	Attractors []AttractorConfig          `toml:"attractors"`
	Sensors    []simulation.SensorOptions `toml:"sensors"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		TPS:      60,
		FPS:      60,
		LogEvery: 100,
		Workers:  1,
		Seed:     42,
		World:    WorldConfig{Width: 1200, Height: 800},
		Grid:     GridConfig{Cols: 10, Rows: 6},
	}
}

// Load reads the TOML file at path over the defaults. It returns the keys
// present in the file that match no field, so callers can warn about typos.
func Load(path string) (*Config, []string, error) {
	c := Default()
	undecoded, err := c.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return c, undecoded, nil
}

// LoadFile decodes the TOML file at path onto c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) ([]string, error) {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return undecodedKeys(md), nil
}

// Parse decodes TOML text onto c.
func (c *Config) Parse(data string) ([]string, error) {
	md, err := toml.Decode(data, c)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return undecodedKeys(md), nil
}

func undecodedKeys(md toml.MetaData) []string {
	keys := md.Undecoded()
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = k.String()
	}
	return out
}

// Bind attaches the scalar settings to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second in realtime mode (0 pauses)")
	fs.IntVar(&c.FPS, "fps", c.FPS, "interpolated frames per second in realtime mode")
	fs.BoolVar(&c.Realtime, "realtime", c.Realtime, "tick at -tps instead of as fast as possible")
	fs.Uint64Var(&c.Ticks, "ticks", c.Ticks, "stop after this many ticks (0 runs until interrupted)")
	fs.Uint64Var(&c.LogEvery, "log-every", c.LogEvery, "log flock statistics every N ticks (0 disables)")
	fs.IntVar(&c.Workers, "workers", c.Workers, "goroutines used to update boids")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the simulation random source")
	fs.StringVar(&c.Preset, "preset", c.Preset, "preset to apply after spawning")
	fs.BoolVar(&c.Probe, "probe", c.Probe, "feed distance sensors from the nearest boid")
	fs.Float64Var(&c.ProbeNoise, "probe-noise", c.ProbeNoise, "uniform noise added to probe readings")
	fs.Float64Var(&c.World.Width, "width", c.World.Width, "world width")
	fs.Float64Var(&c.World.Height, "height", c.World.Height, "world height")
	fs.IntVar(&c.Grid.Cols, "cols", c.Grid.Cols, "columns of the initial boid grid")
	fs.IntVar(&c.Grid.Rows, "rows", c.Grid.Rows, "rows of the initial boid grid")
}

// SetFlags records the flags explicitly set on fs, by name. Take it before
// loading a file: the bound fields are overwritten by the decode.
func SetFlags(fs *flag.FlagSet) map[string]string {
	set := map[string]string{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = f.Value.String()
	})
	return set
}

// Reapply sets the recorded flag values on c again, ignoring names Bind does
// not know.
func (c *Config) Reapply(set map[string]string) error {
	bound := flag.NewFlagSet("config", flag.ContinueOnError)
	c.Bind(bound)
	for name, value := range set {
		if bound.Lookup(name) == nil {
			continue
		}
		if err := bound.Set(name, value); err != nil {
			return fmt.Errorf("flag -%s: %w", name, err)
		}
	}
	return nil
}

// LoadOver decodes the TOML file at path onto c, keeping the flags set on fs
// so the command line wins over the file.
func (c *Config) LoadOver(path string, fs *flag.FlagSet) ([]string, error) {
	set := SetFlags(fs)
	undecoded, err := c.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := c.Reapply(set); err != nil {
		return nil, err
	}
	return undecoded, nil
}

// Validate reports every problem with c, each wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)))
	}

	if !positive(c.World.Width) || !positive(c.World.Height) {
		fail("world size %gx%g must be positive", c.World.Width, c.World.Height)
	}
	if c.TPS < 0 {
		fail("tps %d must not be negative", c.TPS)
	}
	if c.FPS < 0 {
		fail("fps %d must not be negative", c.FPS)
	}
	if c.Workers < 0 {
		fail("workers %d must not be negative", c.Workers)
	}
	if c.Grid.Cols < 0 || c.Grid.Rows < 0 {
		fail("grid %dx%d must not be negative", c.Grid.Cols, c.Grid.Rows)
	}
	if c.ProbeNoise < 0 || math.IsNaN(c.ProbeNoise) {
		fail("probe_noise %g must not be negative", c.ProbeNoise)
	}
	if c.Preset != "" {
		if _, err := preset.Get(c.Preset); err != nil {
			fail("%v", err)
		}
	}
	for i, a := range c.Attractors {
		if _, err := parseAttractorKind(a.Kind); err != nil {
			fail("attractors[%d]: %v", i, err)
		}
	}
	for i, s := range c.Sensors {
		if s.MaxDistance != nil && !positive(*s.MaxDistance) {
			fail("sensors[%d]: max_distance %g must be positive", i, *s.MaxDistance)
		}
	}
	return errors.Join(errs...)
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func parseAttractorKind(kind string) (simulation.Kind, error) {
	switch kind {
	case "", "radial":
		return simulation.KindAttractor, nil
	case "line":
		return simulation.KindAttractorLine, nil
	}
	return 0, fmt.Errorf("unknown attractor kind %q", kind)
}
