//go:build ebiten

package visualization

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"boids-sim/internal/common"
	"boids-sim/internal/loop"
	"boids-sim/internal/simulation"
	"boids-sim/internal/stats"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// statsEvery is how many ticks pass between flock summary refreshes.
const statsEvery = 30

var (
	backgroundColor = color.RGBA{18, 18, 24, 255}
	attractorColor  = color.RGBA{255, 180, 40, 255}
	bandColor       = color.RGBA{255, 180, 40, 60}
	lineColor       = color.RGBA{80, 200, 255, 255}
	sensorColor     = color.RGBA{120, 255, 120, 255}
)

var whiteSubImage = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// Renderer implements ebiten.Game. It drives the simulation from a fixed-step
// clock and draws the interpolated state of every entity.
type Renderer struct {
	sim   *simulation.Simulation
	clock *loop.Clock

	screenWidth  int
	screenHeight int
	view         Viewport

	summary   stats.Summary
	lastStats uint64

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewRenderer creates a renderer ticking sim at the rate of clock.
func NewRenderer(sim *simulation.Simulation, clock *loop.Clock) *Renderer {
	return &Renderer{
		sim:     sim,
		clock:   clock,
		summary: stats.Summarize(sim),
	}
}

// Update advances the simulation by the ticks due since the previous call and
// interpolates the frame in between.
func (r *Renderer) Update() error {
	n, frac := r.clock.Advance(time.Now())
	for i := 0; i < n; i++ {
		r.sim.Tick()
	}
	r.sim.Frame(frac)

	if t := r.sim.Ticks(); t-r.lastStats >= statsEvery {
		r.summary = stats.Summarize(r.sim)
		r.lastStats = t
	}
	return nil
}

// Draw renders the interpolated simulation state.
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	r.view = Fit(r.sim.World().Size, r.screenWidth, r.screenHeight)

	top := r.view.OffsetY
	bottom := top + r.sim.World().Size.Y*r.view.Scale
	for _, l := range r.sim.AttractorLines() {
		if l.Strength.Max() == 0 {
			continue
		}
		x, _ := r.view.ToScreen(interpolatedPosition(l))
		vector.StrokeLine(screen, x, float32(top), x, float32(bottom), 1, lineColor, true)
	}

	for _, a := range r.sim.Attractors() {
		x, y := r.view.ToScreen(interpolatedPosition(a))
		if outer := r.view.Length(a.Radius.Max()); outer > 0 {
			vector.StrokeCircle(screen, x, y, outer, 1, bandColor, true)
		}
		vector.DrawFilledCircle(screen, x, y, 4, attractorColor, true)
	}

	for _, s := range r.sim.DistanceSensors() {
		x, y := r.view.ToScreen(s.Position())
		vector.DrawFilledRect(screen, x-3, y-3, 6, 6, sensorColor, true)
	}

	boids := r.sim.Boids()
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	for _, span := range batches(len(boids), triangleVertices) {
		r.vertices, r.indices = r.vertices[:0], r.indices[:0]
		for _, b := range boids[span[0]:span[1]] {
			r.appendBoid(b)
		}
		screen.DrawTriangles(r.vertices, r.indices, whiteSubImage, op)
	}

	r.drawDebugInfo(screen)
}

func (r *Renderer) appendBoid(b *simulation.Boid) {
	snap, ok := b.Interpolated()
	if !ok {
		snap = simulation.Snapshot{Position: b.Position(), Velocity: b.Velocity()}
	}
	tri := r.view.Triangle(snap.Position, snap.Velocity.Angle(), b.Size)

	cr, cg, cb, ca := b.Color.RGBA()
	base := uint16(len(r.vertices))
	for _, p := range tri {
		r.vertices = append(r.vertices, ebiten.Vertex{
			DstX: p[0], DstY: p[1],
			SrcX: 1, SrcY: 1,
			ColorR: float32(cr) / 0xffff,
			ColorG: float32(cg) / 0xffff,
			ColorB: float32(cb) / 0xffff,
			ColorA: float32(ca) / 0xffff,
		})
	}
	r.indices = append(r.indices, base, base+1, base+2)
}

func interpolatedPosition(e simulation.Entity) common.Vector2 {
	if snap, ok := e.Interpolated(); ok {
		return snap.Position
	}
	return e.Position()
}

func (r *Renderer) drawDebugInfo(screen *ebiten.Image) {
	s := r.summary
	msg := fmt.Sprintf("FPS: %.1f, TPS: %.1f (target %d)\n", ebiten.ActualFPS(), ebiten.ActualTPS(), r.clock.TPS())
	msg += fmt.Sprintf("Tick: %d  Boids: %d\n", r.sim.Ticks(), s.Boids)
	msg += fmt.Sprintf("Speed: %.2f ± %.2f  Polarization: %.2f\n", s.MeanSpeed, s.SpeedStdDev, s.Polarization)
	msg += fmt.Sprintf("Centroid: %s  Spread: %.1f", s.Centroid, s.Spread)
	ebitenutil.DebugPrint(screen, msg)
}

// Layout is called when the window size changes.
func (r *Renderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	r.screenWidth = outsideWidth
	r.screenHeight = outsideHeight
	return r.screenWidth, r.screenHeight
}
