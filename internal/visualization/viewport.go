package visualization

import (
	"math"

	"boids-sim/internal/common"
)

// padding is the screen margin kept around the world, in pixels.
const padding = 20.0

// Viewport maps world coordinates onto the screen, preserving the aspect
// ratio and centring the world.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Fit returns the viewport that shows the whole world on a screen of the
// given size.
func Fit(world common.Vector2, screenWidth, screenHeight int) Viewport {
	if world.X <= 0 || world.Y <= 0 || screenWidth <= 0 || screenHeight <= 0 {
		return Viewport{Scale: 1}
	}

	scaleX := (float64(screenWidth) - 2*padding) / world.X
	scaleY := (float64(screenHeight) - 2*padding) / world.Y
	scale := math.Min(scaleX, scaleY)
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}

	return Viewport{
		Scale:   scale,
		OffsetX: float64(screenWidth)/2 - world.X/2*scale,
		OffsetY: float64(screenHeight)/2 - world.Y/2*scale,
	}
}

// ToScreen converts world coordinates to screen coordinates.
func (v Viewport) ToScreen(p common.Vector2) (float32, float32) {
	return float32(p.X*v.Scale + v.OffsetX), float32(p.Y*v.Scale + v.OffsetY)
}

// Length converts a world distance to pixels.
func (v Viewport) Length(d float64) float32 {
	return float32(d * v.Scale)
}

// Triangle returns the screen vertices of a boid-shaped triangle of the given
// world size at p, pointing along heading (radians).
func (v Viewport) Triangle(p common.Vector2, heading, size float64) [3][2]float32 {
	tip := common.NewVector2(size/2, 0)
	left := common.NewVector2(-size/2, size/3)
	right := common.NewVector2(-size/2, -size/3)

	var out [3][2]float32
	for i, corner := range [...]common.Vector2{tip, left, right} {
		corner.Rotate(heading).Add(p)
		out[i][0], out[i][1] = v.ToScreen(corner)
	}
	return out
}
