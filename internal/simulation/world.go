package simulation

import (
	"errors"
	"fmt"
	"math"

	"boids-sim/internal/common"
)

// ErrInvalidWorldSize is returned for non-positive or non-finite world sizes.
var ErrInvalidWorldSize = errors.New("invalid world size")

// World is the half-open rectangle [0, Size.X) × [0, Size.Y).
type World struct {
	Size common.Vector2
}

// NewWorld creates a world of the given size.
func NewWorld(width, height float64) (*World, error) {
	w := &World{}
	if err := w.Resize(width, height); err != nil {
		return nil, err
	}
	return w, nil
}

// Resize changes the world size. Entities are left where they are.
func (w *World) Resize(width, height float64) error {
	if !validExtent(width) || !validExtent(height) {
		return fmt.Errorf("%w: %gx%g", ErrInvalidWorldSize, width, height)
	}
	w.Size = common.NewVector2(width, height)
	return nil
}

// Center returns the middle of the world.
func (w *World) Center() common.Vector2 {
	return *w.Size.Copy().Mul(0.5)
}

// Diagonal returns the length of the world diagonal.
func (w *World) Diagonal() float64 {
	return w.Size.Length()
}

func validExtent(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
