package common

import (
	"fmt"
	"math"
)

// Vector2 represents a point or direction in the 2D simulation plane.
//
// Methods with a pointer receiver mutate the vector in place and return it so
// calls can be chained. They never modify their argument. Callers that need
// the original value afterwards must Copy first.
type Vector2 struct {
	X float64 `toml:"x"`
	Y float64 `toml:"y"`
}

// NewVector2 creates a vector from its components.
func NewVector2(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Copy returns an independent copy of the vector.
func (v Vector2) Copy() *Vector2 {
	return &Vector2{X: v.X, Y: v.Y}
}

// Add adds other to the vector.
func (v *Vector2) Add(other Vector2) *Vector2 {
	v.X += other.X
	v.Y += other.Y
	return v
}

// Sub subtracts other from the vector.
func (v *Vector2) Sub(other Vector2) *Vector2 {
	v.X -= other.X
	v.Y -= other.Y
	return v
}

// Mul scales the vector by a scalar.
func (v *Vector2) Mul(scalar float64) *Vector2 {
	v.X *= scalar
	v.Y *= scalar
	return v
}

// Div divides the vector by a scalar.
func (v *Vector2) Div(scalar float64) *Vector2 {
	v.X /= scalar
	v.Y /= scalar
	return v
}

// MulVec multiplies the vector component-wise by other.
func (v *Vector2) MulVec(other Vector2) *Vector2 {
	v.X *= other.X
	v.Y *= other.Y
	return v
}

// DivVec divides the vector component-wise by other.
func (v *Vector2) DivVec(other Vector2) *Vector2 {
	v.X /= other.X
	v.Y /= other.Y
	return v
}

// Normalize scales the vector to unit length. A zero vector is divided by 1
// and stays zero.
func (v *Vector2) Normalize() *Vector2 {
	length := v.Length()
	if length == 0 {
		length = 1
	}
	return v.Div(length)
}

// Lerp moves the vector towards target by alpha, where 0 keeps the vector and
// 1 lands on target.
func (v *Vector2) Lerp(target Vector2, alpha float64) *Vector2 {
	v.X += (target.X - v.X) * alpha
	v.Y += (target.Y - v.Y) * alpha
	return v
}

// Rotate rotates the vector counter-clockwise by radians.
func (v *Vector2) Rotate(radians float64) *Vector2 {
	sin, cos := math.Sincos(radians)
	x, y := v.X, v.Y
	v.X = x*cos - y*sin
	v.Y = x*sin + y*cos
	return v
}

// LengthSq returns the squared Euclidean length.
func (v Vector2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the Euclidean length.
func (v Vector2) Length() float64 {
	return math.Sqrt(v.LengthSq())
}

// DistanceSq returns the squared distance between v and other.
func (v Vector2) DistanceSq(other Vector2) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between v and other.
func (v Vector2) Distance(other Vector2) float64 {
	return math.Sqrt(v.DistanceSq(other))
}

// Angle returns the direction of the vector in radians, in (-π, π].
func (v Vector2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Equals reports exact component equality.
func (v Vector2) Equals(other Vector2) bool {
	return v.X == other.X && v.Y == other.Y
}

// IsZero reports whether both components are zero.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// String returns a string representation of the vector.
func (v Vector2) String() string {
	return fmt.Sprintf("[%.3f, %.3f]", v.X, v.Y)
}
