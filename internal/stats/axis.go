package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// principalComponents runs a PCA over the points (xs[i], ys[i]).
func principalComponents(xs, ys []float64) (*stat.PC, bool) {
	n := len(xs)
	if n < 2 || len(ys) != n {
		return nil, false
	}

	// Samples as rows, coordinates as columns.
	data := make([]float64, 0, 2*n)
	for i := range xs {
		data = append(data, xs[i], ys[i])
	}

	var pc stat.PC
	if !pc.PrincipalComponents(mat.NewDense(n, 2, data), nil) {
		return nil, false
	}
	return &pc, true
}

// PrincipalAxis returns the angle of the first principal component of the
// points, folded into (-π/2, π/2] since an axis has no direction. ok is false
// for fewer than two points or when the analysis fails.
func PrincipalAxis(xs, ys []float64) (angle float64, ok bool) {
	pc, ok := principalComponents(xs, ys)
	if !ok {
		return 0, false
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)

	angle = math.Atan2(vecs.At(1, 0), vecs.At(0, 0))
	if angle > math.Pi/2 {
		angle -= math.Pi
	} else if angle <= -math.Pi/2 {
		angle += math.Pi
	}
	return angle, true
}

// Elongation returns the share of the total variance carried by the principal
// axis: 0.5 for an isotropic cloud, 1 for points on a line, 0 when undefined.
func Elongation(xs, ys []float64) float64 {
	pc, ok := principalComponents(xs, ys)
	if !ok {
		return 0
	}
	vars := pc.VarsTo(nil)
	total := floats.Sum(vars)
	if total == 0 {
		return 0
	}
	return vars[0] / total
}
