package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"sketch-solver/internal/sketch"
)

// Jacobian computes the matrix of partial derivatives of every residual
// with respect to every free variable, by central finite differences:
// column k = (r(x_k+eps) - r(x_k-eps)) / (2*eps). Free variables are the
// concatenated (x, y) of the points in freeIDs, in that order: the same
// packing order used when applying solver steps. Each column costs two
// full residual evaluations, which makes this the dominant cost of a
// solve.
//
// The sketch is perturbed in place and restored before returning. A change
// in residual count between perturbed evaluations means the caller mutated
// the sketch mid-solve, which is a programmer error and panics.
func Jacobian(s *sketch.Sketch, freeIDs []sketch.PointID, epsilon float64) *mat.Dense {
	base := Residuals(s)
	m := len(base)
	n := 2 * len(freeIDs)
	J := mat.NewDense(m, n, nil)

	for k, id := range freeIDs {
		p, ok := s.Point(id)
		if !ok {
			panic(fmt.Sprintf("solver: free point %d disappeared during solve", id))
		}

		setColumn(J, 2*k, m, s, id, p.X+epsilon, p.Y, p.X-epsilon, p.Y, epsilon)
		setColumn(J, 2*k+1, m, s, id, p.X, p.Y+epsilon, p.X, p.Y-epsilon, epsilon)

		s.SetPointPosition(id, p.X, p.Y)
	}
	return J
}

// setColumn fills one Jacobian column from a +eps/-eps perturbation pair.
func setColumn(J *mat.Dense, col, m int, s *sketch.Sketch, id sketch.PointID, px, py, mx, my, epsilon float64) {
	s.SetPointPosition(id, px, py)
	plus := Residuals(s)
	s.SetPointPosition(id, mx, my)
	minus := Residuals(s)

	if len(plus) != m || len(minus) != m {
		panic(fmt.Sprintf("solver: residual count changed during perturbation (%d/%d vs %d)", len(plus), len(minus), m))
	}
	inv := 1.0 / (2 * epsilon)
	for i := 0; i < m; i++ {
		J.Set(i, col, (plus[i]-minus[i])*inv)
	}
}
