package solver

import (
	"gonum.org/v1/gonum/mat"
)

// solveDamped solves the damped normal equations (JᵗJ + λI)Δ = -Jᵗr by
// Cholesky factorization. Returns ok=false when the damped matrix is not
// positive definite, the signal the LM driver uses to raise λ and retry,
// never an error by itself.
func solveDamped(J *mat.Dense, r []float64, lambda float64) ([]float64, bool) {
	m, n := J.Dims()
	if m != len(r) || n == 0 {
		return nil, false
	}

	var jtj mat.Dense
	jtj.Mul(J.T(), J)

	A := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			A.SetSym(i, j, jtj.At(i, j))
		}
		A.SetSym(i, i, jtj.At(i, i)+lambda)
	}

	rhs := mat.NewVecDense(n, nil)
	rhs.MulVec(J.T(), mat.NewVecDense(m, r))
	rhs.ScaleVec(-1, rhs)

	var chol mat.Cholesky
	if ok := chol.Factorize(A); !ok {
		return nil, false
	}

	var x mat.VecDense
	if err := chol.SolveVecTo(&x, rhs); err != nil {
		return nil, false
	}

	delta := make([]float64, n)
	for i := 0; i < n; i++ {
		delta[i] = x.AtVec(i)
	}
	return delta, true
}
