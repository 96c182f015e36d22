// Package solver repositions the free points of a sketch so that its
// enabled constraints are satisfied, using damped nonlinear least squares
// (Levenberg-Marquardt) with a finite-difference Jacobian. It also reports
// the sketch's degrees of freedom.
//
// A solve runs synchronously on the calling goroutine and mutates point
// coordinates in place. Callers must not mutate the sketch concurrently
// with an in-flight solve.
package solver

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"sketch-solver/internal/sketch"
)

// Status is the outcome of a solve.
type Status int

const (
	// StatusSuccess: all enabled constraints satisfied within tolerance.
	// Underconstrained sketches succeed too; they converge to one
	// solution among the continuum, which is what live dragging wants.
	StatusSuccess Status = iota
	// StatusMaxIterations: iteration budget exhausted before convergence.
	// The sketch is left at its best-found positions, not rolled back.
	StatusMaxIterations
	// StatusOverconstrained: DOF < 0, detected before any numeric work.
	StatusOverconstrained
	// StatusUnderconstrained exists for callers that branch on the DOF
	// classification carried in the result; the driver itself never
	// returns it.
	StatusUnderconstrained
	// StatusNumericalError: no usable step found after exhausting damping
	// retries, typically an inconsistent or pathologically conditioned
	// constraint set.
	StatusNumericalError
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusMaxIterations:
		return "max-iterations"
	case StatusOverconstrained:
		return "overconstrained"
	case StatusUnderconstrained:
		return "underconstrained"
	case StatusNumericalError:
		return "numerical-error"
	}
	return "unknown"
}

// Result reports the outcome of one solve call.
type Result struct {
	Status        Status
	Iterations    int
	FinalResidual float64
	Message       string
	DOF           DOFInfo
}

// Solve runs the Levenberg-Marquardt loop on the sketch, mutating free
// point coordinates in place. It never returns an error: every outcome,
// including conflicting constraints and non-convergence, is encoded in
// the Result.
func Solve(s *sketch.Sketch, cfg Config) Result {
	info := ComputeDOF(s)
	if info.Status == Overconstrained {
		return Result{
			Status:        StatusOverconstrained,
			Iterations:    0,
			FinalResidual: floats.Norm(Residuals(s), 2),
			Message:       fmt.Sprintf("overconstrained: %d equations for %d variables", info.NumEquations, info.TotalVariables),
			DOF:           info,
		}
	}

	// Packing order is computed once and reused for every evaluate, apply
	// and restore within this solve.
	freeIDs := s.FreePointIDs()
	lambda := cfg.LambdaInitial

	for iter := 0; iter < cfg.MaxIterations; iter++ {
		r := Residuals(s)
		if len(r) == 0 {
			return Result{
				Status:  StatusSuccess,
				Message: "no residual equations to solve",
				DOF:     info,
			}
		}
		norm := floats.Norm(r, 2)
		if norm < cfg.Tolerance {
			return Result{
				Status:        StatusSuccess,
				Iterations:    iter,
				FinalResidual: norm,
				Message:       fmt.Sprintf("converged to %.3g in %d iterations", norm, iter),
				DOF:           info,
			}
		}

		J := Jacobian(s, freeIDs, cfg.Epsilon)

		stepped := false
		for attempt := 0; attempt < cfg.MaxDampingRetries; attempt++ {
			delta, ok := solveDamped(J, r, lambda)
			if !ok {
				// Not positive definite at this damping level.
				lambda *= cfg.LambdaFactor
				continue
			}

			// Trial step with snapshot/restore: restoring the saved
			// vector avoids the float drift of re-applying a negated
			// delta.
			snapshot := packVariables(s, freeIDs)
			trial := make([]float64, len(snapshot))
			floats.AddTo(trial, snapshot, delta)
			applyVariables(s, freeIDs, trial)

			newNorm := floats.Norm(Residuals(s), 2)
			if newNorm < norm {
				lambda /= cfg.LambdaFactor
				stepped = true
				break
			}

			applyVariables(s, freeIDs, snapshot)
			lambda *= cfg.LambdaFactor
		}

		if !stepped {
			return Result{
				Status:        StatusNumericalError,
				Iterations:    iter,
				FinalResidual: norm,
				Message:       fmt.Sprintf("no usable step after %d damping retries (residual %.3g)", cfg.MaxDampingRetries, norm),
				DOF:           info,
			}
		}
	}

	final := floats.Norm(Residuals(s), 2)
	return Result{
		Status:        StatusMaxIterations,
		Iterations:    cfg.MaxIterations,
		FinalResidual: final,
		Message:       fmt.Sprintf("did not converge in %d iterations (residual %.3g)", cfg.MaxIterations, final),
		DOF:           info,
	}
}

// packVariables collects the (x, y) of the free points into a flat vector
// in packing order.
func packVariables(s *sketch.Sketch, ids []sketch.PointID) []float64 {
	x := make([]float64, 2*len(ids))
	for k, id := range ids {
		p, ok := s.Point(id)
		if !ok {
			panic(fmt.Sprintf("solver: free point %d disappeared during solve", id))
		}
		x[2*k] = p.X
		x[2*k+1] = p.Y
	}
	return x
}

// applyVariables writes a flat variable vector back onto the free points.
func applyVariables(s *sketch.Sketch, ids []sketch.PointID, x []float64) {
	if len(x) != 2*len(ids) {
		panic(fmt.Sprintf("solver: variable vector length %d does not match %d free points", len(x), len(ids)))
	}
	for k, id := range ids {
		s.SetPointPosition(id, x[2*k], x[2*k+1])
	}
}
