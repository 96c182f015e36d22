package solver

import (
	"sketch-solver/internal/sketch"
)

// DOFStatus classifies a sketch by its degrees of freedom.
type DOFStatus int

const (
	Underconstrained DOFStatus = iota
	WellConstrained
	Overconstrained
)

// String returns a human-readable status name.
func (s DOFStatus) String() string {
	switch s {
	case Underconstrained:
		return "underconstrained"
	case WellConstrained:
		return "well-constrained"
	case Overconstrained:
		return "overconstrained"
	}
	return "unknown"
}

// DOFInfo reports the degree-of-freedom analysis of a sketch:
// DOF = 2*(free points) - sum of enabled constraint equation counts.
type DOFInfo struct {
	TotalVariables int
	NumEquations   int
	DOF            int
	Status         DOFStatus
}

// ComputeDOF counts free variables against enabled constraint equations.
// Pure structural analysis: no geometry is evaluated, so it is
// O(points + constraints).
func ComputeDOF(s *sketch.Sketch) DOFInfo {
	vars := 0
	for _, p := range s.Points() {
		if !p.Fixed {
			vars += 2
		}
	}

	eqs := 0
	for _, c := range s.Constraints() {
		if c.Enabled {
			eqs += c.Data.Equations()
		}
	}

	info := DOFInfo{
		TotalVariables: vars,
		NumEquations:   eqs,
		DOF:            vars - eqs,
	}
	switch {
	case info.DOF > 0:
		info.Status = Underconstrained
	case info.DOF == 0:
		info.Status = WellConstrained
	default:
		info.Status = Overconstrained
	}
	return info
}
