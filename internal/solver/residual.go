package solver

import (
	"math"

	"sketch-solver/internal/sketch"
	"sketch-solver/pkg/geometry"
)

// degenerateSq is the squared-length floor below which a direction vector
// is treated as degenerate: the residual contributes 0 instead of dividing
// by (nearly) zero.
const degenerateSq = 1e-10

// Residuals evaluates one scalar per constraint equation at the current
// point positions, in constraint insertion order. Disabled constraints are
// skipped entirely. Constraints referencing a deleted point or entity are
// silently omitted; the sketch may be momentarily inconsistent while the
// user is editing, and the evaluator must tolerate that rather than fail.
// No shared scratch state: the function allocates its own output and only
// reads the sketch.
func Residuals(s *sketch.Sketch) []float64 {
	var r []float64
	for _, c := range s.Constraints() {
		if !c.Enabled {
			continue
		}
		r = appendResiduals(r, s, c.Data)
	}
	return r
}

// ConstraintResidual attributes residual values to the constraint that
// produced them, for diagnostics and UI display.
type ConstraintResidual struct {
	ID     sketch.ConstraintID
	Kind   sketch.ConstraintKind
	Values []float64
}

// ResidualsByConstraint evaluates residuals grouped per enabled
// constraint, in insertion order. Constraints contributing no residuals
// (unsupported kinds, dangling references) appear with empty Values.
func ResidualsByConstraint(s *sketch.Sketch) []ConstraintResidual {
	var out []ConstraintResidual
	for _, c := range s.Constraints() {
		if !c.Enabled {
			continue
		}
		out = append(out, ConstraintResidual{
			ID:     c.ID,
			Kind:   c.Data.Kind(),
			Values: appendResiduals(nil, s, c.Data),
		})
	}
	return out
}

// appendResiduals appends the residual(s) of a single constraint. Every
// payload kind has an explicit arm; Tangent, FixedPoint, FixedDistance and
// FixedAngle are declared-unsupported and contribute nothing.
func appendResiduals(r []float64, s *sketch.Sketch, data sketch.ConstraintData) []float64 {
	switch d := data.(type) {
	case sketch.Coincident:
		p1, ok1 := s.Point(d.P1)
		p2, ok2 := s.Point(d.P2)
		if !ok1 || !ok2 {
			return r
		}
		return append(r, p2.X-p1.X, p2.Y-p1.Y)

	case sketch.Distance:
		p1, ok1 := s.Point(d.P1)
		p2, ok2 := s.Point(d.P2)
		if !ok1 || !ok2 {
			return r
		}
		return append(r, p1.Pos().Distance(p2.Pos())-d.Value)

	case sketch.DistanceX:
		p1, ok1 := s.Point(d.P1)
		p2, ok2 := s.Point(d.P2)
		if !ok1 || !ok2 {
			return r
		}
		return append(r, (p2.X-p1.X)-d.Value)

	case sketch.DistanceY:
		p1, ok1 := s.Point(d.P1)
		p2, ok2 := s.Point(d.P2)
		if !ok1 || !ok2 {
			return r
		}
		return append(r, (p2.Y-p1.Y)-d.Value)

	case sketch.Angle:
		v1, ok1 := lineDirection(s, d.L1)
		v2, ok2 := lineDirection(s, d.L2)
		if !ok1 || !ok2 {
			return r
		}
		if v1.LengthSq() < degenerateSq || v2.LengthSq() < degenerateSq {
			return append(r, 0)
		}
		angle := math.Atan2(v1.Cross(v2), v1.Dot(v2))
		return append(r, wrapAngle(angle-d.Value))

	case sketch.Perpendicular:
		v1, ok1 := lineDirection(s, d.L1)
		v2, ok2 := lineDirection(s, d.L2)
		if !ok1 || !ok2 {
			return r
		}
		return append(r, v1.Dot(v2))

	case sketch.Parallel:
		v1, ok1 := lineDirection(s, d.L1)
		v2, ok2 := lineDirection(s, d.L2)
		if !ok1 || !ok2 {
			return r
		}
		return append(r, v1.Cross(v2))

	case sketch.Horizontal:
		v, ok := lineDirection(s, d.Line)
		if !ok {
			return r
		}
		return append(r, v.Y)

	case sketch.Vertical:
		v, ok := lineDirection(s, d.Line)
		if !ok {
			return r
		}
		return append(r, v.X)

	case sketch.Tangent:
		// Residual not implemented; the constraint still counts toward DOF.
		return r

	case sketch.Equal:
		e1, ok1 := s.Entity(d.E1)
		e2, ok2 := s.Entity(d.E2)
		if !ok1 || !ok2 {
			return r
		}
		if e1.IsLine() && e2.IsLine() {
			l1, ok1 := lineDirection(s, d.E1)
			l2, ok2 := lineDirection(s, d.E2)
			if !ok1 || !ok2 {
				return r
			}
			return append(r, l1.Length()-l2.Length())
		}
		if !e1.IsLine() && !e2.IsLine() {
			return append(r, e1.Radius-e2.Radius)
		}
		// Mixed line/circle equality has no defined measure.
		return r

	case sketch.PointOnLine:
		p, ok := s.Point(d.Point)
		if !ok {
			return r
		}
		e, ok := s.Entity(d.Line)
		if !ok || !e.IsLine() {
			return r
		}
		a, ok := s.Point(e.Start)
		if !ok {
			return r
		}
		v, ok := lineDirection(s, d.Line)
		if !ok {
			return r
		}
		lenSq := v.LengthSq()
		if lenSq < degenerateSq {
			return append(r, 0)
		}
		// Signed perpendicular distance to the infinite line through a.
		return append(r, v.Cross(p.Pos().Sub(a.Pos()))/math.Sqrt(lenSq))

	case sketch.PointOnCircle:
		p, ok := s.Point(d.Point)
		if !ok {
			return r
		}
		e, ok := s.Entity(d.Circle)
		if !ok || e.IsLine() {
			return r
		}
		c, ok := s.Point(e.Center)
		if !ok {
			return r
		}
		return append(r, p.Pos().Distance(c.Pos())-e.Radius)

	case sketch.FixedPoint:
		// Enforced by the Fixed flag on the point, not by a residual.
		return r

	case sketch.FixedDistance:
		return r

	case sketch.FixedAngle:
		return r
	}
	return r
}

// lineDirection returns end-start of a line entity. ok is false when the
// entity is missing, not a line, or references a deleted point.
func lineDirection(s *sketch.Sketch, id sketch.EntityID) (geometry.Point2D, bool) {
	e, ok := s.Entity(id)
	if !ok || !e.IsLine() {
		return geometry.Point2D{}, false
	}
	a, ok := s.Point(e.Start)
	if !ok {
		return geometry.Point2D{}, false
	}
	b, ok := s.Point(e.End)
	if !ok {
		return geometry.Point2D{}, false
	}
	return b.Pos().Sub(a.Pos()), true
}

// wrapAngle normalizes an angle difference to (-pi, pi] so that targets
// near the atan2 branch cut do not read as full-turn errors.
func wrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
