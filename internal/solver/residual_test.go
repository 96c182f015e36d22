package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketch-solver/internal/sketch"
)

func TestResiduals(t *testing.T) {
	t.Run("coincident contributes dx dy", func(t *testing.T) {
		s := sketch.New()
		p1 := s.AddPoint(1, 2)
		p2 := s.AddPoint(4, 6)
		s.AddConstraint(sketch.Coincident{P1: p1, P2: p2})

		r := Residuals(s)
		require.Len(t, r, 2)
		assert.InDelta(t, 3, r[0], 1e-12)
		assert.InDelta(t, 4, r[1], 1e-12)
	})

	t.Run("distance", func(t *testing.T) {
		s := sketch.New()
		p1 := s.AddPoint(0, 0)
		p2 := s.AddPoint(3, 4)
		s.AddConstraint(sketch.Distance{P1: p1, P2: p2, Value: 5})

		r := Residuals(s)
		require.Len(t, r, 1)
		assert.InDelta(t, 0, r[0], 1e-12)
	})

	t.Run("axis distances are signed", func(t *testing.T) {
		s := sketch.New()
		p1 := s.AddPoint(10, 10)
		p2 := s.AddPoint(4, 25)
		s.AddConstraint(sketch.DistanceX{P1: p1, P2: p2, Value: 2})
		s.AddConstraint(sketch.DistanceY{P1: p1, P2: p2, Value: 2})

		r := Residuals(s)
		require.Len(t, r, 2)
		assert.InDelta(t, -8, r[0], 1e-12)
		assert.InDelta(t, 13, r[1], 1e-12)
	})

	t.Run("angle between lines", func(t *testing.T) {
		s := sketch.New()
		o := s.AddPoint(0, 0)
		px := s.AddPoint(10, 0)
		pd := s.AddPoint(5, 5)
		l1, err := s.AddLine(o, px)
		require.NoError(t, err)
		l2, err := s.AddLine(o, pd)
		require.NoError(t, err)
		s.AddConstraint(sketch.Angle{L1: l1, L2: l2, Value: math.Pi / 4})

		r := Residuals(s)
		require.Len(t, r, 1)
		assert.InDelta(t, 0, r[0], 1e-12)
	})

	t.Run("angle residual wraps across the branch cut", func(t *testing.T) {
		s := sketch.New()
		o := s.AddPoint(0, 0)
		px := s.AddPoint(10, 0)
		pd := s.AddPoint(10, -1) // just below the +x axis
		l1, _ := s.AddLine(o, px)
		l2, _ := s.AddLine(o, pd)
		// Target just above the +x axis: the difference should be small,
		// not nearly a full turn.
		s.AddConstraint(sketch.Angle{L1: l1, L2: l2, Value: 0.1})

		r := Residuals(s)
		require.Len(t, r, 1)
		assert.Less(t, math.Abs(r[0]), 0.3)
	})

	t.Run("perpendicular and parallel", func(t *testing.T) {
		s := sketch.New()
		a := s.AddPoint(0, 0)
		b := s.AddPoint(2, 0)
		c := s.AddPoint(0, 3)
		l1, _ := s.AddLine(a, b)
		l2, _ := s.AddLine(a, c)
		s.AddConstraint(sketch.Perpendicular{L1: l1, L2: l2})
		s.AddConstraint(sketch.Parallel{L1: l1, L2: l2})

		r := Residuals(s)
		require.Len(t, r, 2)
		assert.InDelta(t, 0, r[0], 1e-12) // dot of orthogonal vectors
		assert.InDelta(t, 6, r[1], 1e-12) // cross 2*3
	})

	t.Run("horizontal and vertical", func(t *testing.T) {
		s := sketch.New()
		a := s.AddPoint(0, 0)
		b := s.AddPoint(4, 1)
		l, _ := s.AddLine(a, b)
		s.AddConstraint(sketch.Horizontal{Line: l})
		s.AddConstraint(sketch.Vertical{Line: l})

		r := Residuals(s)
		require.Len(t, r, 2)
		assert.InDelta(t, 1, r[0], 1e-12)
		assert.InDelta(t, 4, r[1], 1e-12)
	})

	t.Run("equal lines and equal circles", func(t *testing.T) {
		s := sketch.New()
		a := s.AddPoint(0, 0)
		b := s.AddPoint(3, 0)
		c := s.AddPoint(0, 5)
		l1, _ := s.AddLine(a, b)
		l2, _ := s.AddLine(a, c)
		c1, _ := s.AddCircle(a, 2)
		c2, _ := s.AddCircle(b, 3.5)
		s.AddConstraint(sketch.Equal{E1: l1, E2: l2})
		s.AddConstraint(sketch.Equal{E1: c1, E2: c2})

		r := Residuals(s)
		require.Len(t, r, 2)
		assert.InDelta(t, -2, r[0], 1e-12)
		assert.InDelta(t, -1.5, r[1], 1e-12)
	})

	t.Run("mixed equal contributes nothing", func(t *testing.T) {
		s := sketch.New()
		a := s.AddPoint(0, 0)
		b := s.AddPoint(3, 0)
		l, _ := s.AddLine(a, b)
		c, _ := s.AddCircle(a, 2)
		s.AddConstraint(sketch.Equal{E1: l, E2: c})

		assert.Empty(t, Residuals(s))
	})

	t.Run("point on line is signed perpendicular distance", func(t *testing.T) {
		s := sketch.New()
		a := s.AddPoint(0, 0)
		b := s.AddPoint(10, 0)
		p := s.AddPoint(5, 2)
		l, _ := s.AddLine(a, b)
		s.AddConstraint(sketch.PointOnLine{Point: p, Line: l})

		r := Residuals(s)
		require.Len(t, r, 1)
		assert.InDelta(t, 2, r[0], 1e-12)
	})

	t.Run("point on circle", func(t *testing.T) {
		s := sketch.New()
		center := s.AddPoint(0, 0)
		p := s.AddPoint(4, 0)
		c, _ := s.AddCircle(center, 3)
		s.AddConstraint(sketch.PointOnCircle{Point: p, Circle: c})

		r := Residuals(s)
		require.Len(t, r, 1)
		assert.InDelta(t, 1, r[0], 1e-12)
	})

	t.Run("unsupported kinds are skipped", func(t *testing.T) {
		s := sketch.New()
		a := s.AddPoint(0, 0)
		b := s.AddPoint(3, 0)
		l, _ := s.AddLine(a, b)
		c, _ := s.AddCircle(a, 2)
		s.AddConstraint(sketch.Tangent{E1: l, E2: c})
		s.AddConstraint(sketch.FixedPoint{Point: a})
		s.AddConstraint(sketch.FixedDistance{Constraint: 1})
		s.AddConstraint(sketch.FixedAngle{Constraint: 1})

		assert.Empty(t, Residuals(s))
	})

	t.Run("disabled constraints are skipped", func(t *testing.T) {
		s := sketch.New()
		p1 := s.AddPoint(0, 0)
		p2 := s.AddPoint(3, 4)
		id := s.AddConstraint(sketch.Distance{P1: p1, P2: p2, Value: 1})
		s.SetConstraintEnabled(id, false)

		assert.Empty(t, Residuals(s))
	})

	t.Run("dangling point reference is silently omitted", func(t *testing.T) {
		s := sketch.New()
		p1 := s.AddPoint(0, 0)
		s.AddConstraint(sketch.Distance{P1: p1, P2: 999, Value: 5})
		s.AddConstraint(sketch.Coincident{P1: 998, P2: 999})
		s.AddConstraint(sketch.Horizontal{Line: 777})

		assert.NotPanics(t, func() {
			assert.Empty(t, Residuals(s))
		})
	})

	t.Run("degenerate line contributes zero instead of NaN", func(t *testing.T) {
		s := sketch.New()
		a := s.AddPoint(1, 1)
		b := s.AddPoint(1, 1)
		other1 := s.AddPoint(0, 0)
		other2 := s.AddPoint(5, 0)
		zero, _ := s.AddLine(a, b)
		ok, _ := s.AddLine(other1, other2)
		p := s.AddPoint(2, 2)
		s.AddConstraint(sketch.Angle{L1: zero, L2: ok, Value: 1})
		s.AddConstraint(sketch.PointOnLine{Point: p, Line: zero})

		r := Residuals(s)
		require.Len(t, r, 2)
		for _, v := range r {
			assert.False(t, math.IsNaN(v))
			assert.False(t, math.IsInf(v, 0))
			assert.Equal(t, 0.0, v)
		}
	})

	t.Run("residuals follow constraint insertion order", func(t *testing.T) {
		s := sketch.New()
		p1 := s.AddPoint(0, 0)
		p2 := s.AddPoint(3, 0)
		s.AddConstraint(sketch.DistanceX{P1: p1, P2: p2, Value: 0}) // 3
		s.AddConstraint(sketch.DistanceY{P1: p1, P2: p2, Value: 1}) // -1

		r := Residuals(s)
		require.Len(t, r, 2)
		assert.InDelta(t, 3, r[0], 1e-12)
		assert.InDelta(t, -1, r[1], 1e-12)
	})
}

func TestResidualsByConstraint(t *testing.T) {
	s := sketch.New()
	p1 := s.AddPoint(0, 0)
	p2 := s.AddPoint(3, 4)
	s.AddConstraint(sketch.Distance{P1: p1, P2: p2, Value: 5})
	s.AddConstraint(sketch.Coincident{P1: p1, P2: p2})
	s.AddConstraint(sketch.FixedPoint{Point: p1})

	out := ResidualsByConstraint(s)
	require.Len(t, out, 3)
	assert.Equal(t, sketch.KindDistance, out[0].Kind)
	assert.Len(t, out[0].Values, 1)
	assert.Len(t, out[1].Values, 2)
	assert.Empty(t, out[2].Values)
}
