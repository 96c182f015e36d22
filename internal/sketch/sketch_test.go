package sketch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSketchLookup(t *testing.T) {
	s := New()
	p1 := s.AddPoint(1, 2)
	p2 := s.AddFixedPoint(3, 4)
	l, err := s.AddLine(p1, p2)
	require.NoError(t, err)
	c := s.AddConstraint(Horizontal{Line: l})

	t.Run("points", func(t *testing.T) {
		p, ok := s.Point(p1)
		require.True(t, ok)
		assert.Equal(t, 1.0, p.X)
		assert.False(t, p.Fixed)

		p, ok = s.Point(p2)
		require.True(t, ok)
		assert.True(t, p.Fixed)

		_, ok = s.Point(999)
		assert.False(t, ok)
	})

	t.Run("entities", func(t *testing.T) {
		e, ok := s.Entity(l)
		require.True(t, ok)
		assert.True(t, e.IsLine())
		assert.Equal(t, p1, e.Start)

		_, ok = s.Entity(999)
		assert.False(t, ok)
	})

	t.Run("constraints", func(t *testing.T) {
		got, ok := s.Constraint(c)
		require.True(t, ok)
		assert.True(t, got.Enabled)
		assert.Equal(t, KindHorizontal, got.Data.Kind())
	})
}

func TestSketchAddValidation(t *testing.T) {
	s := New()
	p := s.AddPoint(0, 0)

	_, err := s.AddLine(p, 999)
	assert.Error(t, err)
	_, err = s.AddCircle(999, 1)
	assert.Error(t, err)
	_, err = s.AddArc(p, p, 999, 1)
	assert.Error(t, err)
}

func TestSketchIDsNeverReused(t *testing.T) {
	s := New()
	p1 := s.AddPoint(0, 0)
	require.True(t, s.RemovePoint(p1))
	p2 := s.AddPoint(1, 1)
	assert.Greater(t, int(p2), int(p1))
}

func TestSketchRemovePointCascades(t *testing.T) {
	s := New()
	p1 := s.AddPoint(0, 0)
	p2 := s.AddPoint(10, 0)
	p3 := s.AddPoint(5, 5)
	l, err := s.AddLine(p1, p2)
	require.NoError(t, err)
	s.AddConstraint(Horizontal{Line: l})
	s.AddConstraint(Distance{P1: p1, P2: p3, Value: 2})
	keep := s.AddConstraint(FixedPoint{Point: p3})

	require.True(t, s.RemovePoint(p1))

	// The line and both constraints touching p1 (directly or through the
	// line) are gone; the unrelated constraint survives.
	_, ok := s.Entity(l)
	assert.False(t, ok)
	require.Len(t, s.Constraints(), 1)
	assert.Equal(t, keep, s.Constraints()[0].ID)
}

func TestSketchRemoveEntityCascades(t *testing.T) {
	s := New()
	p1 := s.AddPoint(0, 0)
	p2 := s.AddPoint(10, 0)
	p3 := s.AddPoint(5, 5)
	l1, _ := s.AddLine(p1, p2)
	l2, _ := s.AddLine(p1, p3)
	s.AddConstraint(Perpendicular{L1: l1, L2: l2})

	require.True(t, s.RemoveEntity(l2))

	assert.Empty(t, s.Constraints())
	// p3 was only referenced by the removed line; it is orphaned and goes
	// with it. p1 and p2 survive through l1.
	_, ok := s.Point(p3)
	assert.False(t, ok)
	_, ok = s.Point(p1)
	assert.True(t, ok)
	_, ok = s.Point(p2)
	assert.True(t, ok)
}

func TestSketchSetters(t *testing.T) {
	s := New()
	free := s.AddPoint(0, 0)
	fixed := s.AddFixedPoint(1, 1)
	c, _ := s.AddCircle(fixed, 5)
	d := s.AddConstraint(Distance{P1: free, P2: fixed, Value: 5})
	h := s.AddConstraint(FixedPoint{Point: fixed})

	t.Run("fixed points cannot be positioned", func(t *testing.T) {
		assert.True(t, s.SetPointPosition(free, 2, 3))
		assert.False(t, s.SetPointPosition(fixed, 2, 3))
		p, _ := s.Point(fixed)
		assert.Equal(t, 1.0, p.X)
	})

	t.Run("radius only on circles", func(t *testing.T) {
		assert.True(t, s.SetEntityRadius(c, 7))
		e, _ := s.Entity(c)
		assert.Equal(t, 7.0, e.Radius)
	})

	t.Run("dimension edit", func(t *testing.T) {
		assert.True(t, s.SetConstraintValue(d, 9))
		got, _ := s.Constraint(d)
		assert.Equal(t, 9.0, got.Data.(Distance).Value)

		assert.False(t, s.SetConstraintValue(h, 9))
	})
}

func TestSketchFreePointIDs(t *testing.T) {
	s := New()
	p1 := s.AddPoint(0, 0)
	s.AddFixedPoint(1, 1)
	p3 := s.AddPoint(2, 2)

	assert.Equal(t, []PointID{p1, p3}, s.FreePointIDs())
}

func TestSketchJSONRoundTrip(t *testing.T) {
	s := New()
	p1 := s.AddFixedPoint(0, 0)
	p2 := s.AddPoint(60, 0)
	p3 := s.AddPoint(60, 40)
	l1, _ := s.AddLine(p1, p2)
	l2, _ := s.AddLine(p2, p3)
	circ, _ := s.AddCircle(p1, 12.5)
	s.AddArc(p1, p2, p3, 60)

	s.AddConstraint(Horizontal{Line: l1})
	s.AddConstraint(Perpendicular{L1: l1, L2: l2})
	s.AddConstraint(Distance{P1: p1, P2: p2, Value: 60})
	s.AddConstraint(PointOnCircle{Point: p2, Circle: circ})
	disabled := s.AddConstraint(Coincident{P1: p1, P2: p3})
	s.SetConstraintEnabled(disabled, false)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var loaded Sketch
	require.NoError(t, json.Unmarshal(data, &loaded))

	require.Len(t, loaded.Points(), 3)
	require.Len(t, loaded.Entities(), 4)
	require.Len(t, loaded.Constraints(), 5)

	p, ok := loaded.Point(p1)
	require.True(t, ok)
	assert.True(t, p.Fixed)

	e, ok := loaded.Entity(circ)
	require.True(t, ok)
	assert.True(t, e.IsCircle())
	assert.Equal(t, 12.5, e.Radius)

	c, ok := loaded.Constraint(disabled)
	require.True(t, ok)
	assert.False(t, c.Enabled)
	assert.Equal(t, KindCoincident, c.Data.Kind())

	dist, ok := loaded.Constraint(3)
	require.True(t, ok)
	assert.Equal(t, Distance{P1: p1, P2: p2, Value: 60}, dist.Data)

	// Counters survive, so new ids stay unique after a round trip.
	assert.Equal(t, PointID(4), loaded.AddPoint(9, 9))
}

func TestSketchJSONAllConstraintKinds(t *testing.T) {
	s := New()
	p1 := s.AddPoint(0, 0)
	p2 := s.AddPoint(1, 0)
	l1, _ := s.AddLine(p1, p2)
	l2, _ := s.AddLine(p2, p1)
	c1, _ := s.AddCircle(p1, 2)

	all := []ConstraintData{
		Coincident{P1: p1, P2: p2},
		Distance{P1: p1, P2: p2, Value: 1},
		DistanceX{P1: p1, P2: p2, Value: 1},
		DistanceY{P1: p1, P2: p2, Value: 1},
		Angle{L1: l1, L2: l2, Value: 0.5},
		Perpendicular{L1: l1, L2: l2},
		Parallel{L1: l1, L2: l2},
		Horizontal{Line: l1},
		Vertical{Line: l2},
		Tangent{E1: l1, E2: c1},
		Equal{E1: l1, E2: l2},
		PointOnLine{Point: p1, Line: l2},
		PointOnCircle{Point: p2, Circle: c1},
		FixedPoint{Point: p1},
		FixedDistance{Constraint: 2},
		FixedAngle{Constraint: 5},
	}
	for _, data := range all {
		s.AddConstraint(data)
	}

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var loaded Sketch
	require.NoError(t, json.Unmarshal(raw, &loaded))
	require.Len(t, loaded.Constraints(), len(all))
	for i, c := range loaded.Constraints() {
		assert.Equal(t, all[i], c.Data, "kind %s", all[i].Kind())
	}
}
