package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoint2D(t *testing.T) {
	a := NewPoint2D(0, 0)
	b := NewPoint2D(3, 4)

	assert.Equal(t, 5.0, a.Distance(b))
	assert.Equal(t, Point2D{X: 3, Y: 4}, a.Add(b))
	assert.Equal(t, Point2D{X: -3, Y: -4}, a.Sub(b))
	assert.Equal(t, Point2D{X: 6, Y: 8}, b.Scale(2))
	assert.Equal(t, 25.0, b.Dot(b))
	assert.Equal(t, 0.0, b.Cross(b))
	assert.Equal(t, 5.0, b.Length())
	assert.Equal(t, 25.0, b.LengthSq())

	// Cross of x-axis with y-axis is +1.
	assert.Equal(t, 1.0, Point2D{X: 1}.Cross(Point2D{Y: 1}))
}

func TestAffineTransform(t *testing.T) {
	t.Run("compose translation and scale", func(t *testing.T) {
		tf := Translation(10, 20).Compose(Scale(2, 3))
		got := tf.Apply(Point2D{X: 1, Y: 1})
		assert.Equal(t, Point2D{X: 12, Y: 23}, got)
	})

	t.Run("inverse round trip", func(t *testing.T) {
		tf := Translation(5, -7).Compose(Scale(2, -4))
		inv, ok := tf.Inverse()
		require.True(t, ok)

		p := Point2D{X: 3.5, Y: -1.25}
		back := inv.Apply(tf.Apply(p))
		assert.InDelta(t, p.X, back.X, 1e-12)
		assert.InDelta(t, p.Y, back.Y, 1e-12)
	})

	t.Run("degenerate scale has no inverse", func(t *testing.T) {
		_, ok := Scale(0, 1).Inverse()
		assert.False(t, ok)
	})
}

func TestRect(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	assert.True(t, r.Contains(Point2D{X: 5, Y: 5}))
	assert.False(t, r.Contains(Point2D{X: 15, Y: 5}))
	assert.Equal(t, Point2D{X: 5, Y: 5}, r.Center())

	u := r.Union(NewRect(5, 5, 10, 10))
	assert.Equal(t, NewRect(0, 0, 15, 15), u)

	e := r.Expand(2)
	assert.Equal(t, NewRect(-2, -2, 14, 14), e)
}

func TestBoundingBox(t *testing.T) {
	assert.Equal(t, Rect{}, BoundingBox(nil))

	box := BoundingBox([]Point2D{{X: 1, Y: 2}, {X: -3, Y: 7}, {X: 4, Y: 0}})
	assert.Equal(t, -3.0, box.X)
	assert.Equal(t, 0.0, box.Y)
	assert.Equal(t, 7.0, box.Width)
	assert.Equal(t, 7.0, box.Height)

	single := BoundingBox([]Point2D{{X: math.Pi, Y: math.E}})
	assert.Equal(t, 0.0, single.Width)
	assert.Equal(t, 0.0, single.Height)
}
