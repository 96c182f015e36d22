// Package render rasterizes a sketch into an RGBA image. It is the
// offline counterpart of the interactive canvas: cmd/sketchrender writes
// its output to PNG, and the fyne canvas displays it directly.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"sketch-solver/internal/sketch"
	"sketch-solver/pkg/geometry"
)

// circleSegments is the polygon resolution used for circles and arcs.
const circleSegments = 64

// Options controls the output image.
type Options struct {
	Width  int
	Height int
	// Margin is the border, in pixels, kept around the sketch's bounding
	// box when fitting it to the image.
	Margin float64

	Background  color.Color
	EntityColor color.Color
	PointColor  color.Color
	FixedColor  color.Color

	StrokeWidth float64
	PointRadius float64
}

// DefaultOptions returns render settings suitable for previews.
func DefaultOptions() Options {
	return Options{
		Width:       800,
		Height:      600,
		Margin:      40,
		Background:  color.White,
		EntityColor: color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF},
		PointColor:  color.RGBA{R: 0x1E, G: 0x66, B: 0xC8, A: 0xFF},
		FixedColor:  color.RGBA{R: 0xC0, G: 0x30, B: 0x30, A: 0xFF},
		StrokeWidth: 2,
		PointRadius: 4,
	}
}

// Render draws the sketch entities and point handles into a new image,
// fitted to the sketch's bounding box. The sketch is only read.
func Render(s *sketch.Sketch, opts Options) *image.RGBA {
	return RenderWithTransform(s, opts, FitTransform(s, opts))
}

// RenderWithTransform draws the sketch using a caller-supplied sketch-to-
// pixel transform, letting the interactive canvas apply its own zoom.
func RenderWithTransform(s *sketch.Sketch, opts Options, tf geometry.AffineTransform) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	for _, e := range s.Entities() {
		drawEntity(img, s, e, tf, opts)
	}
	for _, p := range s.Points() {
		col := opts.PointColor
		if p.Fixed {
			col = opts.FixedColor
		}
		fillDot(img, tf.Apply(p.Pos()), opts.PointRadius, col)
	}
	return img
}

// FitTransform maps sketch coordinates to image pixels, preserving aspect
// ratio and flipping y so sketch +y points up on screen.
func FitTransform(s *sketch.Sketch, opts Options) geometry.AffineTransform {
	pts := make([]geometry.Point2D, 0, len(s.Points()))
	for _, p := range s.Points() {
		pts = append(pts, p.Pos())
	}
	// Circles extend past their center points.
	for _, e := range s.Entities() {
		if e.IsLine() {
			continue
		}
		if c, ok := s.Point(e.Center); ok {
			pts = append(pts,
				geometry.Point2D{X: c.X - e.Radius, Y: c.Y - e.Radius},
				geometry.Point2D{X: c.X + e.Radius, Y: c.Y + e.Radius})
		}
	}

	box := geometry.BoundingBox(pts)
	if box.Width < 1e-9 {
		box.Width = 1
	}
	if box.Height < 1e-9 {
		box.Height = 1
	}

	availW := float64(opts.Width) - 2*opts.Margin
	availH := float64(opts.Height) - 2*opts.Margin
	scale := math.Min(availW/box.Width, availH/box.Height)

	center := box.Center()
	return geometry.Translation(float64(opts.Width)/2, float64(opts.Height)/2).
		Compose(geometry.Scale(scale, -scale)).
		Compose(geometry.Translation(-center.X, -center.Y))
}

func drawEntity(img *image.RGBA, s *sketch.Sketch, e sketch.Entity, tf geometry.AffineTransform, opts Options) {
	switch e.Type {
	case sketch.EntityLine:
		a, okA := s.Point(e.Start)
		b, okB := s.Point(e.End)
		if !okA || !okB {
			return
		}
		strokeSegment(img, tf.Apply(a.Pos()), tf.Apply(b.Pos()), opts.StrokeWidth, opts.EntityColor)

	case sketch.EntityCircle:
		c, ok := s.Point(e.Center)
		if !ok {
			return
		}
		strokeArc(img, c.Pos(), e.Radius, 0, 2*math.Pi, tf, opts)

	case sketch.EntityArc:
		c, okC := s.Point(e.Center)
		a, okA := s.Point(e.Start)
		b, okB := s.Point(e.End)
		if !okC || !okA || !okB {
			return
		}
		radius := c.Pos().Distance(a.Pos())
		a0 := math.Atan2(a.Y-c.Y, a.X-c.X)
		a1 := math.Atan2(b.Y-c.Y, b.X-c.X)
		if a1 <= a0 {
			a1 += 2 * math.Pi
		}
		strokeArc(img, c.Pos(), radius, a0, a1, tf, opts)
	}
}

// strokeArc draws an arc as a chain of short segments.
func strokeArc(img *image.RGBA, center geometry.Point2D, radius, a0, a1 float64, tf geometry.AffineTransform, opts Options) {
	if radius <= 0 {
		return
	}
	prev := geometry.Point2D{
		X: center.X + radius*math.Cos(a0),
		Y: center.Y + radius*math.Sin(a0),
	}
	for i := 1; i <= circleSegments; i++ {
		t := a0 + (a1-a0)*float64(i)/circleSegments
		next := geometry.Point2D{
			X: center.X + radius*math.Cos(t),
			Y: center.Y + radius*math.Sin(t),
		}
		strokeSegment(img, tf.Apply(prev), tf.Apply(next), opts.StrokeWidth, opts.EntityColor)
		prev = next
	}
}

// strokeSegment fills the quad covering a line segment of the given width.
func strokeSegment(img *image.RGBA, a, b geometry.Point2D, width float64, col color.Color) {
	d := b.Sub(a)
	length := d.Length()
	if length < 1e-9 {
		return
	}
	// Perpendicular offset of half the stroke width.
	n := geometry.Point2D{X: -d.Y / length, Y: d.X / length}.Scale(width / 2)

	bounds := img.Bounds()
	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	z.MoveTo(float32(a.X+n.X), float32(a.Y+n.Y))
	z.LineTo(float32(b.X+n.X), float32(b.Y+n.Y))
	z.LineTo(float32(b.X-n.X), float32(b.Y-n.Y))
	z.LineTo(float32(a.X-n.X), float32(a.Y-n.Y))
	z.ClosePath()
	z.Draw(img, bounds, image.NewUniform(col), image.Point{})
}

// fillDot fills a diamond-shaped handle at a point position.
func fillDot(img *image.RGBA, p geometry.Point2D, radius float64, col color.Color) {
	bounds := img.Bounds()
	z := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	z.MoveTo(float32(p.X), float32(p.Y-radius))
	z.LineTo(float32(p.X+radius), float32(p.Y))
	z.LineTo(float32(p.X), float32(p.Y+radius))
	z.LineTo(float32(p.X-radius), float32(p.Y))
	z.ClosePath()
	z.Draw(img, bounds, image.NewUniform(col), image.Point{})
}
