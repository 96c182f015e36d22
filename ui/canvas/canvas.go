// Package canvas provides the interactive sketch canvas with zoom and
// point dragging.
package canvas

import (
	"image"
	"math"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"sketch-solver/internal/app"
	"sketch-solver/internal/render"
	"sketch-solver/internal/sketch"
	"sketch-solver/pkg/geometry"
)

const (
	minZoom  = 0.1
	maxZoom  = 10.0
	zoomStep = 1.25

	// pickRadius is the drag pick distance in screen pixels.
	pickRadius = 12.0
)

// SketchCanvas displays the current sketch and lets the user drag free
// points. Every drag update re-solves the sketch, so constrained geometry
// follows the cursor while staying consistent.
type SketchCanvas struct {
	widget.BaseWidget

	state  *app.State
	raster *fynecanvas.Raster

	zoom float64

	// Last transform and raster size, for mapping events back to sketch
	// coordinates.
	lastTransform geometry.AffineTransform
	lastPixelW    int
	lastPixelH    int

	dragging bool
	dragID   sketch.PointID

	onSolve func()
}

var _ fyne.Draggable = (*SketchCanvas)(nil)
var _ fyne.Scrollable = (*SketchCanvas)(nil)

// New creates a sketch canvas bound to the application state.
func New(state *app.State) *SketchCanvas {
	c := &SketchCanvas{state: state, zoom: 1}
	c.raster = fynecanvas.NewRaster(c.draw)
	c.ExtendBaseWidget(c)
	return c
}

// SetOnSolve registers a callback fired after every drag-triggered solve,
// so the window can refresh its status bar.
func (c *SketchCanvas) SetOnSolve(fn func()) { c.onSolve = fn }

// CreateRenderer implements fyne.Widget.
func (c *SketchCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

// MinSize implements fyne.Widget.
func (c *SketchCanvas) MinSize() fyne.Size {
	return fyne.NewSize(480, 360)
}

// Refresh redraws the sketch.
func (c *SketchCanvas) Refresh() {
	c.raster.Refresh()
	c.BaseWidget.Refresh()
}

func (c *SketchCanvas) draw(w, h int) image.Image {
	if w < 1 || h < 1 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}

	opts := render.DefaultOptions()
	opts.Width = w
	opts.Height = h

	s := c.state.Sketch()
	tf := render.FitTransform(s, opts)

	// Apply the user zoom about the image center.
	cx, cy := float64(w)/2, float64(h)/2
	tf = geometry.Translation(cx, cy).
		Compose(geometry.Scale(c.zoom, c.zoom)).
		Compose(geometry.Translation(-cx, -cy)).
		Compose(tf)

	c.lastTransform = tf
	c.lastPixelW = w
	c.lastPixelH = h
	return render.RenderWithTransform(s, opts, tf)
}

// Dragged picks the nearest free point on drag start, then moves it and
// re-solves on every event.
func (c *SketchCanvas) Dragged(ev *fyne.DragEvent) {
	world, ok := c.toSketch(ev.Position)
	if !ok {
		return
	}

	if !c.dragging {
		scale := math.Hypot(c.lastTransform.A, c.lastTransform.C)
		if scale <= 0 {
			return
		}
		id, found := c.state.NearestFreePoint(world.X, world.Y, pickRadius/scale)
		if !found {
			return
		}
		c.dragging = true
		c.dragID = id
	}

	c.state.MovePoint(c.dragID, world.X, world.Y)
	if c.onSolve != nil {
		c.onSolve()
	}
	c.raster.Refresh()
}

// DragEnd implements fyne.Draggable.
func (c *SketchCanvas) DragEnd() {
	c.dragging = false
}

// Scrolled zooms with the mouse wheel.
func (c *SketchCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		c.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		c.ZoomOut()
	}
}

// ZoomIn increases the zoom one step.
func (c *SketchCanvas) ZoomIn() { c.setZoom(c.zoom * zoomStep) }

// ZoomOut decreases the zoom one step.
func (c *SketchCanvas) ZoomOut() { c.setZoom(c.zoom / zoomStep) }

// ZoomFit resets the zoom so the sketch fills the canvas.
func (c *SketchCanvas) ZoomFit() { c.setZoom(1) }

func (c *SketchCanvas) setZoom(z float64) {
	c.zoom = math.Min(maxZoom, math.Max(minZoom, z))
	c.raster.Refresh()
}

// toSketch maps a widget-space event position to sketch coordinates via
// the transform of the last rendered frame.
func (c *SketchCanvas) toSketch(pos fyne.Position) (geometry.Point2D, bool) {
	size := c.Size()
	if size.Width <= 0 || size.Height <= 0 || c.lastPixelW < 1 || c.lastPixelH < 1 {
		return geometry.Point2D{}, false
	}

	// The raster may render at a higher pixel density than widget units.
	px := float64(pos.X) * float64(c.lastPixelW) / float64(size.Width)
	py := float64(pos.Y) * float64(c.lastPixelH) / float64(size.Height)

	inv, ok := c.lastTransform.Inverse()
	if !ok {
		return geometry.Point2D{}, false
	}
	return inv.Apply(geometry.Point2D{X: px, Y: py}), true
}
