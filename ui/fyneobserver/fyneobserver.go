// Package fyneobserver renders router Snapshots onto a Fyne raster canvas,
// the desktop realization of the observer.Observer hook. It rasterizes
// primitive shapes directly (circles, rotated rectangles) rather than
// compositing bitmap layers, since the router publishes vector geometry.
package fyneobserver

import (
	"image"
	"image/color"
	"math"
	"sync"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pcbroute/internal/observer"
	"pcbroute/pkg/geometry"
)

const (
	minZoom  = 0.1
	maxZoom  = 20.0
	zoomStep = 1.25
)

// Observer is a Fyne-backed observer.Observer: every Publish rasterizes
// the snapshot's shapes into an RGBA image and refreshes the canvas.
type Observer struct {
	widget.BaseWidget

	mu       sync.Mutex
	snapshot observer.Snapshot
	zoom     float64

	raster *fynecanvas.Raster
	scroll *container.Scroll

	ackCh chan struct{}
}

// New constructs a fyneobserver.Observer with an empty board, ready to be
// embedded in a window's content via Container.
func New() *Observer {
	o := &Observer{zoom: 4.0}
	o.raster = fynecanvas.NewRaster(o.draw)
	o.raster.ScaleMode = fynecanvas.ImageScalePixels
	o.scroll = container.NewScroll(o.raster)
	o.ExtendBaseWidget(o)
	return o
}

// Container returns the scrollable canvas object for embedding in a window.
func (o *Observer) Container() fyne.CanvasObject {
	return o.scroll
}

// Publish stores the snapshot and asks the raster to redraw. It never
// blocks: the caller only waits via AwaitAck when Config.BlockThread is set
// and the caller itself chooses to read from that channel.
func (o *Observer) Publish(s observer.Snapshot) {
	o.mu.Lock()
	o.snapshot = s
	o.mu.Unlock()
	o.raster.Refresh()
}

// AwaitAck returns an already-closed channel, so callers that set
// Config.BlockThread continue at once; it does not wait for the raster
// to be redrawn.
func (o *Observer) AwaitAck() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// ZoomIn increases the render scale (pixels per board unit).
func (o *Observer) ZoomIn() { o.setZoom(o.zoom * zoomStep) }

// ZoomOut decreases the render scale.
func (o *Observer) ZoomOut() { o.setZoom(o.zoom / zoomStep) }

func (o *Observer) setZoom(z float64) {
	if z < minZoom {
		z = minZoom
	}
	if z > maxZoom {
		z = maxZoom
	}
	o.zoom = z
	o.raster.Refresh()
}

func (o *Observer) draw(w, h int) image.Image {
	o.mu.Lock()
	snap := o.snapshot
	zoom := o.zoom
	o.mu.Unlock()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := color.RGBA{R: 20, G: 20, B: 24, A: 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, bg)
		}
	}

	for _, pad := range snap.PadShapeRenderables {
		fillShape(img, pad.Shape, zoom, color.RGBA{R: pad.R, G: pad.G, B: pad.B, A: pad.A})
	}
	for _, batch := range snap.TraceShapeRenderables {
		for _, sh := range batch.Shapes {
			fillShape(img, sh.Shape, zoom, color.RGBA{R: sh.R, G: sh.G, B: sh.B, A: sh.A})
		}
	}
	return img
}

// fillShape rasterizes a single primitive shape into img by scanning its
// bounding box and testing membership, the same per-pixel approach the
// teacher's layer compositor uses for transformed image layers.
func fillShape(img *image.RGBA, shape geometry.PrimShape, zoom float64, c color.RGBA) {
	min, max := shape.BoundingBox()
	x0 := int(min.X * zoom)
	y0 := int(min.Y * zoom)
	x1 := int(max.X*zoom) + 1
	y1 := int(max.Y*zoom) + 1

	bounds := img.Bounds()
	if x0 < bounds.Min.X {
		x0 = bounds.Min.X
	}
	if y0 < bounds.Min.Y {
		y0 = bounds.Min.Y
	}
	if x1 > bounds.Max.X {
		x1 = bounds.Max.X
	}
	if y1 > bounds.Max.Y {
		y1 = bounds.Max.Y
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			worldX := (float64(x) + 0.5) / zoom
			worldY := (float64(y) + 0.5) / zoom
			if shapeContains(shape, worldX, worldY) {
				img.Set(x, y, c)
			}
		}
	}
}

func shapeContains(shape geometry.PrimShape, x, y float64) bool {
	switch shape.Kind {
	case geometry.ShapeCircle:
		dx := x - shape.Position.X
		dy := y - shape.Position.Y
		r := shape.Radius()
		return dx*dx+dy*dy <= r*r
	default:
		angle := -shape.RotationDeg * math.Pi / 180.0
		dx := x - shape.Position.X
		dy := y - shape.Position.Y
		cos, sin := math.Cos(angle), math.Sin(angle)
		localX := dx*cos - dy*sin
		localY := dx*sin + dy*cos
		return math.Abs(localX) <= shape.Width/2 && math.Abs(localY) <= shape.Height/2
	}
}

// CreateRenderer implements fyne.Widget.
func (o *Observer) CreateRenderer() fyne.WidgetRenderer {
	return &observerRenderer{observer: o}
}

type observerRenderer struct {
	observer *Observer
}

func (r *observerRenderer) Layout(size fyne.Size)  { r.observer.scroll.Resize(size) }
func (r *observerRenderer) MinSize() fyne.Size     { return fyne.NewSize(200, 200) }
func (r *observerRenderer) Refresh()               { r.observer.raster.Refresh() }
func (r *observerRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.observer.scroll}
}
func (r *observerRenderer) Destroy() {}
