// Package tcellobserver renders router Snapshots into a tcell terminal
// screen, the headless-friendly realization of the observer.Observer hook
// for sessions run over SSH or without a display server. Board coordinates
// are mapped onto terminal cells at a fixed aspect-corrected scale, and
// each shape is drawn as a colored block character.
package tcellobserver

import (
	"fmt"
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"

	"pcbroute/internal/observer"
	"pcbroute/pkg/geometry"
)

// cellAspect corrects for terminal cells being roughly twice as tall as
// wide, so a circle pad does not render as an ellipse.
const cellAspect = 2.0

// Observer drives a tcell.Screen from published Snapshots. Quit closes once
// the user presses 'q' or Ctrl-C, at which point the caller should stop
// routing and call Close.
type Observer struct {
	screen tcell.Screen

	mu    sync.Mutex
	scale float64

	Quit chan struct{}
}

// New initializes a tcell screen. The caller must call Close when done.
func New() (*Observer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcellobserver: creating screen: %w", err)
	}
	return newWithScreen(screen)
}

// newWithScreen wraps an already-constructed tcell.Screen (a real terminal
// screen from New, or a tcell.SimulationScreen in tests).
func newWithScreen(screen tcell.Screen) (*Observer, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("tcellobserver: initializing screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	screen.Clear()

	o := &Observer{screen: screen, scale: 3.0, Quit: make(chan struct{})}
	go o.pollEvents()
	return o, nil
}

// Close restores the terminal. Safe to call once after the session ends.
func (o *Observer) Close() {
	o.screen.Fini()
}

func (o *Observer) pollEvents() {
	for {
		ev := o.screen.PollEvent()
		switch e := ev.(type) {
		case *tcell.EventKey:
			if e.Key() == tcell.KeyCtrlC || e.Rune() == 'q' {
				close(o.Quit)
				return
			}
		case nil:
			return
		}
	}
}

// Publish rasterizes the snapshot onto the screen as block characters.
func (o *Observer) Publish(s observer.Snapshot) {
	o.mu.Lock()
	scale := o.scale
	o.mu.Unlock()

	o.screen.Clear()
	w, h := o.screen.Size()

	plot := func(shape geometry.PrimShape, style tcell.Style) {
		min, max := shape.BoundingBox()
		x0 := int(min.X * scale)
		y0 := int(min.Y * scale / cellAspect)
		x1 := int(max.X * scale)
		y1 := int(max.Y * scale / cellAspect)
		for y := y0; y <= y1; y++ {
			if y < 0 || y >= h {
				continue
			}
			for x := x0; x <= x1; x++ {
				if x < 0 || x >= w {
					continue
				}
				worldX := float64(x) / scale
				worldY := float64(y) * cellAspect / scale
				if shapeContains(shape, worldX, worldY) {
					o.screen.SetContent(x, y, '█', nil, style)
				}
			}
		}
	}

	for _, pad := range s.PadShapeRenderables {
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(pad.R), int32(pad.G), int32(pad.B)))
		plot(pad.Shape, style)
	}
	for _, batch := range s.TraceShapeRenderables {
		for _, sh := range batch.Shapes {
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(sh.R), int32(sh.G), int32(sh.B)))
			plot(sh.Shape, style)
		}
	}
	o.screen.Show()
}

// AwaitAck returns a channel that closes immediately: Show() above is
// synchronous, so the snapshot is already on screen by the time Publish
// returns.
func (o *Observer) AwaitAck() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func shapeContains(shape geometry.PrimShape, x, y float64) bool {
	dx := x - shape.Position.X
	dy := y - shape.Position.Y
	if shape.Kind == geometry.ShapeCircle {
		r := shape.Radius()
		return dx*dx+dy*dy <= r*r
	}
	angle := -shape.RotationDeg * math.Pi / 180.0
	cos, sin := math.Cos(angle), math.Sin(angle)
	localX := dx*cos - dy*sin
	localY := dx*sin + dy*cos
	return math.Abs(localX) <= shape.Width/2 && math.Abs(localY) <= shape.Height/2
}
