package tcellobserver

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/require"

	"pcbroute/internal/observer"
	"pcbroute/pkg/geometry"
)

func newSimulationObserver(t *testing.T) *Observer {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	require.NoError(t, sim.SetSize(80, 24))
	o, err := newWithScreen(sim)
	require.NoError(t, err)
	return o
}

func testSnapshot() observer.Snapshot {
	return observer.Snapshot{
		Width:  10,
		Height: 10,
		PadShapeRenderables: []observer.ShapeRenderable{
			{Shape: geometry.NewCircle(geometry.Point2D{X: 5, Y: 5}, 1), R: 255, G: 0, B: 0, A: 255},
		},
		TraceShapeRenderables: []observer.RenderableBatch{
			{
				FrontierRank: 0.5,
				Shapes: []observer.ShapeRenderable{
					{Shape: geometry.NewRectangle(geometry.Point2D{X: 2, Y: 2}, 1, 3, 45), R: 0, G: 255, B: 0, A: 255},
				},
			},
		},
	}
}
