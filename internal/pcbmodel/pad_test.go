package pcbmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pcbroute/pkg/geometry"
)

func TestCirclePadToShapes(t *testing.T) {
	pad := NewCirclePad(geometry.Point2D{X: 1, Y: 2}, 1.2, 0.05)
	shapes := pad.ToShapes()
	assert.Len(t, shapes, 1)
	assert.Equal(t, geometry.ShapeCircle, shapes[0].Kind)
	assert.Equal(t, 1.2, shapes[0].Diameter)
}

func TestRectanglePadClearanceInflates(t *testing.T) {
	pad := NewRectanglePad(geometry.Point2D{X: 0, Y: 0}, 2, 1, 0, 0.1)
	shapes := pad.ToClearanceShapes()
	assert.Len(t, shapes, 1)
	assert.InDelta(t, 2.2, shapes[0].Width, 1e-9)
	assert.InDelta(t, 1.2, shapes[0].Height, 1e-9)
}

func TestSquarePadIsSquare(t *testing.T) {
	pad := NewSquarePad(geometry.Point2D{X: 0, Y: 0}, 1.0, 0, 0)
	shapes := pad.ToShapes()
	assert.Equal(t, shapes[0].Width, shapes[0].Height)
}
