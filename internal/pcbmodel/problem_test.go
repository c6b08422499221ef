package pcbmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pcbroute/pkg/geometry"
)

func TestAddNetRejectsDuplicateColor(t *testing.T) {
	problem := NewPcbProblem(20, 20)
	red := Color{R: 255}
	problem.AddNet(red)

	assert.Panics(t, func() {
		problem.AddNet(red)
	})
}

func TestAddConnectionRejectsDifferingSourcePads(t *testing.T) {
	problem := NewPcbProblem(20, 20)
	net := problem.AddNet(Color{R: 255})
	source := NewCirclePad(geometry.Point2D{X: 0, Y: 0}, 1, 0.05)
	sink1 := NewCirclePad(geometry.Point2D{X: 5, Y: 0}, 1, 0.05)
	problem.AddConnection(net, source, sink1, 0.5, 0.05)

	otherSource := NewCirclePad(geometry.Point2D{X: 1, Y: 1}, 1, 0.05)
	sink2 := NewCirclePad(geometry.Point2D{X: 5, Y: 5}, 1, 0.05)
	assert.Panics(t, func() {
		problem.AddConnection(net, otherSource, sink2, 0.5, 0.05)
	})
}

func TestAddConnectionAssignsSequentialIDs(t *testing.T) {
	problem := NewPcbProblem(20, 20)
	net := problem.AddNet(Color{R: 0, G: 255})
	source := NewCirclePad(geometry.Point2D{X: 0, Y: 0}, 1, 0.05)
	sink1 := NewCirclePad(geometry.Point2D{X: 5, Y: 0}, 1, 0.05)
	sink2 := NewCirclePad(geometry.Point2D{X: 0, Y: 5}, 1, 0.05)

	id1 := problem.AddConnection(net, source, sink1, 0.5, 0.05)
	id2 := problem.AddConnection(net, source, sink2, 0.5, 0.05)
	assert.NotEqual(t, id1, id2)
	assert.Len(t, problem.AllConnections(), 2)
}

func TestNewPcbProblemStampsID(t *testing.T) {
	p := NewPcbProblem(10, 10)
	assert.NotEqual(t, [16]byte{}, [16]byte(p.ID))
}
