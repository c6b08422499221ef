package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOppositeDirection(t *testing.T) {
	assert.Equal(t, Left, Right.Opposite())
	assert.Equal(t, DownLeft, UpRight.Opposite())
}

func TestLeftRight45Roundtrip(t *testing.T) {
	for _, d := range AllDirections() {
		assert.Equal(t, d, d.Left45().Right45())
		assert.Equal(t, d, d.Right45().Left45())
	}
}

func TestNeighborDirectionsContainsSelf(t *testing.T) {
	neighbors := Up.NeighborDirections()
	assert.Contains(t, neighbors, Up)
	assert.Len(t, neighbors, 3)
}

func TestIsDiagonal(t *testing.T) {
	assert.False(t, Right.IsDiagonal())
	assert.True(t, UpRight.IsDiagonal())
}

func TestFromPointsCardinal(t *testing.T) {
	d, ok := FromPoints(Point2D{X: 0, Y: 0}, Point2D{X: 10, Y: 0})
	assert.True(t, ok)
	assert.Equal(t, Right, d)
}

func TestFromPointsSamePoint(t *testing.T) {
	_, ok := FromPoints(Point2D{X: 1, Y: 1}, Point2D{X: 1, Y: 1})
	assert.False(t, ok)
}

func TestUnitVectorMagnitude(t *testing.T) {
	for _, d := range AllDirections() {
		v := d.UnitVector()
		mag := v.X*v.X + v.Y*v.Y
		assert.InDelta(t, 1.0, mag, 1e-9)
	}
}
