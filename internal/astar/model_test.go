package astar

import (
	"testing"

	"pcbroute/internal/config"
	"pcbroute/pkg/fixedpoint"
	"pcbroute/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClearModel(start, end fixedpoint.Vec2) *Model {
	return &Model{
		Width:          15,
		Height:         10,
		Start:          start,
		End:            end,
		TraceWidth:     0.5,
		TraceClearance: 0.05,
		Config:         config.Default(),
	}
}

func TestRunRejectsStartEqualsEnd(t *testing.T) {
	p := fixedpoint.VecFromFloat(0, 0)
	m := newClearModel(p, p)
	_, err := m.Run()
	assert.ErrorIs(t, err, ErrStartEqualsEnd)
}

func TestRunUnobstructedEndAlignedIsTwoAnchors(t *testing.T) {
	start := fixedpoint.VecFromFloat(0, 0)
	end := fixedpoint.VecFromFloat(0, 5)
	m := newClearModel(start, end)
	path, err := m.Run()
	require.NoError(t, err)
	assert.Len(t, path.Anchors, 2)
	assert.Equal(t, end, path.Anchors[1])
	assert.InDelta(t, 5.0, path.Length, 1e-6)
	assert.Equal(t, geometry.Up, path.Segments[0].Direction)
}

func TestRunExhaustsFrontierWhenFullyBoxedIn(t *testing.T) {
	start := fixedpoint.VecFromFloat(0, 0)
	end := fixedpoint.VecFromFloat(0, 5)
	m := newClearModel(start, end)
	// A clearance square about 100 units wide around the start point covers
	// the whole board and blocks every direction.
	ring := geometry.NewRectangle(geometry.Point2D{X: 0, Y: 0}, 0.01, 0.01, 0)
	m.ObstacleClearanceShapes = []geometry.PrimShape{ring.Inflate(50)}
	_, err := m.Run()
	assert.Error(t, err)
}

func TestRunThenSmoothNeverIncreasesPathLength(t *testing.T) {
	start := fixedpoint.VecFromFloat(0, 0)
	end := fixedpoint.VecFromFloat(3, 4)
	m := newClearModel(start, end)
	path, err := m.Run()
	require.NoError(t, err)

	smoothed := m.Smooth(path)
	assert.LessOrEqual(t, smoothed.Length, path.Length+1e-6)
	assert.LessOrEqual(t, len(smoothed.Anchors), len(path.Anchors))
}

func TestBinaryCollisionApproachReturnsExactDelta(t *testing.T) {
	collides := func(length fixedpoint.Q) bool {
		return length > fixedpoint.Q(1)
	}
	parityOK := func(fixedpoint.Q) bool { return true }
	length, ok := binaryCollisionApproach(fixedpoint.Q(100), collides, parityOK)
	require.True(t, ok)
	assert.Equal(t, fixedpoint.Q(1), length)
}

func TestBinaryCollisionApproachNoFreeLength(t *testing.T) {
	collides := func(fixedpoint.Q) bool { return true }
	parityOK := func(fixedpoint.Q) bool { return true }
	_, ok := binaryCollisionApproach(fixedpoint.Q(100), collides, parityOK)
	assert.False(t, ok)
}

func TestBinaryCollisionApproachBacksOffForParity(t *testing.T) {
	collides := func(fixedpoint.Q) bool { return false }
	parityOK := func(length fixedpoint.Q) bool { return length != fixedpoint.Q(100) }
	length, ok := binaryCollisionApproach(fixedpoint.Q(100), collides, parityOK)
	require.True(t, ok)
	assert.Equal(t, fixedpoint.Q(99), length)
}

func TestParityOKRejectsOddOddOnCardinalEntry(t *testing.T) {
	pos := fixedpoint.NewVec2(1, 1) // odd-odd, sum even
	assert.True(t, pos.IsSumEven())
	assert.False(t, parityOK(pos, geometry.Up))
	assert.True(t, parityOK(pos, geometry.UpRight))
}
