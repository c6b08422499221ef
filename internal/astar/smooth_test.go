package astar

import (
	"testing"

	"pcbroute/internal/config"
	"pcbroute/pkg/fixedpoint"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearSmoothingModel() *Model {
	return &Model{
		Width:          10000,
		Height:         10000,
		TraceWidth:     0.1,
		TraceClearance: 0.02,
		Config:         config.Default(),
	}
}

func pathLength(anchors []fixedpoint.Vec2) float64 {
	var total float64
	for i := 0; i+1 < len(anchors); i++ {
		total += segmentLength(anchors[i], anchors[i+1])
	}
	return total
}

func TestParallelPairShiftDegeneratesOuterSegment(t *testing.T) {
	m := clearSmoothingModel()
	a0 := fixedpoint.NewVec2(0, 0)
	a1 := fixedpoint.NewVec2(0, 2560)
	a2 := fixedpoint.NewVec2(1536, 4096)
	a3 := fixedpoint.NewVec2(1536, 6656)
	anchors := []fixedpoint.Vec2{a0, a1, a2, a3}
	before := pathLength(anchors)

	out := m.parallelPairShiftPass(anchors)
	require.Len(t, out, 3)
	assert.Equal(t, a0, out[0])
	assert.Equal(t, a3, out[2])
	assert.InDelta(t, before, pathLength(out), 1e-6)
}

func TestTightWrapReducesMiddleSegment(t *testing.T) {
	m := clearSmoothingModel()
	a0 := fixedpoint.NewVec2(0, 0)
	a1 := fixedpoint.NewVec2(2560, 0)
	a2 := fixedpoint.NewVec2(4096, 1536)
	a3 := fixedpoint.NewVec2(4096, 4096)
	anchors := []fixedpoint.Vec2{a0, a1, a2, a3}
	beforeMiddle := segmentLength(a1, a2)

	out := m.tightWrapPass(anchors)
	require.Len(t, out, 4)
	afterMiddle := segmentLength(out[1], out[2])
	assert.Less(t, afterMiddle, beforeMiddle)
}

func TestSmoothLeavesStraightPathUnchanged(t *testing.T) {
	m := clearSmoothingModel()
	start := fixedpoint.VecFromFloat(0, 0)
	end := fixedpoint.VecFromFloat(0, 5)
	m.Start, m.End = start, end
	path, err := m.Run()
	require.NoError(t, err)
	smoothed := m.Smooth(path)
	assert.Equal(t, path.Length, smoothed.Length)
}
