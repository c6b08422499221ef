package pcbmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcbroute/pkg/fixedpoint"
)

func TestNewTraceSegmentRejectsZeroLength(t *testing.T) {
	p := fixedpoint.VecFromFloat(1, 1)
	_, err := NewTraceSegment(p, p, 0.5, 0.05)
	assert.ErrorIs(t, err, ErrZeroLengthSegment)
}

func TestNewTraceSegmentRejectsOffAxis(t *testing.T) {
	start := fixedpoint.VecFromFloat(0, 0)
	end := fixedpoint.VecFromFloat(3, 1)
	_, err := NewTraceSegment(start, end, 0.5, 0.05)
	assert.ErrorIs(t, err, ErrDirectionUndefined)
}

func TestNewTraceSegmentUpDirection(t *testing.T) {
	start := fixedpoint.VecFromFloat(0, 0)
	end := fixedpoint.VecFromFloat(0, 5)
	seg, err := NewTraceSegment(start, end, 0.5, 0.05)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, seg.Length(), 1e-6)
}

func TestTracePathRoundTripAnchors(t *testing.T) {
	anchors := TraceAnchors{
		fixedpoint.VecFromFloat(0, 0),
		fixedpoint.VecFromFloat(0, 5),
		fixedpoint.VecFromFloat(5, 10),
	}
	path, err := NewTracePath(anchors, 0.5, 0.05)
	require.NoError(t, err)
	assert.Len(t, path.Segments, 2)

	recomposed := make(TraceAnchors, 0, len(path.Segments)+1)
	recomposed = append(recomposed, path.Segments[0].Start)
	for _, seg := range path.Segments {
		recomposed = append(recomposed, seg.End)
	}
	assert.Equal(t, anchors, recomposed)
}

func TestTracePathCollisionIsSymmetric(t *testing.T) {
	a, err := NewTracePath(TraceAnchors{
		fixedpoint.VecFromFloat(0, 0), fixedpoint.VecFromFloat(0, 10),
	}, 0.5, 0.05)
	require.NoError(t, err)
	b, err := NewTracePath(TraceAnchors{
		fixedpoint.VecFromFloat(0.2, 0), fixedpoint.VecFromFloat(0.2, 10),
	}, 0.5, 0.05)
	require.NoError(t, err)

	assert.Equal(t, a.CollidesWith(b), b.CollidesWith(a))
}

func TestTraceAnchorsKeyDistinguishesPaths(t *testing.T) {
	a := TraceAnchors{fixedpoint.VecFromFloat(0, 0), fixedpoint.VecFromFloat(0, 5)}
	b := TraceAnchors{fixedpoint.VecFromFloat(0, 0), fixedpoint.VecFromFloat(5, 5)}
	assert.NotEqual(t, a.Key(), b.Key())

	c := TraceAnchors{fixedpoint.VecFromFloat(0, 0), fixedpoint.VecFromFloat(0, 5)}
	assert.Equal(t, a.Key(), c.Key())
}
