package astar

import (
	"math"

	"pcbroute/internal/pcbmodel"
	"pcbroute/pkg/fixedpoint"
	"pcbroute/pkg/geometry"
)

// Smooth runs the two local post-passes over a path's anchor list: the
// parallel-pair shift, then the tight-wrap pass. Both passes only ever
// keep a rewritten anchor list when every resulting segment remains
// eight-direction aligned, parity-valid, and collision-free; on any
// inconsistency the original path is returned unchanged.
func (m *Model) Smooth(path pcbmodel.TracePath) pcbmodel.TracePath {
	if len(path.Segments) == 0 {
		return path
	}
	width := path.Segments[0].Width
	clearance := path.Segments[0].Clearance

	anchors := append(pcbmodel.TraceAnchors{}, path.Anchors...)
	anchors = m.parallelPairShiftPass(anchors)
	anchors = m.tightWrapPass(anchors)

	smoothed, err := pcbmodel.NewTracePath(anchors, width, clearance)
	if err != nil {
		return path
	}
	return smoothed
}

// parallelPairShiftPass looks at every consecutive anchor quadruple
// (a0,a1,a2,a3) whose outer segments (a0,a1) and (a2,a3) are parallel and
// whose joining segment (a1,a2) is not. It tries sliding the joining
// segment to either outer endpoint, degenerating one of the outer
// segments, keeping the first shift that leaves both remaining segments
// aligned, parity-valid, and collision-free.
func (m *Model) parallelPairShiftPass(anchors pcbmodel.TraceAnchors) pcbmodel.TraceAnchors {
	i := 0
	for i+3 < len(anchors) {
		a0, a1, a2, a3 := anchors[i], anchors[i+1], anchors[i+2], anchors[i+3]
		d0, ok0 := geometry.FromPoints(toPoint2D(a0), toPoint2D(a1))
		d1, ok1 := geometry.FromPoints(toPoint2D(a1), toPoint2D(a2))
		d2, ok2 := geometry.FromPoints(toPoint2D(a2), toPoint2D(a3))
		if !ok0 || !ok1 || !ok2 || d0 != d2 || d1 == d0 {
			i++
			continue
		}

		// Shift 1: slide the joining segment back to a0, degenerating
		// segment (a0,a1). The new midpoint inherits the joining vector.
		delta1 := a0.Sub(a1)
		mid1 := a2.Add(delta1)
		if _, _, ok := m.validMiddleAnchor(a0, mid1, a3); ok {
			anchors = spliceThreeToTwo(anchors, i, mid1)
			continue
		}

		// Shift 2: slide the joining segment forward to a3, degenerating
		// segment (a2,a3).
		delta2 := a3.Sub(a2)
		mid2 := a1.Add(delta2)
		if _, _, ok := m.validMiddleAnchor(a0, mid2, a3); ok {
			anchors = spliceThreeToTwo(anchors, i, mid2)
			continue
		}

		i++
	}
	return anchors
}

// validMiddleAnchor checks that a0->mid->a3 forms two valid, collision-free,
// parity-valid segments, returning their directions.
func (m *Model) validMiddleAnchor(a0, mid, a3 fixedpoint.Vec2) (geometry.Direction, geometry.Direction, bool) {
	if mid == a0 || mid == a3 {
		return 0, 0, false
	}
	dirA, ok := geometry.FromPoints(toPoint2D(a0), toPoint2D(mid))
	if !ok {
		return 0, 0, false
	}
	dirB, ok := geometry.FromPoints(toPoint2D(mid), toPoint2D(a3))
	if !ok {
		return 0, 0, false
	}
	if !parityOK(mid, dirA) {
		return 0, 0, false
	}
	if m.segmentCollides(a0, mid, dirA) || m.segmentCollides(mid, a3, dirB) {
		return 0, 0, false
	}
	return dirA, dirB, true
}

func spliceThreeToTwo(anchors pcbmodel.TraceAnchors, i int, mid fixedpoint.Vec2) pcbmodel.TraceAnchors {
	out := make(pcbmodel.TraceAnchors, 0, len(anchors)-1)
	out = append(out, anchors[:i+1]...)
	out = append(out, mid)
	out = append(out, anchors[i+3:]...)
	return out
}

// tightWrapPass looks at every consecutive anchor quadruple forming an
// axis-diagonal-axis or diagonal-axis-diagonal pattern (with the two outer
// directions distinct and not opposite) and tries to shrink the middle
// segment by sliding its two endpoints toward each other: the first one
// forward along the first segment's direction and the second one back
// along the last segment's direction, by the same number of Delta steps
// per axis, accepting the largest shrink that leaves all three segments
// aligned, parity-valid, and collision-free.
func (m *Model) tightWrapPass(anchors pcbmodel.TraceAnchors) pcbmodel.TraceAnchors {
	i := 0
	for i+3 < len(anchors) {
		a0, a1, a2, a3 := anchors[i], anchors[i+1], anchors[i+2], anchors[i+3]
		d0, ok0 := geometry.FromPoints(toPoint2D(a0), toPoint2D(a1))
		dm, okm := geometry.FromPoints(toPoint2D(a1), toPoint2D(a2))
		d2, ok2 := geometry.FromPoints(toPoint2D(a2), toPoint2D(a3))
		if !ok0 || !okm || !ok2 {
			i++
			continue
		}
		eligible := d0 != d2 && d0 != d2.Opposite() &&
			((d0.IsDiagonal() == d2.IsDiagonal()) && d0.IsDiagonal() != dm.IsDiagonal())
		if !eligible {
			i++
			continue
		}

		s0, s2 := axisStep(d0), axisStep(d2)
		span := a2.Sub(a1)
		maxSteps := int(max(span.X.Abs(), span.Y.Abs()))
		tightened := false
		for step := maxSteps; step >= 1; step-- {
			k := fixedpoint.Q(step)
			a1p := a1.Add(fixedpoint.NewVec2(s0.X*k, s0.Y*k))
			a2p := a2.Sub(fixedpoint.NewVec2(s2.X*k, s2.Y*k))
			if m.validTightenedTriple(a0, a1p, a2p, a3) {
				anchors = replaceTwoAnchors(anchors, i, a1p, a2p)
				tightened = true
				break
			}
		}
		if !tightened {
			i++
		}
	}
	return anchors
}

// axisStep returns the one-Delta-per-axis step of d, each component -1, 0
// or 1 in raw Q24.8 units.
func axisStep(d geometry.Direction) fixedpoint.Vec2 {
	u := d.UnitVector()
	return fixedpoint.NewVec2(fixedpoint.Q(math.Round(u.X)), fixedpoint.Q(math.Round(u.Y)))
}

func (m *Model) validTightenedTriple(a0, a1, a2, a3 fixedpoint.Vec2) bool {
	if a0 == a1 || a1 == a2 || a2 == a3 {
		return false
	}
	d0, ok := geometry.FromPoints(toPoint2D(a0), toPoint2D(a1))
	if !ok || !parityOK(a1, d0) {
		return false
	}
	d1, ok := geometry.FromPoints(toPoint2D(a1), toPoint2D(a2))
	if !ok || !parityOK(a2, d1) {
		return false
	}
	d2, ok := geometry.FromPoints(toPoint2D(a2), toPoint2D(a3))
	if !ok {
		return false
	}
	return !m.segmentCollides(a0, a1, d0) && !m.segmentCollides(a1, a2, d1) && !m.segmentCollides(a2, a3, d2)
}

func replaceTwoAnchors(anchors pcbmodel.TraceAnchors, i int, a1, a2 fixedpoint.Vec2) pcbmodel.TraceAnchors {
	out := make(pcbmodel.TraceAnchors, len(anchors))
	copy(out, anchors)
	out[i+1] = a1
	out[i+2] = a2
	return out
}
