package astar

import (
	"pcbroute/pkg/fixedpoint"
	"pcbroute/pkg/geometry"
)

const microStep = fixedpoint.Q(2) // 2*Delta, the probe length for obstacle-hug checks

// parityOK reports whether a lattice point reached while moving in
// direction d is a legal stopping point: the sum-even invariant must hold
// everywhere, and an odd-odd coordinate pair is only legal as the entry
// point of a diagonal move.
func parityOK(pos fixedpoint.Vec2, d geometry.Direction) bool {
	if !pos.IsSumEven() {
		return false
	}
	if pos.IsXOddYOdd() && !d.IsDiagonal() {
		return false
	}
	return true
}

func dirVecQ(d geometry.Direction) fixedpoint.Vec2 {
	u := d.UnitVector()
	return fixedpoint.VecFromFloat(u.X, u.Y)
}

// clampDirection runs the binary collision approach along direction d from
// cur, up to maxLen, returning the furthest collision-free parity-valid
// point reached.
func (m *Model) clampDirection(cur fixedpoint.Vec2, d geometry.Direction, maxLen fixedpoint.Q) (fixedpoint.Vec2, bool) {
	unit := dirVecQ(d)
	at := func(length fixedpoint.Q) fixedpoint.Vec2 {
		return cur.Add(unit.Scale(length))
	}
	collides := func(length fixedpoint.Q) bool {
		return m.segmentCollides(cur, at(length), d)
	}
	ok := func(length fixedpoint.Q) bool {
		return parityOK(at(length), d)
	}
	length, found := binaryCollisionApproach(maxLen, collides, ok)
	if !found {
		return fixedpoint.Vec2{}, false
	}
	return at(length), true
}

// microStepCollides probes a short step in direction d for a collision,
// used by the radial obstacle-hug and fallback rules to decide whether a
// direction is blocked without running a full binary search.
func (m *Model) microStepCollides(cur fixedpoint.Vec2, d geometry.Direction) bool {
	unit := dirVecQ(d)
	end := cur.Add(unit.Scale(microStep))
	return m.segmentCollides(cur, end, d)
}

// endAlignmentRule (rule 1) proposes the goal itself as a successor when
// cur is aligned to one of the goal's eight compass lines and the direct
// segment to the goal is collision-free.
func (m *Model) endAlignmentRule(cur *node) []candidate {
	dir, ok := geometry.FromPoints(toPoint2D(cur.position), toPoint2D(m.End))
	if !ok {
		return nil
	}
	if m.segmentCollides(cur.position, m.End, dir) {
		return nil
	}
	return []candidate{{position: m.End, direction: dir}}
}

// gridNeighbourRule (rule 2) advances up to the configured grid stride
// along each allowed direction, clamped by the binary collision approach.
func (m *Model) gridNeighbourRule(cur *node, allowedDirs []geometry.Direction) []candidate {
	var out []candidate
	for _, d := range allowedDirs {
		pos, ok := m.clampDirection(cur.position, d, m.Config.GridStride)
		if !ok {
			continue
		}
		out = append(out, candidate{position: pos, direction: d})
	}
	return out
}

// radialHugRule (rule 3) proposes a direction as a successor when it is
// itself free at a short probe but at least one of its flanking pairs
// (the 45 and 90 degree turns to one side) is blocked, letting the search
// hug the silhouette of an obstacle instead of only ever stepping the full
// stride away from it.
func (m *Model) radialHugRule(cur *node, allowedDirs []geometry.Direction) []candidate {
	var out []candidate
	for _, d := range allowedDirs {
		if m.microStepCollides(cur.position, d) {
			continue
		}
		leftBlocked := m.microStepCollides(cur.position, d.Left90()) || m.microStepCollides(cur.position, d.Left45())
		rightBlocked := m.microStepCollides(cur.position, d.Right90()) || m.microStepCollides(cur.position, d.Right45())
		if !leftBlocked && !rightBlocked {
			continue
		}
		pos, ok := m.clampDirection(cur.position, d, m.Config.GridStride)
		if !ok {
			continue
		}
		out = append(out, candidate{position: pos, direction: d})
	}
	return out
}

// goalAlignmentInjection (rule 4) looks at every successor already
// proposed by rules 2-3 and, for the straight segment from cur to that
// successor, injects the point where that segment crosses one of the two
// goal-alignment lines that sit +/-45 degrees from the segment's own
// direction. Crossing a goal-alignment line early lets a later expansion
// apply the end-alignment rule sooner than waiting for the full stride.
func (m *Model) goalAlignmentInjection(cur *node, successors []candidate) []candidate {
	var out []candidate
	gx, gy := m.End.X, m.End.Y
	for _, s := range successors {
		d := s.direction
		var points []fixedpoint.Vec2
		if d.IsDiagonal() {
			// +/-45 degrees from a diagonal direction is cardinal: the
			// vertical and horizontal lines through the goal.
			if d == geometry.UpRight || d == geometry.DownLeft {
				k := cur.position.X.Sub(cur.position.Y) // x - y = k along this segment
				points = append(points, fixedpoint.NewVec2(gx, gx.Sub(k)))
				points = append(points, fixedpoint.NewVec2(gy.Add(k), gy))
			} else {
				k := cur.position.X.Add(cur.position.Y) // x + y = k along this segment
				points = append(points, fixedpoint.NewVec2(gx, k.Sub(gx)))
				points = append(points, fixedpoint.NewVec2(k.Sub(gy), gy))
			}
		} else {
			// +/-45 degrees from a cardinal direction is diagonal: the two
			// lines x-y=const and x+y=const through the goal.
			c1 := gx.Sub(gy)
			c2 := gx.Add(gy)
			if d == geometry.Up || d == geometry.Down {
				points = append(points, fixedpoint.NewVec2(cur.position.X, cur.position.X.Sub(c1)))
				points = append(points, fixedpoint.NewVec2(cur.position.X, c2.Sub(cur.position.X)))
			} else {
				points = append(points, fixedpoint.NewVec2(c1.Add(cur.position.Y), cur.position.Y))
				points = append(points, fixedpoint.NewVec2(c2.Sub(cur.position.Y), cur.position.Y))
			}
		}
		for _, p := range points {
			if !m.onSegment(cur.position, s.position, p) {
				continue
			}
			if p == cur.position || p == s.position {
				continue
			}
			if !parityOK(p, d) {
				continue
			}
			if m.segmentCollides(cur.position, p, d) {
				continue
			}
			out = append(out, candidate{position: p, direction: d})
		}
	}
	return out
}

// onSegment reports whether p lies on the closed segment [a, b], assuming
// p is already known to lie on the same infinite line.
func (m *Model) onSegment(a, b, p fixedpoint.Vec2) bool {
	minX, maxX := a.X, b.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := a.Y, b.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// fallbackRule (rule 5) only runs when rules 1-3 produced nothing: it
// takes the first of the eight directions free at a short probe, clamped
// by the binary collision approach; if every direction is blocked at the
// probe distance it falls back to the inherited direction; if that also
// fails to clamp to anything, it tries the remaining six non-opposite
// directions.
func (m *Model) fallbackRule(cur *node) []candidate {
	for _, d := range geometry.AllDirections() {
		if m.microStepCollides(cur.position, d) {
			continue
		}
		if pos, ok := m.clampDirection(cur.position, d, m.Config.GridStride); ok {
			return []candidate{{position: pos, direction: d}}
		}
	}
	if cur.hasDir {
		if pos, ok := m.clampDirection(cur.position, cur.direction, m.Config.GridStride); ok {
			return []candidate{{position: pos, direction: cur.direction}}
		}
		opposite := cur.direction.Opposite()
		for _, d := range geometry.AllDirections() {
			if d == cur.direction || d == opposite {
				continue
			}
			if pos, ok := m.clampDirection(cur.position, d, m.Config.GridStride); ok {
				return []candidate{{position: pos, direction: d}}
			}
		}
	}
	return nil
}
