package astar

import (
	"pcbroute/pkg/fixedpoint"
	"pcbroute/pkg/geometry"
)

// candidate is a proposed successor position, before it is built into a
// full node with accumulated cost.
type candidate struct {
	position  fixedpoint.Vec2
	direction geometry.Direction
}

func toPoint2D(v fixedpoint.Vec2) geometry.Point2D {
	x, y := v.ToFloat()
	return geometry.Point2D{X: x, Y: y}
}

func segmentLength(a, b fixedpoint.Vec2) float64 {
	return a.Sub(b).Length().Float64()
}

// directionsFor returns the directions a search may expand into from cur:
// all eight at the start node (no inherited direction), or the inherited
// direction plus its two 45-degree neighbours otherwise — this prevents
// the path from doubling back on itself.
func directionsFor(cur *node) []geometry.Direction {
	if !cur.hasDir {
		return geometry.AllDirections()
	}
	return cur.direction.NeighborDirections()
}
